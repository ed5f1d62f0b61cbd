// Command locate is a thin CLI over the spotfind library: decode a
// grayscale image, run Locate, and print the result table as CSV. It
// drops the teacher's Fyne GUI entirely (an explicit Non-goal) in favor
// of a single-shot batch tool.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"spotfind"
	"spotfind/internal/logger"
	"spotfind/internal/sink"

	_ "golang.org/x/image/tiff"
)

func main() {
	configureRuntime()

	var (
		diameter   = flag.Int("diameter", 11, "feature diameter in pixels (must be odd)")
		minMass    = flag.Float64("minmass", 0, "minimum integrated brightness")
		percentile = flag.Float64("percentile", 64, "detector percentile threshold")
		invert     = flag.Bool("invert", false, "locate dark features on a light background")
		engineName = flag.String("engine", "auto", `engine: "auto", "scalar", or "fast2d"`)
		verbose    = flag.Bool("verbose", false, "log a debug event per located feature")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: locate [flags] <image-file>")
		os.Exit(2)
	}

	appLogger := logger.NewConsoleLogger(determineLogLevel(*verbose))

	img, err := decodeGray(flag.Arg(0))
	if err != nil {
		log.Fatalf("decode %s: %v", flag.Arg(0), err)
	}

	table, diagnostics, err := spotfind.Locate(img, []int{*diameter, *diameter},
		spotfind.WithMinMass(*minMass),
		spotfind.WithPercentile(*percentile),
		spotfind.WithInvert(*invert),
		spotfind.WithEngine(*engineName),
	)
	if err != nil {
		log.Fatalf("locate: %v", err)
	}

	sink.NewLogger(appLogger, *verbose).Write(table, diagnostics)

	if err := sink.NewCSVWriter(os.Stdout).Write(table); err != nil {
		log.Fatalf("write csv: %v", err)
	}
}

func configureRuntime() {
	runtime.GOMAXPROCS(runtime.NumCPU())
}

func determineLogLevel(verbose bool) zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// decodeGray loads any image format registered via an image/... blank
// import and converts it to a *spotfind.Image of uint8 grayscale samples,
// row-major in (row, col) axis order.
func decodeGray(path string) (*spotfind.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	rows, cols := bounds.Dy(), bounds.Dx()
	data := make([]uint8, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			gray := (299*r + 587*g + 114*b) / 1000
			data[y*cols+x] = uint8(gray >> 8)
		}
	}
	return spotfind.NewImageUint8(data, []int{rows, cols}), nil
}
