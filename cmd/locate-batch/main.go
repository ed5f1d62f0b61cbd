// Command locate-batch runs Locate over a directory of frames
// concurrently, fanning the work out across internal/batch's worker
// pool and writing one CSV table (with a frame column) to stdout. It is
// the real call site for internal/batch.Driver and ShutdownManager:
// cmd/locate stays single-image and does not need either.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/rs/zerolog"

	"spotfind"
	"spotfind/internal/batch"
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
		engineName = flag.String("engine", "auto", `engine: "auto", "scalar", or "fast2d"`)
		workers    = flag.Int("workers", 0, "worker pool size (0 = runtime.NumCPU())")
		verbose    = flag.Bool("verbose", false, "log a debug event per located feature")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: locate-batch [flags] <directory-of-images>")
		os.Exit(2)
	}

	appLogger := logger.NewConsoleLogger(determineLogLevel(*verbose))

	paths, err := framePaths(flag.Arg(0))
	if err != nil {
		log.Fatalf("list frames: %v", err)
	}

	shutdown := batch.NewShutdownManager(appLogger)
	shutdown.Listen()

	locateFrame := func(ctx context.Context, image interface{}) (interface{}, error) {
		img := image.(*spotfind.Image)
		table, diagnostics, err := spotfind.Locate(img, []int{*diameter, *diameter},
			spotfind.WithMinMass(*minMass),
			spotfind.WithPercentile(*percentile),
			spotfind.WithEngine(*engineName),
		)
		if err != nil {
			return nil, err
		}
		sink.NewLogger(appLogger, *verbose).Write(table, diagnostics)
		return table, nil
	}

	driver := batch.NewDriver(locateFrame, *workers)
	shutdown.Register(driver)

	frames := make([]batch.Frame, len(paths))
	for i, p := range paths {
		img, err := decodeGray(p)
		if err != nil {
			log.Fatalf("decode %s: %v", p, err)
		}
		frames[i] = batch.Frame{Index: i, Image: img}
	}

	results := driver.Run(shutdown.Context(), frames)

	merged := spotfind.Table{Characterize: true}
	for i, r := range results {
		if r.Err != nil {
			appLogger.Error("locate-batch", r.Err, map[string]interface{}{
				"frame": i, "path": paths[i],
			})
			continue
		}
		t := r.Value.(spotfind.Table)
		for _, row := range t.Rows {
			row.Frame = i
			row.HasFrame = true
			merged.Rows = append(merged.Rows, row)
		}
	}

	if err := sink.NewCSVWriter(os.Stdout).Write(merged); err != nil {
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

// framePaths lists a directory's files in name order, giving frames a
// stable, reproducible index.
func framePaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

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
