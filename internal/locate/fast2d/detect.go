package fast2d

import (
	"image"

	"gocv.io/x/gocv"

	"spotfind/internal/locate/arr"
	"spotfind/internal/locate/detect"
	"spotfind/internal/locate/diag"
	"spotfind/internal/locate/ndops"
)

// LocalMaxima implements spec.md §4.3's peak detector using gocv.Dilate
// with an elliptical structuring element in place of ndops.GreyDilation.
// The candidate/margin rules are shared with the scalar engine via
// detect.CandidatesFromDilation.
func LocalMaxima(image2D *arr.Array, radius int, percentile float64, margin []int) ([][]int, *diag.Diagnostic, error) {
	threshold, blackImage := ndops.PercentileOfNonzero(image2D, percentile)
	if blackImage {
		d := diag.New(diag.BlackImage, "image is completely black")
		return nil, &d, nil
	}

	srcMat, err := NewMatFromArray(image2D)
	if err != nil {
		return nil, nil, err
	}
	defer srcMat.Close()

	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(2*radius+1, 2*radius+1))
	defer kernel.Close()

	dilatedMat := gocv.NewMat()
	defer dilatedMat.Close()
	gocv.Dilate(*srcMat.GocvMat(), &dilatedMat, kernel)

	dilated := gocvMatToArray(&dilatedMat, image2D.Dtype)

	coords, d := detect.CandidatesFromDilation(image2D, dilated, threshold, margin)
	return coords, d, nil
}
