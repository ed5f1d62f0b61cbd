package spotfind

import (
	"math"
	"testing"

	"spotfind/internal/locate/locatetest"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestLocateOnBlackImageReturnsEmptyTableAndDiagnostic(t *testing.T) {
	img := locatetest.FlatUint8([]int{21, 23}, 0)
	table, diagnostics, err := Locate(img, []int{5, 5}, WithPreprocess(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Fatalf("expected an empty table, got %d rows", len(table.Rows))
	}
	if len(diagnostics) == 0 {
		t.Fatal("expected at least one diagnostic for a black image")
	}
}

func TestLocateOneDimPixelBelowMinMassReturnsEmpty(t *testing.T) {
	img := locatetest.FlatUint8([]int{21, 23}, 1)
	locatetest.SetPixel(img, []int{11, 13}, 100)
	table, diagnostics, err := Locate(img, []int{5, 5}, WithMinMass(1000), WithPreprocess(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Fatalf("expected no survivors, got %d rows", len(table.Rows))
	}
	if len(diagnostics) == 0 {
		t.Fatal("expected a no-survivors diagnostic")
	}
}

func TestLocateTwoByTwoBlockReturnsOneCenteredFeature(t *testing.T) {
	img := locatetest.FlatUint8([]int{21, 23}, 1)
	locatetest.SetBlock(img, []int{11, 13}, []int{13, 15}, 100)
	table, _, err := Locate(img, []int{5, 5}, WithPreprocess(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected exactly one feature, got %d", len(table.Rows))
	}
	// Pos is reported in reversed axis order: (x, y) = (col, row). The
	// background of 1 under the disk mask shifts each refined candidate by
	// about 0.016 px, so the midpoint is checked to 0.1 px.
	pos := table.Rows[0].Pos
	if !almostEqual(pos[0], 13.5, 0.1) || !almostEqual(pos[1], 11.5, 0.1) {
		t.Fatalf("Pos = %v, want approximately [13.5, 11.5] (x, y)", pos)
	}
}

func TestLocateTwoAdjacentPointsDedupToBrighter(t *testing.T) {
	img := locatetest.FlatUint8([]int{21, 23}, 1)
	locatetest.SetBlock(img, []int{11, 13}, []int{12, 16}, 100)
	locatetest.SetBlock(img, []int{14, 13}, []int{15, 16}, 101)
	table, _, err := Locate(img, []int{5, 5}, WithPreprocess(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected exactly one surviving feature after deduplication, got %d", len(table.Rows))
	}
	pos := table.Rows[0].Pos
	wantX, wantY := 14.0, 14.0
	if !almostEqual(pos[0], wantX, 0.5) || !almostEqual(pos[1], wantY, 0.5) {
		t.Fatalf("Pos = %v, want approximately [%v, %v] (x, y)", pos, wantX, wantY)
	}
}

func TestLocateGaussianFeatureSizeAndPositionAccuracy(t *testing.T) {
	img := locatetest.GaussianSpot2D(101, 103, 50.5, 55, 5, 200, 0)
	table, _, err := Locate(img, []int{39, 39}, WithMinMass(1), WithPreprocess(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected exactly one feature, got %d", len(table.Rows))
	}
	row := table.Rows[0]
	// Pos reversed: (x, y) = (col, row) = (55, 50.5).
	if !almostEqual(row.Pos[0], 55, 0.1) || !almostEqual(row.Pos[1], 50.5, 0.1) {
		t.Fatalf("Pos = %v, want approximately [55, 50.5] within 0.1px", row.Pos)
	}
	if !almostEqual(row.Size, 5, 0.5) {
		t.Fatalf("Size = %v, want approximately 5 within 10%%", row.Size)
	}
}

func TestLocateRejectsEvenDiameter(t *testing.T) {
	img := locatetest.FlatUint8([]int{21, 23}, 1)
	_, _, err := Locate(img, []int{4, 4})
	if err == nil {
		t.Fatal("expected an error for an even diameter")
	}
}

func TestLocateRejectsUnknownEngine(t *testing.T) {
	img := locatetest.FlatUint8([]int{21, 23}, 1)
	_, _, err := Locate(img, []int{5, 5}, WithEngine("nonexistent"))
	if err == nil {
		t.Fatal("expected an error for an unknown engine name")
	}
}

func TestLocateWarnsOnSuspectedColorImage(t *testing.T) {
	img := locatetest.FlatUint8([]int{20, 3}, 1)
	_, diagnostics, err := Locate(img, []int{5, 3}, WithPreprocess(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, d := range diagnostics {
		if d.Code == SuspectedColor {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a suspected-color-image diagnostic for a (20, 3)-shaped image")
	}
}

func TestLocateDisablesCharacterizeForAnisotropicRadius(t *testing.T) {
	img := locatetest.FlatUint8([]int{21, 23}, 1)
	locatetest.SetBlock(img, []int{11, 13}, []int{13, 15}, 100)
	table, _, err := Locate(img, []int{5, 9}, WithPreprocess(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Characterize {
		t.Fatal("characterize should be disabled for an anisotropic radius regardless of the request")
	}
}

func TestLocateScalarAndFast2DEngineAgreeOnIsotropic2D(t *testing.T) {
	img := locatetest.GaussianSpot2D(61, 61, 30, 30, 4, 200, 1)

	scalar, _, err := Locate(img, []int{15, 15}, WithMinMass(1), WithEngine("scalar"))
	if err != nil {
		t.Fatalf("scalar engine: unexpected error: %v", err)
	}
	fast, _, err := Locate(img, []int{15, 15}, WithMinMass(1), WithEngine("fast2d"))
	if err != nil {
		t.Fatalf("fast2d engine: unexpected error: %v", err)
	}

	if len(scalar.Rows) != 1 || len(fast.Rows) != 1 {
		t.Fatalf("expected exactly one feature from each engine, got scalar=%d fast2d=%d", len(scalar.Rows), len(fast.Rows))
	}

	s, f := scalar.Rows[0], fast.Rows[0]
	if !almostEqual(s.Pos[0], f.Pos[0], 0.1) || !almostEqual(s.Pos[1], f.Pos[1], 0.1) {
		t.Fatalf("positions diverge beyond 0.1px: scalar=%v fast2d=%v", s.Pos, f.Pos)
	}
	if math.Abs(s.Mass-f.Mass) > 0.01*s.Mass {
		t.Fatalf("masses diverge beyond 1%%: scalar=%v fast2d=%v", s.Mass, f.Mass)
	}
}
