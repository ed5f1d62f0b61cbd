package arr

import "testing"

func TestFromUint8RoundTrip(t *testing.T) {
	a := FromUint8([]uint8{1, 2, 3, 4, 5, 6}, []int{2, 3})
	if a.Ndim() != 2 || a.Len() != 6 {
		t.Fatalf("got ndim=%d len=%d, want ndim=2 len=6", a.Ndim(), a.Len())
	}
	if got := a.At([]int{1, 2}); got != 6 {
		t.Fatalf("At([1,2]) = %v, want 6", got)
	}
}

func TestIndexMatchesRowMajorOrder(t *testing.T) {
	a := New([]int{2, 3}, Float64)
	for i := range a.Data {
		a.Data[i] = float64(i)
	}
	tests := []struct {
		coord []int
		want  float64
	}{
		{[]int{0, 0}, 0},
		{[]int{0, 2}, 2},
		{[]int{1, 0}, 3},
		{[]int{1, 2}, 5},
	}
	for _, tc := range tests {
		if got := a.At(tc.coord); got != tc.want {
			t.Errorf("At(%v) = %v, want %v", tc.coord, got, tc.want)
		}
	}
}

func TestInBounds(t *testing.T) {
	a := New([]int{4, 5}, Uint8)
	cases := []struct {
		coord []int
		want  bool
	}{
		{[]int{0, 0}, true},
		{[]int{3, 4}, true},
		{[]int{4, 0}, false},
		{[]int{-1, 0}, false},
	}
	for _, c := range cases {
		if got := a.InBounds(c.coord); got != c.want {
			t.Errorf("InBounds(%v) = %v, want %v", c.coord, got, c.want)
		}
	}
}

func TestDtypeIntegerAndGamut(t *testing.T) {
	if !Uint8.Integer() || !Uint16.Integer() {
		t.Fatal("Uint8 and Uint16 must be Integer")
	}
	if Float32.Integer() || Float64.Integer() {
		t.Fatal("Float32 and Float64 must not be Integer")
	}
	if Uint8.Gamut() != 255 || Uint16.Gamut() != 65535 {
		t.Fatalf("unexpected integer gamut: uint8=%v uint16=%v", Uint8.Gamut(), Uint16.Gamut())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := FromUint8([]uint8{1, 2, 3}, []int{3})
	b := a.Clone()
	b.Data[0] = 99
	if a.Data[0] == 99 {
		t.Fatal("Clone shared underlying storage with the original")
	}
}

func TestEachCoordVisitsEveryOffsetOnce(t *testing.T) {
	a := New([]int{2, 2, 3}, Float64)
	seen := make(map[int]bool)
	a.EachCoord(func(coord []int, offset int) {
		seen[offset] = true
		if a.Index(coord) != offset {
			t.Errorf("EachCoord coord %v maps to offset %d via Index, want %d", coord, a.Index(coord), offset)
		}
	})
	if len(seen) != a.Len() {
		t.Fatalf("EachCoord visited %d offsets, want %d", len(seen), a.Len())
	}
}
