package curve_test

import (
	"testing"

	"github.com/tavianator/pixelforest/pkg/colorspace"
	"github.com/tavianator/pixelforest/pkg/curve"
)

func countTotal(dims []int) int {
	total := 1
	for _, d := range dims {
		total *= d
	}
	return total
}

func assertVisitsEveryColorOnce(t *testing.T, name string, colors []colorspace.RGB, want int) {
	t.Helper()
	if len(colors) != want {
		t.Fatalf("%s visited %d colors, want %d", name, len(colors), want)
	}
	seen := make(map[colorspace.RGB]bool, len(colors))
	for _, c := range colors {
		if seen[c] {
			t.Errorf("%s visited %v more than once", name, c)
		}
		seen[c] = true
	}
}

func TestHilbertOrderVisitsEveryColorOnce(t *testing.T) {
	source := curve.AllColors(9)
	want := countTotal(source.Dimensions())
	assertVisitsEveryColorOnce(t, "HilbertOrder", curve.HilbertOrder(source), want)
}

func TestMortonOrderVisitsEveryColorOnce(t *testing.T) {
	source := curve.AllColors(9)
	want := countTotal(source.Dimensions())
	assertVisitsEveryColorOnce(t, "MortonOrder", curve.MortonOrder(source), want)
}

func TestHueSortedVisitsEveryColorOnce(t *testing.T) {
	source := curve.AllColors(6)
	want := countTotal(source.Dimensions())
	assertVisitsEveryColorOnce(t, "HueSorted", curve.HueSorted(source), want)
}

func TestStripedExample(t *testing.T) {
	colors := make([]colorspace.RGB, 16)
	for i := range colors {
		colors[i] = colorspace.NewRGB(uint8(i), 0, 0)
	}

	got := curve.Striped(colors)
	want := []int{0, 2, 4, 6, 8, 10, 12, 14, 1, 5, 9, 13, 3, 11, 7, 15}
	if len(got) != len(want) {
		t.Fatalf("Striped returned %d colors, want %d", len(got), len(want))
	}
	for i, w := range want {
		if int(got[i].R) != w {
			t.Errorf("Striped[%d] = %d, want %d", i, got[i].R, w)
		}
	}
}

func TestShuffledIsAPermutation(t *testing.T) {
	source := curve.AllColors(6)
	want := countTotal(source.Dimensions())
	assertVisitsEveryColorOnce(t, "Shuffled", curve.Shuffled(source), want)
}

func TestImageSource(t *testing.T) {
	grid := [][]colorspace.RGB{
		{colorspace.NewRGB(1, 0, 0), colorspace.NewRGB(2, 0, 0)},
		{colorspace.NewRGB(3, 0, 0), colorspace.NewRGB(4, 0, 0)},
	}
	source := curve.NewImageSource(2, 2, func(x, y int) colorspace.RGB {
		return grid[y][x]
	})

	if dims := source.Dimensions(); dims[0] != 2 || dims[1] != 2 {
		t.Fatalf("Dimensions() = %v, want [2 2]", dims)
	}
	if c := source.ColorAt([]int{1, 0}); c != grid[0][1] {
		t.Errorf("ColorAt([1,0]) = %v, want %v", c, grid[0][1])
	}
}
