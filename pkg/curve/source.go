// Package curve enumerates colors from a Source in several linear orders —
// Hilbert and Morton space-filling curves, hue angle, and a random shuffle —
// so a generation run can choose how it sweeps the color space onto the
// canvas.
package curve

import "github.com/tavianator/pixelforest/pkg/colorspace"

// Source is a multi-dimensional enumerable space of colors: the full RGB
// cube at some bit depth, or an image's pixels.
type Source interface {
	// Dimensions returns the size of each axis of this source's coordinate
	// space.
	Dimensions() []int

	// ColorAt returns the color at the given coordinates, one per axis.
	ColorAt(coords []int) colorspace.RGB
}

// allColors is the entire RGB cube at some bit depth, with bits distributed
// across channels in perceptual order of importance (G, then R, then B).
type allColors struct {
	dims   [3]int
	shifts [3]uint
}

// AllColors creates a Source enumerating every color representable with the
// given total bit depth (up to 24, one color per distinct value).
func AllColors(bits int) Source {
	gbits := (bits + 2) / 3
	rbits := (bits + 1) / 3
	bbits := bits / 3

	return &allColors{
		dims:   [3]int{1 << rbits, 1 << gbits, 1 << bbits},
		shifts: [3]uint{uint(8 - rbits), uint(8 - gbits), uint(8 - bbits)},
	}
}

func (a *allColors) Dimensions() []int {
	return []int{a.dims[0], a.dims[1], a.dims[2]}
}

func (a *allColors) ColorAt(coords []int) colorspace.RGB {
	return colorspace.NewRGB(
		uint8(coords[0]<<a.shifts[0]),
		uint8(coords[1]<<a.shifts[1]),
		uint8(coords[2]<<a.shifts[2]),
	)
}

// Image is a Source that draws its colors from an existing image, one color
// per pixel, traversed in (x, y) coordinates.
type Image struct {
	width, height int
	at            func(x, y int) colorspace.RGB
}

// NewImageSource wraps an image.Image's RGBA pixels as a Source, for
// target-image-driven generation (pkg/frontier's ImageTarget).
func NewImageSource(width, height int, at func(x, y int) colorspace.RGB) *Image {
	return &Image{width: width, height: height, at: at}
}

func (img *Image) Dimensions() []int {
	return []int{img.width, img.height}
}

func (img *Image) ColorAt(coords []int) colorspace.RGB {
	return img.at(coords[0], coords[1])
}

// allCoordinates enumerates every coordinate tuple in a Source's space, in
// the same row-major nested order original_source's ColorSourceIter uses.
func allCoordinates(dims []int) [][]int {
	if len(dims) == 0 {
		return nil
	}

	total := 1
	for _, d := range dims {
		total *= d
	}

	result := make([][]int, 0, total)
	coords := make([]int, len(dims))
	for {
		tuple := make([]int, len(coords))
		copy(tuple, coords)
		result = append(result, tuple)

		i := 0
		for {
			coords[i]++
			if coords[i] < dims[i] {
				break
			}
			coords[i] = 0
			i++
			if i == len(dims) {
				return result
			}
		}
	}
}

// AllOrder enumerates every color in source's natural (unsorted) coordinate
// order.
func AllOrder(source Source) []colorspace.RGB {
	coords := allCoordinates(source.Dimensions())
	colors := make([]colorspace.RGB, len(coords))
	for i, c := range coords {
		colors[i] = source.ColorAt(c)
	}
	return colors
}
