// Package frontier implements pixel placement policies: strategies for
// choosing where on a canvas each color in a generation run's ordered
// sequence should land.
package frontier

import "github.com/tavianator/pixelforest/pkg/colorspace"

// Frontier chooses placements for an ordered stream of colors.
type Frontier interface {
	// Width is the width of the image being generated.
	Width() uint32

	// Height is the height of the image being generated.
	Height() uint32

	// Len is the number of pixels currently open for placement.
	Len() int

	// Place finds a position for c and marks it filled, returning its
	// coordinates. ok is false only if the frontier has no room left.
	Place(c colorspace.RGB) (x, y uint32, ok bool)
}

// pixelIndex maps a coordinate to its position in a width*height row-major
// pixel slice.
func pixelIndex(x, y, width uint32) int {
	return int(x + y*width)
}

// neighbors returns the 8-connected (Moore neighborhood) coordinates around
// (x, y), matching original_source/src/frontier.rs's neighbors(). Callers
// must filter out-of-bounds entries themselves, since x and y are unsigned
// and an offset can wrap.
func neighbors(x, y uint32) [8][2]uint32 {
	return [8][2]uint32{
		{x - 1, y - 1}, {x, y - 1}, {x + 1, y - 1},
		{x - 1, y}, {x + 1, y},
		{x - 1, y + 1}, {x, y + 1}, {x + 1, y + 1},
	}
}
