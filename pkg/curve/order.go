package curve

import (
	"math/rand/v2"
	"sort"

	"github.com/tavianator/pixelforest/pkg/colorspace"
)

// log2Ceil returns ceil(log2(n)) for rounding dimension sizes up to powers
// of two.
func log2Ceil(n int) uint {
	if n <= 1 {
		return 0
	}
	bits := uint(0)
	for v := n - 1; v > 0; v >>= 1 {
		bits++
	}
	return bits
}

// MortonOrder enumerates source's colors in Morton (Z-order) order: a
// bit-interleave of each coordinate axis.
func MortonOrder(source Source) []colorspace.RGB {
	dims := source.Dimensions()
	ndims := len(dims)

	maxBits := uint(0)
	for _, d := range dims {
		if b := log2Ceil(d); b > maxBits {
			maxBits = b
		}
	}
	nbits := uint(ndims) * maxBits

	size := uint64(1) << nbits
	coords := make([]int, ndims)

	var colors []colorspace.RGB
	for i := uint64(0); i < size; i++ {
		for x := range coords {
			coords[x] = 0
		}
		for j := uint(0); j < nbits; j++ {
			bit := (i >> j) & 1
			coords[int(j)%ndims] |= int(bit) << (j / uint(ndims))
		}

		inBounds := true
		for x, n := range dims {
			if coords[x] >= n {
				inBounds = false
				break
			}
		}
		if inBounds {
			colors = append(colors, source.ColorAt(coords))
		}
	}

	return colors
}

// HilbertOrder enumerates source's colors along a compact Hilbert curve
// through its coordinate space.
func HilbertOrder(source Source) []colorspace.RGB {
	dims := source.Dimensions()
	ndims := len(dims)

	bits := make([]uint, ndims)
	var nbits uint
	for i, d := range dims {
		bits[i] = log2Ceil(d)
		nbits += bits[i]
	}
	size := uint64(1) << nbits

	coordsU := make([]uint, ndims)
	coords := make([]int, ndims)

	var colors []colorspace.RGB
	for i := uint64(0); i < size; i++ {
		hilbertPoint(uint(i), bits, coordsU)

		inBounds := true
		for x, n := range dims {
			coords[x] = int(coordsU[x])
			if coords[x] >= n {
				inBounds = false
				break
			}
		}
		if inBounds {
			colors = append(colors, source.ColorAt(coords))
		}
	}

	return colors
}

// hue is a color's position on the hue wheel, kept as a quadrant plus a
// cross-multipliable numerator/denominator so colors can be ordered without
// computing atan2.
type hue struct {
	quad, num, denom int32
}

// hueOf computes the hue angle atan2(sqrt(3)*(G-B), 2R-G-B) of c, without
// the atan2 call.
func hueOf(c colorspace.RGB) hue {
	r, g, b := int32(c.R), int32(c.G), int32(c.B)

	num := g - b
	denom := 2*r - g - b
	if num == 0 && denom == 0 {
		denom = 1
	}

	var quad int32
	switch {
	case num >= 0 && denom >= 0:
		quad = 0
	case num >= 0 && denom < 0:
		quad = 1
	case num < 0 && denom < 0:
		quad = 2
	default:
		quad = 3
	}

	return hue{quad: quad, num: num, denom: denom}
}

// less reports whether h's angle is strictly less than other's, using
// cross-multiplication instead of division: within a quadrant,
// atan2(n1,d1) < atan2(n2,d2) iff n1*d2 < n2*d1.
func (h hue) less(other hue) bool {
	if h.quad != other.quad {
		return h.quad < other.quad
	}
	return int64(h.num)*int64(other.denom) < int64(other.num)*int64(h.denom)
}

// HueSorted enumerates source's colors sorted by hue angle.
func HueSorted(source Source) []colorspace.RGB {
	colors := AllOrder(source)
	sort.Slice(colors, func(i, j int) bool {
		return hueOf(colors[i]).less(hueOf(colors[j]))
	})
	return colors
}

// Shuffled enumerates source's colors in a uniformly random order.
func Shuffled(source Source) []colorspace.RGB {
	colors := AllOrder(source)
	rand.Shuffle(len(colors), func(i, j int) {
		colors[i], colors[j] = colors[j], colors[i]
	})
	return colors
}

// Striped reorders colors by interleaved "stripes" (every other item, then
// every other item of what's left, and so on) to reduce banding artifacts
// in the generated image. The striped form of 0..16 is
// [0, 2, 4, 6, 8, 10, 12, 14, 1, 5, 9, 13, 3, 11, 7, 15].
func Striped(colors []colorspace.RGB) []colorspace.RGB {
	n := len(colors)
	result := make([]colorspace.RGB, 0, n)
	for stripe := 1; stripe <= n; stripe *= 2 {
		for i := stripe - 1; i < n; i += 2 * stripe {
			result = append(result, colors[i])
		}
	}
	return result
}
