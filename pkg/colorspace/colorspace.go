// Package colorspace implements the color spaces a generation run can order
// and search colors in: sRGB itself, and three perceptually-motivated spaces
// (CIE Lab, CIE Luv, Oklab) that a nearest-neighbor search over raw sRGB
// would not serve well.
//
// Every space is a 3-dimensional Cartesian point with its own Euclidean
// metric, so each one plugs directly into pkg/nn's generic indices.
package colorspace

import (
	"math"

	"github.com/tavianator/pixelforest/pkg/nn"
)

// RGB is an 8-bit sRGB color, the wire format colors arrive and leave in.
type RGB struct {
	R, G, B uint8
}

// NewRGB builds an RGB from its three 8-bit channels.
func NewRGB(r, g, b uint8) RGB {
	return RGB{R: r, G: g, B: b}
}

// Color is a color space: a Cartesian point with its own squared-Euclidean
// metric and a component-wise average. It is the type constraint pkg/curve
// and pkg/frontier build on, so any space added here is usable everywhere
// else in the module without further wiring.
type Color[T any] interface {
	nn.Cartesian
	nn.Proximity[T, nn.SquaredDistance]

	// DistanceToCoordinates measures the squared-Euclidean distance to a raw
	// coordinate vector, the extra method kdtree.Query needs for pruning.
	DistanceToCoordinates(point nn.CoordinateVector) nn.SquaredDistance

	// Average computes the average of a set of colors in this space.
	Average(colors ...T) T
}

func average3(colors [][3]float64) [3]float64 {
	var sum [3]float64
	for _, c := range colors {
		sum[0] += c[0]
		sum[1] += c[1]
		sum[2] += c[2]
	}
	n := float64(len(colors))
	return [3]float64{sum[0] / n, sum[1] / n, sum[2] / n}
}

// srgbInverseGamma linearizes a gamma-encoded sRGB channel in [0, 1].
func srgbInverseGamma(t float64) float64 {
	if t <= 0.040449936 {
		return t / 12.92
	}
	return math.Pow((t+0.055)/1.055, 2.4)
}

func rgbToLinear(rgb8 RGB) [3]float64 {
	return [3]float64{
		float64(rgb8.R) / 255.0,
		float64(rgb8.G) / 255.0,
		float64(rgb8.B) / 255.0,
	}
}

// squaredEuclidean3 computes the squared Euclidean distance between two
// 3-vectors, shared by every color space's Distance method.
func squaredEuclidean3(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dx*dx + dy*dy + dz*dz
}
