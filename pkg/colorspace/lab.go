package colorspace

import "github.com/tavianator/pixelforest/pkg/nn"

// LabSpace is CIE L*a*b*, a perceptually-motivated space whose Euclidean
// distance approximates perceived color difference far better than raw sRGB.
type LabSpace [3]float64

// FromRGBLab converts an 8-bit sRGB color into LabSpace.
func FromRGBLab(c RGB) LabSpace {
	z := rgbToXYZ(c)

	x := labGamma(z[0] / whiteD65[0])
	y := labGamma(z[1] / whiteD65[1])
	zz := labGamma(z[2] / whiteD65[2])

	l := 116.0*y - 16.0
	a := 500.0 * (x - y)
	b := 200.0 * (y - zz)

	return LabSpace{l, a, b}
}

func (s LabSpace) Dimensions() int          { return 3 }
func (s LabSpace) Coordinate(i int) float64 { return s[i] }

func (s LabSpace) Distance(other LabSpace) nn.SquaredDistance {
	return nn.NewSquaredFromSquare(squaredEuclidean3([3]float64(s), [3]float64(other)))
}

func (s LabSpace) DistanceToCoordinates(point nn.CoordinateVector) nn.SquaredDistance {
	return nn.NewSquaredFromSquare(squaredEuclidean3([3]float64(s), [3]float64{point[0], point[1], point[2]}))
}

func (s LabSpace) Average(colors ...LabSpace) LabSpace {
	vecs := make([][3]float64, len(colors))
	for i, c := range colors {
		vecs[i] = [3]float64(c)
	}
	return LabSpace(average3(vecs))
}
