package colorspace

import "github.com/tavianator/pixelforest/pkg/nn"

// LuvSpace is CIE L*u*v*, an alternative perceptual space that is more
// amenable to additive mixing than L*a*b*.
type LuvSpace [3]float64

// FromRGBLuv converts an 8-bit sRGB color into LuvSpace.
func FromRGBLuv(c RGB) LuvSpace {
	z := rgbToXYZ(c)

	uprime, vprime := uvPrime(z)
	unprime, vnprime := uvPrime(whiteD65)

	l := 116.0*labGamma(z[1]/whiteD65[1]) - 16.0
	u := 13.0 * l * (uprime - unprime)
	v := 13.0 * l * (vprime - vnprime)

	return LuvSpace{l, u, v}
}

func (s LuvSpace) Dimensions() int          { return 3 }
func (s LuvSpace) Coordinate(i int) float64 { return s[i] }

func (s LuvSpace) Distance(other LuvSpace) nn.SquaredDistance {
	return nn.NewSquaredFromSquare(squaredEuclidean3([3]float64(s), [3]float64(other)))
}

func (s LuvSpace) DistanceToCoordinates(point nn.CoordinateVector) nn.SquaredDistance {
	return nn.NewSquaredFromSquare(squaredEuclidean3([3]float64(s), [3]float64{point[0], point[1], point[2]}))
}

func (s LuvSpace) Average(colors ...LuvSpace) LuvSpace {
	vecs := make([][3]float64, len(colors))
	for i, c := range colors {
		vecs[i] = [3]float64(c)
	}
	return LuvSpace(average3(vecs))
}
