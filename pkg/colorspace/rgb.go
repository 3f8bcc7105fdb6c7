package colorspace

import "github.com/tavianator/pixelforest/pkg/nn"

// RGBSpace is sRGB treated as a Cartesian point in [0, 1]^3, for generation
// modes that search and order colors in their native wire space.
type RGBSpace [3]float64

// FromRGB converts an 8-bit sRGB color into RGBSpace.
func FromRGB(c RGB) RGBSpace {
	return RGBSpace(rgbToLinear(c))
}

// ToRGB quantizes an RGBSpace point back to 8-bit sRGB.
func (s RGBSpace) ToRGB() RGB {
	clamp := func(v float64) uint8 {
		v = v*255.0 + 0.5
		if v <= 0 {
			return 0
		}
		if v >= 255 {
			return 255
		}
		return uint8(v)
	}
	return NewRGB(clamp(s[0]), clamp(s[1]), clamp(s[2]))
}

func (s RGBSpace) Dimensions() int          { return 3 }
func (s RGBSpace) Coordinate(i int) float64 { return s[i] }

// Distance computes the squared Euclidean distance to another RGBSpace
// point, satisfying nn.Proximity[RGBSpace, nn.SquaredDistance].
func (s RGBSpace) Distance(other RGBSpace) nn.SquaredDistance {
	return nn.NewSquaredFromSquare(squaredEuclidean3([3]float64(s), [3]float64(other)))
}

// DistanceToCoordinates satisfies kdtree.Query, letting k-d trees over
// RGBSpace prune by raw coordinate without reconstructing a point.
func (s RGBSpace) DistanceToCoordinates(point nn.CoordinateVector) nn.SquaredDistance {
	return nn.NewSquaredFromSquare(squaredEuclidean3([3]float64(s), [3]float64{point[0], point[1], point[2]}))
}

// Average computes the component-wise mean of a set of RGBSpace colors.
func (s RGBSpace) Average(colors ...RGBSpace) RGBSpace {
	vecs := make([][3]float64, len(colors))
	for i, c := range colors {
		vecs[i] = [3]float64(c)
	}
	return RGBSpace(average3(vecs))
}
