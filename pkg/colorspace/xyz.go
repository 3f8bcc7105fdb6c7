package colorspace

import "math"

// xyz is the internal CIE 1931 XYZ representation every perceptual space is
// derived from. It has no public Color methods of its own: nothing in
// SPEC_FULL.md searches or orders colors directly in XYZ, only through Lab,
// Luv, and Oklab.
type xyz [3]float64

func rgbToXYZ(c RGB) xyz {
	lin := rgbToLinear(c)
	r := srgbInverseGamma(lin[0])
	g := srgbInverseGamma(lin[1])
	b := srgbInverseGamma(lin[2])

	return xyz{
		0.4123808838268995*r + 0.3575728355732478*g + 0.1804522977447919*b,
		0.2126198631048975*r + 0.7151387878413206*g + 0.0721499433963131*b,
		0.0193434956789248*r + 0.1192121694056356*g + 0.9505065664127130*b,
	}
}

// whiteD65 is the CIE D65 white point (the reference white of the sRGB
// matrix in rgbToXYZ) that Lab and Luv normalize against.
var whiteD65 = xyz{0.9504060171449392, 0.9999085943425312, 1.089062231497274}

// labGamma is the shared CIE L*a*b* / L*u*v* nonlinearity.
func labGamma(t float64) float64 {
	const delta3 = 216.0 / 24389.0
	if t > delta3 {
		return math.Cbrt(t)
	}
	return 841.0*t/108.0 + 4.0/29.0
}

// uvPrime computes the u' and v' chromaticity coordinates used by L*u*v*.
func uvPrime(c xyz) (u, v float64) {
	denom := c[0] + 15.0*c[1] + 3.0*c[2]
	if denom == 0 {
		return 0, 0
	}
	return 4.0 * c[0] / denom, 9.0 * c[1] / denom
}
