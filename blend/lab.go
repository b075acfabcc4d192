// Package blend implements the photometric half of the face swap: LAB
// color statistics and Reinhard transfer, brightness/contrast
// correction, the edge-feathered alpha mask and the final mask
// compositing.
package blend

import "math"

// CIE LAB constants under the D65 illuminant.
const (
	labEpsilon = 0.008856
	labKappa   = 903.3

	refWhiteX = 0.95047
	refWhiteY = 1.0
	refWhiteZ = 1.08883
)

// srgbToLinear removes the sRGB gamma from a [0,1] channel value.
func srgbToLinear(c float64) float64 {
	if c > 0.04045 {
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return c / 12.92
}

// linearToSRGB applies the sRGB gamma to a [0,1] linear channel value.
func linearToSRGB(c float64) float64 {
	if c > 0.0031308 {
		return 1.055*math.Pow(c, 1/2.4) - 0.055
	}
	return c * 12.92
}

func labForward(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16) / 116
}

// RGBToLab converts an 8-bit sRGB color to CIE LAB (D65).
func RGBToLab(r, g, b uint8) (float64, float64, float64) {
	rl := srgbToLinear(float64(r) / 255)
	gl := srgbToLinear(float64(g) / 255)
	bl := srgbToLinear(float64(b) / 255)

	// Linear RGB to XYZ through the sRGB matrix.
	x := 0.4124564*rl + 0.3575761*gl + 0.1804375*bl
	y := 0.2126729*rl + 0.7151522*gl + 0.0721750*bl
	z := 0.0193339*rl + 0.1191920*gl + 0.9503041*bl

	fx := labForward(x / refWhiteX)
	fy := labForward(y / refWhiteY)
	fz := labForward(z / refWhiteZ)

	return 116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)
}

// LabToRGB converts a CIE LAB (D65) color back to 8-bit sRGB, clamping
// out-of-gamut values. Round-tripping any 8-bit RGB triple through
// RGBToLab recovers the original channels within one integer level.
func LabToRGB(l, a, b float64) (uint8, uint8, uint8) {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200

	var xr, yr, zr float64
	if fx3 := fx * fx * fx; fx3 > labEpsilon {
		xr = fx3
	} else {
		xr = (116*fx - 16) / labKappa
	}
	if l > labKappa*labEpsilon {
		yr = fy * fy * fy
	} else {
		yr = l / labKappa
	}
	if fz3 := fz * fz * fz; fz3 > labEpsilon {
		zr = fz3
	} else {
		zr = (116*fz - 16) / labKappa
	}

	x := xr * refWhiteX
	y := yr * refWhiteY
	z := zr * refWhiteZ

	// XYZ to linear RGB through the inverse sRGB matrix.
	rl := 3.2404542*x - 1.5371385*y - 0.4985314*z
	gl := -0.9692660*x + 1.8760108*y + 0.0415560*z
	bl := 0.0556434*x - 0.2040259*y + 1.0572252*z

	return clampChannel(linearToSRGB(rl)),
		clampChannel(linearToSRGB(gl)),
		clampChannel(linearToSRGB(bl))
}

// clampChannel maps a [0,1] value to an 8-bit channel, clamping first.
func clampChannel(c float64) uint8 {
	v := math.Round(c * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
