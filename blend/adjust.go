package blend

import "image"

// AdjustBrightnessContrast shifts every channel by (brightness/100)*255
// and scales it around the 128 mid-level with the standard contrast
// factor 259*(c+255) / (255*(259-c)). Both parameters range -100..100.
// The result is always a fresh buffer; when both parameters are 0 the
// pixels are copied verbatim, skipping the lookup pass.
func AdjustBrightnessContrast(img *image.NRGBA, brightness, contrast float64) *image.NRGBA {
	if brightness == 0 && contrast == 0 {
		out := image.NewNRGBA(img.Bounds())
		copy(out.Pix, img.Pix)
		return out
	}

	shift := brightness / 100 * 255
	factor := (259 * (contrast + 255)) / (255 * (259 - contrast))

	// Per-channel lookup table: the mapping is independent of position.
	var lut [256]uint8
	for v := 0; v < 256; v++ {
		adj := factor*(float64(v)+shift-128) + 128
		if adj < 0 {
			adj = 0
		}
		if adj > 255 {
			adj = 255
		}
		lut[v] = uint8(adj + 0.5)
	}

	out := image.NewNRGBA(img.Bounds())
	for i := 0; i < len(img.Pix); i += 4 {
		out.Pix[i] = lut[img.Pix[i]]
		out.Pix[i+1] = lut[img.Pix[i+1]]
		out.Pix[i+2] = lut[img.Pix[i+2]]
		out.Pix[i+3] = img.Pix[i+3]
	}
	return out
}
