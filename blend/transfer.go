package blend

import "image"

// TransferColor applies Reinhard statistical color transfer in LAB
// space: every non-transparent pixel is remapped so the image's color
// statistics (from) match the target's (to). A zero source deviation is
// treated as 1 to guard the division. The input buffer is not modified.
func TransferColor(img *image.NRGBA, from, to Stats) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	copy(out.Pix, img.Pix)

	// Identical statistics make the transfer an exact no-op; skip the
	// conversion pass so pixels stay bit-identical.
	if from.Equal(to) {
		return out
	}

	var scale, shift [3]float64
	for c := 0; c < 3; c++ {
		sd := from.Std[c]
		if sd == 0 {
			sd = 1
		}
		scale[c] = to.Std[c] / sd
		shift[c] = to.Mean[c]
	}

	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i+3] == 0 {
			continue
		}
		l, a, b := RGBToLab(out.Pix[i], out.Pix[i+1], out.Pix[i+2])

		l = (l-from.Mean[0])*scale[0] + shift[0]
		a = (a-from.Mean[1])*scale[1] + shift[1]
		b = (b-from.Mean[2])*scale[2] + shift[2]

		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = LabToRGB(l, a, b)
	}
	return out
}
