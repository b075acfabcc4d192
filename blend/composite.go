package blend

import "image"

// ApplyMask intersects the face buffer's alpha with the feather mask
// (Porter-Duff destination-in): pixels keep their color, alpha becomes
// the product of face alpha and mask coverage. The input buffer is not
// modified.
func ApplyMask(img *image.NRGBA, mask *image.Alpha) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	copy(out.Pix, img.Pix)

	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := out.PixOffset(x, y)
			a := out.Pix[i+3]
			if a == 0 {
				continue
			}
			var m uint32
			if image.Pt(x, y).In(mask.Bounds()) {
				m = uint32(mask.AlphaAt(x, y).A)
			}
			out.Pix[i+3] = uint8((uint32(a)*m + 127) / 255)
		}
	}
	return out
}

// Over composites src over dst in place using the non-premultiplied
// source-over formula. Both buffers must share the same bounds; pixels
// of src outside dst are ignored.
func Over(dst, src *image.NRGBA) {
	b := dst.Bounds().Intersect(src.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := src.PixOffset(x, y)
			sa := float64(src.Pix[si+3]) / 255
			if sa == 0 {
				continue
			}
			di := dst.PixOffset(x, y)
			da := float64(dst.Pix[di+3]) / 255

			outA := sa + da*(1-sa)
			if outA == 0 {
				continue
			}
			for c := 0; c < 3; c++ {
				sc := float64(src.Pix[si+c]) / 255
				dc := float64(dst.Pix[di+c]) / 255
				v := (sa*sc + da*dc*(1-sa)) / outA
				dst.Pix[di+c] = uint8(v*255 + 0.5)
			}
			dst.Pix[di+3] = uint8(outA*255 + 0.5)
		}
	}
}
