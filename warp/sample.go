package warp

import (
	"image"
	"image/color"
)

// bilinearNRGBA samples src at a fractional coordinate by blending the
// four surrounding pixels. It reports false for coordinates outside the
// image, which callers render as fully transparent.
func bilinearNRGBA(src *image.NRGBA, x, y float64) (color.NRGBA, bool) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if x < 0 || y < 0 || x > float64(w-1) || y > float64(h-1) {
		return color.NRGBA{}, false
	}

	x0, y0 := int(x), int(y)
	x1, y1 := x0+1, y0+1
	if x1 > w-1 {
		x1 = w - 1
	}
	if y1 > h-1 {
		y1 = h - 1
	}
	fx, fy := x-float64(x0), y-float64(y0)

	i00 := src.PixOffset(x0, y0)
	i10 := src.PixOffset(x1, y0)
	i01 := src.PixOffset(x0, y1)
	i11 := src.PixOffset(x1, y1)

	var out [4]uint8
	for c := 0; c < 4; c++ {
		top := float64(src.Pix[i00+c]) + (float64(src.Pix[i10+c])-float64(src.Pix[i00+c]))*fx
		bot := float64(src.Pix[i01+c]) + (float64(src.Pix[i11+c])-float64(src.Pix[i01+c]))*fx
		out[c] = uint8(top + (bot-top)*fy + 0.5)
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: out[3]}, true
}
