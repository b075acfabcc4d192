// Single-channel port of the StackBlur algorithm described at
// http://incubator.quasimondo.com/processing/fast_blur_deluxe.php
// used to soften the feather mask edge.

package blend

import "image"

var mulTable = []uint32{
	512, 512, 456, 512, 328, 456, 335, 512, 405, 328, 271, 456, 388, 335, 292, 512,
	454, 405, 364, 328, 298, 271, 496, 456, 420, 388, 360, 335, 312, 292, 273, 512,
	482, 454, 428, 405, 383, 364, 345, 328, 312, 298, 284, 271, 259, 496, 475, 456,
	437, 420, 404, 388, 374, 360, 347, 335, 323, 312, 302, 292, 282, 273, 265, 512,
	497, 482, 468, 454, 441, 428, 417, 405, 394, 383, 373, 364, 354, 345, 337, 328,
	320, 312, 305, 298, 291, 284, 278, 271, 265, 259, 507, 496, 485, 475, 465, 456,
	446, 437, 428, 420, 412, 404, 396, 388, 381, 374, 367, 360, 354, 347, 341, 335,
	329, 323, 318, 312, 307, 302, 297, 292, 287, 282, 278, 273, 269, 265, 261, 512,
	505, 497, 489, 482, 475, 468, 461, 454, 447, 441, 435, 428, 422, 417, 411, 405,
	399, 394, 389, 383, 378, 373, 368, 364, 359, 354, 350, 345, 341, 337, 332, 328,
	324, 320, 316, 312, 309, 305, 301, 298, 294, 291, 287, 284, 281, 278, 274, 271,
	268, 265, 262, 259, 257, 507, 501, 496, 491, 485, 480, 475, 470, 465, 460, 456,
	451, 446, 442, 437, 433, 428, 424, 420, 416, 412, 408, 404, 400, 396, 392, 388,
	385, 381, 377, 374, 370, 367, 363, 360, 357, 354, 350, 347, 344, 341, 338, 335,
	332, 329, 326, 323, 320, 318, 315, 312, 310, 307, 304, 302, 299, 297, 294, 292,
	289, 287, 285, 282, 280, 278, 275, 273, 271, 269, 267, 265, 263, 261, 259,
}

var shgTable = []uint32{
	9, 11, 12, 13, 13, 14, 14, 15, 15, 15, 15, 16, 16, 16, 16, 17,
	17, 17, 17, 17, 17, 17, 18, 18, 18, 18, 18, 18, 18, 18, 18, 19,
	19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 20, 20, 20,
	20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 21,
	21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21,
	21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 22, 22, 22, 22, 22, 22,
	22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22,
	22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 23,
	23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23,
	23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23,
	23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23,
	23, 23, 23, 23, 23, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24,
}

// blurAlpha stack-blurs an alpha mask in place with the given radius.
// Radii below 1 are a no-op.
func blurAlpha(img *image.Alpha, radius int) {
	if radius < 1 {
		return
	}
	if radius > len(mulTable)-1 {
		radius = len(mulTable) - 1
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	mul, shg := mulTable[radius], shgTable[radius]

	// Horizontal pass, then vertical.
	blurPass(img.Pix, w, h, img.Stride, 1, radius, mul, shg)
	blurPass(img.Pix, h, w, 1, img.Stride, radius, mul, shg)
}

// blurPass blurs along one axis: lines of length n, count of them,
// step between adjacent values in a line, lineStride between lines.
func blurPass(pix []uint8, n, count, step, lineStride, radius int, mul, shg uint32) {
	div := 2*radius + 1
	stack := make([]uint32, div)
	last := n - 1

	for line := 0; line < count; line++ {
		base := line * lineStride
		at := func(i int) int {
			if i > last {
				i = last
			}
			return base + i*step
		}

		edge := uint32(pix[at(0)])
		var sum, inSum uint32
		outSum := edge * uint32(radius+1)
		for i := 0; i <= radius; i++ {
			stack[i] = edge
			sum += edge * uint32(i+1)
		}
		for i := 1; i <= radius; i++ {
			v := uint32(pix[at(i)])
			stack[radius+i] = v
			sum += v * uint32(radius+1-i)
			inSum += v
		}

		inIdx, outIdx := 0, radius+1
		for i := 0; i < n; i++ {
			pix[at(i)] = uint8((sum * mul) >> shg)

			sum -= outSum
			outSum -= stack[inIdx]

			v := uint32(pix[at(i+radius+1)])
			stack[inIdx] = v
			inSum += v
			sum += inSum
			if inIdx++; inIdx == div {
				inIdx = 0
			}

			center := stack[outIdx]
			outSum += center
			inSum -= center
			if outIdx++; outIdx == div {
				outIdx = 0
			}
		}
	}
}
