package blend

import (
	"image"
	"math"

	"golang.org/x/image/vector"

	"github.com/doctorjana/FunnyFaceSwap/mesh"
)

// Feather gradient geometry on the normalized centroid-to-hull radius.
// The solid region ends at falloff/100 * solidScale, a short quick
// transition follows, and coverage reaches zero at fadeEnd (slightly
// past the hull so the blur has room to work with).
const (
	solidScale = 0.85
	quickSpan  = 0.15
	quickCap   = 0.98
	fadeEnd    = 1.05

	// Alpha fraction at the quick-transition stop.
	quickAlpha = 0.25

	// Blur is applied only above this edgeBlur setting, scaled down to
	// a stack blur radius.
	minEdgeBlur = 3
	blurScale   = 0.4
)

// HullMask rasterizes the convex hull polygon of a landmark set into an
// anti-aliased w x h coverage mask.
func HullMask(pts []mesh.Point, hull []int, w, h int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if len(hull) < 3 {
		return mask
	}

	r := vector.NewRasterizer(w, h)
	first := pts[hull[0]]
	r.MoveTo(float32(first.X), float32(first.Y))
	for _, idx := range hull[1:] {
		r.LineTo(float32(pts[idx].X), float32(pts[idx].Y))
	}
	r.ClosePath()
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// FeatherMask builds the alpha mask used to composite the warped face:
// the hull polygon of the landmark set filled with a radial gradient
// centered at the landmark centroid. falloff ranges 0 (gradual) to 100
// (abrupt: solid out to ~85% of the max centroid-to-hull distance).
// When edgeBlur exceeds 3 pixels the mask edge is softened with a
// Gaussian-equivalent stack blur of radius edgeBlur * 0.4.
func FeatherMask(pts []mesh.Point, hull []int, w, h int, falloff, edgeBlur float64) *image.Alpha {
	mask := HullMask(pts, hull, w, h)
	if len(hull) < 3 {
		return mask
	}

	centroid := mesh.Centroid(pts)
	var maxDist float64
	for _, idx := range hull {
		dx, dy := pts[idx].X-centroid.X, pts[idx].Y-centroid.Y
		maxDist = math.Max(maxDist, math.Hypot(dx, dy))
	}
	if maxDist == 0 {
		return mask
	}

	solid := falloff / 100 * solidScale
	quick := math.Min(solid+quickSpan, quickCap)

	b := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := mask.PixOffset(x, y)
			cov := mask.Pix[i]
			if cov == 0 {
				continue
			}
			r := math.Hypot(float64(x)-centroid.X, float64(y)-centroid.Y) / maxDist
			g := gradientAlpha(r, solid, quick)
			mask.Pix[i] = uint8(float64(cov)*g + 0.5)
		}
	}

	if edgeBlur > minEdgeBlur {
		blurAlpha(mask, int(edgeBlur*blurScale+0.5))
	}
	return mask
}

// gradientAlpha evaluates the radial gradient at normalized radius r:
// opaque up to the solid stop, a quick drop to quickAlpha, then a slow
// fade to transparent at fadeEnd.
func gradientAlpha(r, solid, quick float64) float64 {
	switch {
	case r <= solid:
		return 1
	case r <= quick:
		return 1 - (1-quickAlpha)*(r-solid)/(quick-solid)
	case r <= fadeEnd:
		return quickAlpha * (fadeEnd - r) / (fadeEnd - quick)
	default:
		return 0
	}
}
