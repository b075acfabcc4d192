package mesh

import "math"

// Rect is an axis-aligned rectangle in pixel coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// BoundingBox returns the landmark bounding box expanded by 10% of the
// larger face dimension on all sides and clamped to the image extent.
// An empty landmark set yields the full image rectangle.
func BoundingBox(pts []Point, imgW, imgH int) Rect {
	w, h := float64(imgW), float64(imgH)
	if len(pts) == 0 {
		return Rect{Width: w, Height: h}
	}

	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	pad := 0.1 * math.Max(maxX-minX, maxY-minY)

	x0 := math.Max(minX-pad, 0)
	y0 := math.Max(minY-pad, 0)
	x1 := math.Min(maxX+pad, w)
	y1 := math.Min(maxY+pad, h)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
