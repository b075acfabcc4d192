package faceswap

import (
	"image"
	"image/color"
	"math"

	"github.com/doctorjana/FunnyFaceSwap/mesh"
)

// Diagnostic overlay colors.
var (
	triangleColor = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}
	hullColor     = color.NRGBA{G: 0xc8, A: 0xff}
	boxColor      = color.NRGBA{R: 0xe9, G: 0x1e, B: 0x63, A: 0xff}
)

// DrawWireframe renders the triangulation, convex hull and bounding box
// of a mesh onto dst so a caller can display diagnostic overlays. The
// buffer is drawn on in place.
func DrawWireframe(dst *image.NRGBA, m *mesh.Mesh) {
	if m == nil {
		return
	}

	for _, t := range m.Triangles {
		if !t.Valid(len(m.Points)) {
			continue
		}
		a, b, c := m.Points[t[0]], m.Points[t[1]], m.Points[t[2]]
		drawLine(dst, a, b, triangleColor)
		drawLine(dst, b, c, triangleColor)
		drawLine(dst, c, a, triangleColor)
	}

	for i, idx := range m.Hull {
		next := m.Points[m.Hull[(i+1)%len(m.Hull)]]
		drawLine(dst, m.Points[idx], next, hullColor)
	}

	box := m.Box
	corners := []mesh.Point{
		{X: box.X, Y: box.Y},
		{X: box.X + box.Width, Y: box.Y},
		{X: box.X + box.Width, Y: box.Y + box.Height},
		{X: box.X, Y: box.Y + box.Height},
	}
	for i := range corners {
		drawLine(dst, corners[i], corners[(i+1)%4], boxColor)
	}
}

// drawLine plots a one pixel wide segment by stepping along its longer
// axis.
func drawLine(dst *image.NRGBA, a, b mesh.Point, c color.NRGBA) {
	steps := math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))
	if steps < 1 {
		steps = 1
	}
	bounds := dst.Bounds()
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		x := int(a.X + (b.X-a.X)*t)
		y := int(a.Y + (b.Y-a.Y)*t)
		if image.Pt(x, y).In(bounds) {
			dst.SetNRGBA(x, y, c)
		}
	}
}
