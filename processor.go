package faceswap

import (
	"image"

	"github.com/pkg/errors"

	"github.com/doctorjana/FunnyFaceSwap/blend"
	"github.com/doctorjana/FunnyFaceSwap/mesh"
	"github.com/doctorjana/FunnyFaceSwap/warp"
)

// WarpMode selects how the source face is mapped onto the destination
// geometry.
type WarpMode string

const (
	// WarpAffine warps each Delaunay triangle with its own affine map.
	// Fast and local; the default.
	WarpAffine WarpMode = "affine"
	// WarpSpline warps with a global thin-plate spline. Smoother but
	// costs a dense linear solve per frame.
	WarpSpline WarpMode = "spline"
)

// Processor options. All fields are externally supplied configuration;
// nothing is persisted by the engine.
type Processor struct {
	WarpMode   WarpMode
	GridSize   int     // spline evaluation grid cells per axis
	EdgeBlur   float64 // feather mask blur trigger, in pixels
	Falloff    float64 // feather falloff, 0 (gradual) to 100 (abrupt)
	Brightness float64 // -100..100, 0 is a no-op
	Contrast   float64 // -100..100, 0 is a no-op
	ColorMatch bool    // Reinhard transfer toward the destination
}

// NewProcessor returns a Processor with the default configuration.
func NewProcessor() *Processor {
	return &Processor{
		WarpMode:   WarpAffine,
		GridSize:   warp.DefaultGridSize,
		EdgeBlur:   10,
		Falloff:    50,
		ColorMatch: true,
	}
}

// Swap runs the full per-frame pipeline: stable landmark mapping, warp,
// color matching, brightness/contrast and the feathered composite. It
// returns a new buffer; neither dst nor the source face is modified.
//
// Failures degrade, they never corrupt the output: input-shape problems
// (missing image, landmark count mismatch) skip the swap and return dst
// unchanged together with a descriptive error. A near-singular spline
// system falls back to the affine warp; the composite is still produced
// and the spline failure is surfaced in the returned error
// (errors.Is(err, warp.ErrSingular)) so callers can switch modes.
func (p *Processor) Swap(face *SourceFace, dst *image.NRGBA, rawDst []mesh.Point) (*image.NRGBA, error) {
	stable, err := StableLandmarks(rawDst)
	if err != nil {
		return dst, err
	}
	return p.SwapStable(face, dst, stable)
}

// SwapStable is Swap for an already reduced stable landmark set, e.g.
// one synthesized by FaceDetector.
func (p *Processor) SwapStable(face *SourceFace, dst *image.NRGBA, stable []mesh.Point) (*image.NRGBA, error) {
	if face == nil || face.Img == nil {
		return dst, errors.New("faceswap: missing source face")
	}
	if dst == nil {
		return nil, errors.New("faceswap: missing destination image")
	}

	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	dstPts := PixelLandmarks(stable, w, h)
	if len(face.Landmarks) != len(dstPts) {
		return dst, errors.Errorf("faceswap: landmark count mismatch: source %d, destination %d",
			len(face.Landmarks), len(dstPts))
	}

	var (
		warped  *image.NRGBA
		warpErr error
	)
	switch p.WarpMode {
	case WarpSpline:
		box := mesh.BoundingBox(dstPts, w, h)
		warped, warpErr = warp.WarpTPS(face.Img, face.Landmarks, dstPts, box, p.GridSize, w, h)
		if warpErr != nil {
			// Degrade to the piecewise warp; the error is still
			// reported so the caller can stop requesting splines.
			warpErr = errors.Wrap(warpErr, "faceswap: falling back to affine warp")
			warped = warp.WarpTriangles(face.Img, face.Landmarks, dstPts, face.Mesh.Triangles, w, h)
		}
	default:
		warped = warp.WarpTriangles(face.Img, face.Landmarks, dstPts, face.Mesh.Triangles, w, h)
	}

	dstHull := mesh.ConvexHull(dstPts)

	if p.ColorMatch && face.hasStats {
		mask := blend.HullMask(dstPts, dstHull, w, h)
		if dstStats, err := blend.MaskStats(dst, mask); err == nil {
			warped = blend.TransferColor(warped, face.Stats, dstStats)
		}
	}

	warped = blend.AdjustBrightnessContrast(warped, p.Brightness, p.Contrast)

	mask := blend.FeatherMask(dstPts, dstHull, w, h, p.Falloff, p.EdgeBlur)
	warped = blend.ApplyMask(warped, mask)

	out := image.NewNRGBA(b)
	copy(out.Pix, dst.Pix)
	blend.Over(out, warped)
	return out, warpErr
}
