package faceswap

import (
	"image"

	"github.com/pkg/errors"

	"github.com/doctorjana/FunnyFaceSwap/blend"
	"github.com/doctorjana/FunnyFaceSwap/mesh"
)

// SourceFace is everything derived once from a source photo: the image,
// its stable landmarks in pixel coordinates, the mesh (hull,
// triangulation, bounding box) and the color statistics of the face
// region. The value is owned by the caller; build a new SourceFace when
// the photo or its landmarks change, there is no in-place invalidation
// and no process-wide cache.
type SourceFace struct {
	Img       *image.NRGBA
	Landmarks []mesh.Point
	Mesh      *mesh.Mesh
	Stats     blend.Stats

	hasStats bool
}

// NewSourceFace prepares a source photo from the raw detector landmark
// sequence (normalized or pixel coordinates).
func NewSourceFace(img *image.NRGBA, raw []mesh.Point) (*SourceFace, error) {
	stable, err := StableLandmarks(raw)
	if err != nil {
		return nil, err
	}
	return NewSourceFaceStable(img, stable)
}

// NewSourceFaceStable prepares a source photo from an already reduced
// stable landmark set, e.g. one synthesized by FaceDetector.
func NewSourceFaceStable(img *image.NRGBA, stable []mesh.Point) (*SourceFace, error) {
	if img == nil {
		return nil, errors.New("faceswap: missing source image")
	}
	b := img.Bounds()
	pts := PixelLandmarks(stable, b.Dx(), b.Dy())

	m, err := mesh.Build(pts, b.Dx(), b.Dy())
	if err != nil {
		return nil, errors.Wrap(err, "faceswap: source face geometry")
	}

	f := &SourceFace{
		Img:       img,
		Landmarks: pts,
		Mesh:      m,
	}

	// Color statistics over the hull region. An empty mask only
	// disables automatic color matching, it does not fail the face.
	mask := blend.HullMask(pts, m.Hull, b.Dx(), b.Dy())
	if stats, err := blend.MaskStats(img, mask); err == nil {
		f.Stats = stats
		f.hasStats = true
	}
	return f, nil
}
