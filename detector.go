package faceswap

import (
	"image"
	"math"

	pigo "github.com/esimov/pigo/core"
	"github.com/pkg/errors"

	"github.com/doctorjana/FunnyFaceSwap/mesh"
	"github.com/doctorjana/FunnyFaceSwap/utils"
)

// FaceDetector approximates a landmark detector with the pigo face and
// pupil classifiers. It synthesizes a stable landmark set from the
// detected face geometry: an ellipse for the face oval, rings around
// the located pupils and box-relative nose/mouth anchors.
//
// The synthesized points follow the engine's stable ordering but are
// only anatomically approximate. Mixing them with landmarks from a real
// detector breaks the matching-order invariant, so use the same
// landmark source for both the source photo and the destination frames.
type FaceDetector struct {
	classifier *pigo.Pigo
	puploc     *pigo.PuplocCascade
	// Perturbs is the number of perturbations the pupil localizer runs;
	// more is steadier and slower.
	Perturbs int
}

// NewFaceDetector unpacks the pigo facefinder cascade and, optionally,
// a puploc cascade for pupil localization (may be nil).
func NewFaceDetector(cascade, puplocCascade []byte) (*FaceDetector, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, errors.Wrap(err, "error unpacking the cascade file")
	}

	d := &FaceDetector{classifier: classifier, Perturbs: 63}
	if len(puplocCascade) > 0 {
		plc, err := pigo.NewPuplocCascade().UnpackCascade(puplocCascade)
		if err != nil {
			return nil, errors.Wrap(err, "error unpacking the puploc cascade file")
		}
		d.puploc = plc
	}
	return d, nil
}

// DetectFace runs the classifier over the image and returns the best
// scoring face detection.
func (d *FaceDetector) DetectFace(img *image.NRGBA) (pigo.Detection, error) {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()

	imgParams := pigo.ImageParams{
		Pixels: rgbToGrayscale(img),
		Rows:   dy,
		Cols:   dx,
		Dim:    dx,
	}
	cParams := pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     utils.Max(dx, dy),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: imgParams,
	}

	faces := d.classifier.RunCascade(cParams, 0.0)
	faces = d.classifier.ClusterDetections(faces, 0.2)

	best := pigo.Detection{}
	for _, face := range faces {
		if face.Q > best.Q {
			best = face
		}
	}
	if best.Scale == 0 {
		return best, errors.New("faceswap: no face detected")
	}
	return best, nil
}

// EstimateLandmarks synthesizes an approximate stable landmark set from
// the detected face, in pixel coordinates.
func (d *FaceDetector) EstimateLandmarks(img *image.NRGBA) ([]mesh.Point, error) {
	face, err := d.DetectFace(img)
	if err != nil {
		return nil, err
	}

	cx, cy := float64(face.Col), float64(face.Row)
	size := float64(face.Scale)

	pts := make([]mesh.Point, 0, StableLandmarkCount)

	// Face oval: an ellipse slightly taller than the detection box,
	// traversed from the forehead.
	rx, ry := size*0.5, size*0.62
	for i := 0; i < 36; i++ {
		a := -math.Pi/2 + 2*math.Pi*float64(i)/36
		pts = append(pts, mesh.Point{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)})
	}

	leftEye := d.locatePupil(img, face, -0.175)
	rightEye := d.locatePupil(img, face, 0.175)
	pts = append(pts, eyeRing(leftEye, size*0.09)...)
	pts = append(pts, eyeRing(rightEye, size*0.09)...)

	// Nose: bridge, tip and the two wings.
	pts = append(pts,
		mesh.Point{X: cx, Y: cy + size*0.08},
		mesh.Point{X: cx, Y: cy + size*0.18},
		mesh.Point{X: cx - size*0.1, Y: cy + size*0.16},
		mesh.Point{X: cx + size*0.1, Y: cy + size*0.16},
	)

	// Mouth: corners, top and bottom lip.
	mouthY := cy + size*0.33
	pts = append(pts,
		mesh.Point{X: cx - size*0.17, Y: mouthY},
		mesh.Point{X: cx + size*0.17, Y: mouthY},
		mesh.Point{X: cx, Y: mouthY - size*0.04},
		mesh.Point{X: cx, Y: mouthY + size*0.05},
	)

	return pts, nil
}

// locatePupil runs the pupil localizer for one eye when a puploc
// cascade is loaded, falling back to the box-relative estimate.
func (d *FaceDetector) locatePupil(img *image.NRGBA, face pigo.Detection, colShift float64) mesh.Point {
	size := float64(face.Scale)
	est := mesh.Point{
		X: float64(face.Col) + size*colShift,
		Y: float64(face.Row) - size*0.075,
	}
	if d.puploc == nil {
		return est
	}

	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	imgParams := pigo.ImageParams{
		Pixels: rgbToGrayscale(img),
		Rows:   dy,
		Cols:   dx,
		Dim:    dx,
	}
	loc := pigo.Puploc{
		Row:      int(est.Y),
		Col:      int(est.X),
		Scale:    float32(size * 0.25),
		Perturbs: d.Perturbs,
	}
	res := d.puploc.RunDetector(loc, imgParams, 0.0, false)
	if res.Row <= 0 || res.Col <= 0 {
		return est
	}
	return mesh.Point{X: float64(res.Col), Y: float64(res.Row)}
}

// eyeRing places six points around a pupil, mirroring the eye ring
// shape of the stable ordering.
func eyeRing(center mesh.Point, r float64) []mesh.Point {
	ring := make([]mesh.Point, 0, 6)
	for i := 0; i < 6; i++ {
		a := 2 * math.Pi * float64(i) / 6
		ring = append(ring, mesh.Point{
			X: center.X + r*math.Cos(a),
			Y: center.Y + r*0.6*math.Sin(a),
		})
	}
	return ring
}
