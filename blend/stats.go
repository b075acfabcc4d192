package blend

import (
	"image"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// maskThreshold separates inside from outside when a mask is used as a
// binary region: alpha above 128 counts as inside.
const maskThreshold = 128

// ErrNoData is returned when a statistics mask selects no pixels.
var ErrNoData = errors.New("blend: mask selects no pixels")

// Stats holds per-channel mean and standard deviation of LAB values
// over a masked image region.
type Stats struct {
	Mean  [3]float64
	Std   [3]float64
	Count int
}

// Equal reports whether two statistics describe the same distribution.
func (s Stats) Equal(o Stats) bool {
	return s.Mean == o.Mean && s.Std == o.Std
}

// MaskStats computes LAB statistics over the pixels of img whose mask
// alpha exceeds the inside threshold. The mask is indexed at the same
// coordinates as the image; pixels outside the mask bounds are skipped.
func MaskStats(img *image.NRGBA, mask *image.Alpha) (Stats, error) {
	b := img.Bounds()

	var ch [3][]float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !image.Pt(x, y).In(mask.Bounds()) {
				continue
			}
			if mask.AlphaAt(x, y).A <= maskThreshold {
				continue
			}
			i := img.PixOffset(x, y)
			l, a, bb := RGBToLab(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
			ch[0] = append(ch[0], l)
			ch[1] = append(ch[1], a)
			ch[2] = append(ch[2], bb)
		}
	}

	if len(ch[0]) == 0 {
		return Stats{}, ErrNoData
	}

	s := Stats{Count: len(ch[0])}
	for c := 0; c < 3; c++ {
		if len(ch[c]) < 2 {
			s.Mean[c] = ch[c][0]
			continue
		}
		s.Mean[c], s.Std[c] = stat.MeanStdDev(ch[c], nil)
	}
	return s, nil
}
