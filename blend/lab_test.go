package blend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLab_WhitePoint(t *testing.T) {
	assert := assert.New(t)

	l, a, b := RGBToLab(255, 255, 255)
	assert.InDelta(100.0, l, 0.01)
	assert.InDelta(0.0, a, 0.01)
	assert.InDelta(0.0, b, 0.01)
}

func TestLab_Black(t *testing.T) {
	assert := assert.New(t)

	l, a, b := RGBToLab(0, 0, 0)
	assert.InDelta(0.0, l, 0.01)
	assert.InDelta(0.0, a, 0.01)
	assert.InDelta(0.0, b, 0.01)
}

func TestLab_GraysStayNeutral(t *testing.T) {
	assert := assert.New(t)

	for _, v := range []uint8{1, 32, 64, 128, 192, 254} {
		_, a, b := RGBToLab(v, v, v)
		assert.InDelta(0.0, a, 0.01, "gray %d drifted in a*", v)
		assert.InDelta(0.0, b, 0.01, "gray %d drifted in b*", v)
	}
}

func TestLab_RoundTripWithinOneLevel(t *testing.T) {
	assert := assert.New(t)

	// Representative sample of the 8-bit cube, including the channel
	// extremes and the linear-segment boundary.
	levels := []uint8{0, 1, 10, 11, 32, 77, 128, 200, 254, 255}
	for _, r := range levels {
		for _, g := range levels {
			for _, b := range levels {
				l, aa, bb := RGBToLab(r, g, b)
				rr, gg, bbb := LabToRGB(l, aa, bb)
				assert.InDelta(float64(r), float64(rr), 1, "R of (%d,%d,%d)", r, g, b)
				assert.InDelta(float64(g), float64(gg), 1, "G of (%d,%d,%d)", r, g, b)
				assert.InDelta(float64(b), float64(bbb), 1, "B of (%d,%d,%d)", r, g, b)
			}
		}
	}
}

func TestLab_OutOfGamutClamped(t *testing.T) {
	assert := assert.New(t)

	// A lightness far above the sRGB range must clamp, not wrap.
	r, g, b := LabToRGB(150, 0, 0)
	assert.Equal(uint8(255), r)
	assert.Equal(uint8(255), g)
	assert.Equal(uint8(255), b)

	r, g, b = LabToRGB(-20, 0, 0)
	assert.Equal(uint8(0), r)
	assert.Equal(uint8(0), g)
	assert.Equal(uint8(0), b)
}
