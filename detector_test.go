package faceswap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doctorjana/FunnyFaceSwap/mesh"
)

func TestEyeRing_SixPointsAroundCenter(t *testing.T) {
	assert := assert.New(t)

	center := mesh.Point{X: 40, Y: 30}
	ring := eyeRing(center, 10)
	assert.Len(ring, 6)

	// The ring starts at the outer corner and stays near the center.
	assert.InDelta(50.0, ring[0].X, 1e-9)
	for _, p := range ring {
		assert.InDelta(center.X, p.X, 10.001)
		assert.InDelta(center.Y, p.Y, 6.001)
	}
}
