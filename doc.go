/*
Package faceswap warps one face's image onto another face's geometry and
blends it into the destination frame in real time.

The engine is an in-memory transform: it consumes an already decoded
source photo, its facial landmarks and the landmarks of every
destination frame, and produces a warped, color-matched, edge-feathered
pixel buffer. Landmark detection, capture, UI and video encoding are
external collaborators.

A minimal swap looks like this:

	package main

	import (
		"fmt"

		faceswap "github.com/doctorjana/FunnyFaceSwap"
	)

	func main() {
		face, err := faceswap.NewSourceFace(srcImg, srcLandmarks)
		if err != nil {
			fmt.Printf("Error preparing the source face: %s", err.Error())
			return
		}

		p := faceswap.NewProcessor()
		out, err := p.Swap(face, dstImg, dstLandmarks)
		if err != nil {
			fmt.Printf("Swap degraded: %s", err.Error())
		}
		// out is the destination frame with the face composited in.
		_ = out
	}

The SourceFace value caches the mesh and color statistics derived from
one source photo; build a new one whenever the photo changes. Processor
holds the externally supplied configuration (warp mode, spline grid
resolution, feather falloff, edge blur, brightness/contrast and color
matching) and may be reused across frames.
*/
package faceswap
