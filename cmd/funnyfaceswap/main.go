package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/term"

	faceswap "github.com/doctorjana/FunnyFaceSwap"
	"github.com/doctorjana/FunnyFaceSwap/mesh"
	"github.com/doctorjana/FunnyFaceSwap/utils"
)

const HelpBanner = `
┌─┐┌─┐┌─┐┌─┐┌─┐┬ ┬┌─┐┌─┐
├┤ ├─┤│  ├┤ └─┐│││├─┤├─┘
└  ┴ ┴└─┘└─┘└─┘└┴┘┴ ┴┴

Face swapping library.
    Version: %s

`

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("src", "", "Source face photo (file, URL or - for stdin)")
	srcMarks    = flag.String("lmsrc", "", "Source landmark JSON file")
	destination = flag.String("in", "", "Destination image (file, URL or - for stdin)")
	dstMarks    = flag.String("lmdst", "", "Destination landmark JSON file")
	output      = flag.String("out", pipeName, "Output image")
	mode        = flag.String("mode", "affine", "Warp mode: affine or spline")
	gridSize    = flag.Int("grid", 20, "Spline evaluation grid cells per axis")
	edgeBlur    = flag.Float64("blur", 10, "Feather mask edge blur in pixels")
	falloff     = flag.Float64("falloff", 50, "Feather falloff, 0 (gradual) to 100 (abrupt)")
	brightness  = flag.Float64("brightness", 0, "Brightness correction, -100..100")
	contrast    = flag.Float64("contrast", 0, "Contrast correction, -100..100")
	noColor     = flag.Bool("nocolor", false, "Disable automatic color matching")
	wireframe   = flag.Bool("wireframe", false, "Draw the destination mesh wireframe onto the output")
	cascade     = flag.String("cc", "", "Pigo face classifier, used when no landmark file is given")
	puploc      = flag.String("plc", "", "Pigo pupil localization classifier")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *source == "" || *destination == "" {
		log.Fatal(utils.DecorateText("Both a source face (-src) and a destination image (-in) are required!", utils.ErrorMessage))
	}
	if *source == pipeName && *destination == pipeName {
		log.Fatal(utils.DecorateText("Only one of -src and -in can read from stdin!", utils.ErrorMessage))
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ FACESWAP", utils.StatusMessage),
		utils.DecorateText("is warping the face...", utils.DefaultMessage))
	spinner := utils.NewSpinner(spinnerText, time.Millisecond*80, true)

	srcImg, err := openSource(*source)
	if err != nil {
		fatal("Failed to load the source image", err)
	}
	dstImg, err := openSource(*destination)
	if err != nil {
		fatal("Failed to load the destination image", err)
	}

	var detector *faceswap.FaceDetector
	if *srcMarks == "" || *dstMarks == "" {
		if *cascade == "" {
			log.Fatal(utils.DecorateText("Please provide landmark files or a face classifier (-cc) for automatic detection!", utils.ErrorMessage))
		}
		detector, err = loadDetector(*cascade, *puploc)
		if err != nil {
			fatal("Failed to initialize the face detector", err)
		}
	}

	now := time.Now()
	spinner.Start()

	face, err := prepareFace(srcImg, *srcMarks, detector)
	if err != nil {
		spinner.Stop()
		fatal("Failed to prepare the source face", err)
	}

	proc := &faceswap.Processor{
		WarpMode:   faceswap.WarpMode(*mode),
		GridSize:   *gridSize,
		EdgeBlur:   *edgeBlur,
		Falloff:    *falloff,
		Brightness: *brightness,
		Contrast:   *contrast,
		ColorMatch: !*noColor,
	}

	dstStable, err := destinationLandmarks(dstImg, *dstMarks, detector)
	if err != nil {
		spinner.Stop()
		fatal("Failed to locate the destination face", err)
	}

	out, err := proc.SwapStable(face, dstImg, dstStable)
	spinner.Stop()
	if err != nil {
		// Degraded swaps still produce an output; only report.
		log.Println(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}

	if *wireframe {
		b := dstImg.Bounds()
		pts := faceswap.PixelLandmarks(dstStable, b.Dx(), b.Dy())
		if m, err := mesh.Build(pts, b.Dx(), b.Dy()); err == nil {
			faceswap.DrawWireframe(out, m)
		}
	}

	if err := writeOutput(*output, out); err != nil {
		fatal("Failed to save the output image", err)
	}

	log.Println(fmt.Sprintf("\nDone✓ %s",
		utils.DecorateText(fmt.Sprintf("in: %s", utils.FormatTime(time.Since(now))), utils.SuccessMessage)))
}

// openSource loads an image from a local file, a URL or stdin.
func openSource(path string) (img *image.NRGBA, err error) {
	if path == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("`-` should be used with a pipe for stdin")
		}
		return faceswap.DecodeImage(os.Stdin)
	}
	if utils.IsValidUrl(path) {
		tmp, err := utils.DownloadImage(path)
		if tmp != nil {
			defer os.Remove(tmp.Name())
		}
		if err != nil {
			return nil, err
		}
		path = tmp.Name()
	}
	return faceswap.OpenImage(path)
}

// prepareFace builds the source face either from a landmark file or by
// running the approximate detector.
func prepareFace(img *image.NRGBA, marks string, detector *faceswap.FaceDetector) (*faceswap.SourceFace, error) {
	if marks != "" {
		raw, err := faceswap.LoadLandmarks(marks)
		if err != nil {
			return nil, err
		}
		return faceswap.NewSourceFace(img, raw)
	}
	stable, err := detector.EstimateLandmarks(img)
	if err != nil {
		return nil, err
	}
	return faceswap.NewSourceFaceStable(img, stable)
}

// destinationLandmarks resolves the stable landmark set of the
// destination face from a landmark file or the detector.
func destinationLandmarks(img *image.NRGBA, marks string, detector *faceswap.FaceDetector) ([]mesh.Point, error) {
	if marks != "" {
		raw, err := faceswap.LoadLandmarks(marks)
		if err != nil {
			return nil, err
		}
		return faceswap.StableLandmarks(raw)
	}
	return detector.EstimateLandmarks(img)
}

func loadDetector(cascadePath, puplocPath string) (*faceswap.FaceDetector, error) {
	cascade, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, err
	}
	var plc []byte
	if puplocPath != "" {
		if plc, err = os.ReadFile(puplocPath); err != nil {
			return nil, err
		}
	}
	return faceswap.NewFaceDetector(cascade, plc)
}

func writeOutput(path string, img *image.NRGBA) error {
	if path == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("`-` should be used with a pipe for stdout")
		}
		return faceswap.EncodeImage(os.Stdout, img, "png")
	}
	if ext := filepath.Ext(path); ext == "" {
		return fmt.Errorf("missing output file extension")
	}
	return faceswap.SaveImage(path, img)
}

func fatal(msg string, err error) {
	log.Fatalf("%s: %s",
		utils.DecorateText(msg, utils.ErrorMessage),
		utils.DecorateText(err.Error(), utils.DefaultMessage))
}
