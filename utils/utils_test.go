package utils

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	if !IsValidUrl("https://github.com/doctorjana/FunnyFaceSwap/") {
		t.Errorf("A valid URL should have been accepted")
	}
	if IsValidUrl("testdata/sample.jpg") {
		t.Errorf("A local path should not pass as a URL")
	}
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	sampleImg := filepath.Join(t.TempDir(), "sample.png")
	f, err := os.Create(sampleImg)
	if err != nil {
		t.Fatalf("could not create test file: %v", err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("could not encode test image: %v", err)
	}
	f.Close()

	ftype, err := DetectContentType(sampleImg)
	if err != nil {
		t.Fatalf("could not detect content type: %v", err)
	}
	if !strings.Contains(ftype, "image") {
		t.Errorf("Content type expected to be of type image, got: %v", ftype)
	}
}

func TestUtils_FormatTime(t *testing.T) {
	if got := FormatTime(1500 * time.Millisecond); got != "1.50s" {
		t.Errorf("unexpected sub-minute format: %s", got)
	}
	if got := FormatTime(90 * time.Second); !strings.Contains(got, "1") {
		t.Errorf("unexpected minute format: %s", got)
	}
}

func TestUtils_DecorateText(t *testing.T) {
	s := DecorateText("hello", ErrorMessage)
	if !strings.Contains(s, "hello") {
		t.Errorf("decorated text lost its payload: %q", s)
	}
	if !strings.HasSuffix(s, DefaultColor) {
		t.Errorf("decorated text should reset the terminal color")
	}
}

func TestUtils_MathHelpers(t *testing.T) {
	if Min(2, 5) != 2 || Min(5.5, 2.5) != 2.5 {
		t.Errorf("Min returned the wrong value")
	}
	if Max(2, 5) != 5 || Max(-1, -7) != -1 {
		t.Errorf("Max returned the wrong value")
	}
	if Abs(-3) != 3 || Abs(3.5) != 3.5 {
		t.Errorf("Abs returned the wrong value")
	}
	if Clamp(12, 0, 10) != 10 || Clamp(-2, 0, 10) != 0 || Clamp(5, 0, 10) != 5 {
		t.Errorf("Clamp returned the wrong value")
	}
}
