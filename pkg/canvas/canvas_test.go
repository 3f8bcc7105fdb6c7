package canvas_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/tavianator/pixelforest/pkg/canvas"
	"github.com/tavianator/pixelforest/pkg/colorspace"
)

func TestSetAndEncodePNG(t *testing.T) {
	c := canvas.NewCanvas(4, 3)
	if c.Width() != 4 || c.Height() != 3 {
		t.Fatalf("dimensions = %dx%d, want 4x3", c.Width(), c.Height())
	}

	c.Set(1, 2, colorspace.NewRGB(10, 20, 30))

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding encoded PNG: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("decoded bounds = %v, want 4x3", img.Bounds())
	}

	r, g, b, _ := img.At(1, 2).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel (1,2) = (%d,%d,%d), want (10,20,30)", r>>8, g>>8, b>>8)
	}
}
