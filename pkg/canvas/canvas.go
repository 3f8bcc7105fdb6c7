// Package canvas renders placed colors into a raster image.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/tavianator/pixelforest/pkg/colorspace"
)

// Canvas is a fixed-size image being painted one pixel at a time by a
// generation run.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas creates a blank w x h canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Width returns the canvas's width in pixels.
func (c *Canvas) Width() int { return c.img.Bounds().Dx() }

// Height returns the canvas's height in pixels.
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Set paints the pixel at (x, y).
func (c *Canvas) Set(x, y int, rgb colorspace.RGB) {
	c.img.Set(x, y, color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255})
}

// EncodePNG writes the canvas to w as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encoding canvas as PNG: %w", err)
	}
	return nil
}
