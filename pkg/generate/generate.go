// Package generate orchestrates a full run: build a color source, order it,
// drain it through a placement frontier, and paint the result onto a
// canvas.
package generate

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/tavianator/pixelforest/pkg/canvas"
	"github.com/tavianator/pixelforest/pkg/colorspace"
	"github.com/tavianator/pixelforest/pkg/curve"
	"github.com/tavianator/pixelforest/pkg/frontier"
)

// Order selects the linear order colors are drawn from their source in.
type Order string

const (
	OrderHilbert Order = "hilbert"
	OrderMorton  Order = "morton"
	OrderHue     Order = "hue"
	OrderRandom  Order = "random"
)

// FrontierKind selects the placement policy used to lay colors onto the
// canvas.
type FrontierKind string

const (
	FrontierImage FrontierKind = "image"
	FrontierMin   FrontierKind = "min"
	FrontierMean  FrontierKind = "mean"
)

// ColorSpace selects the perceptual space placement distances are measured
// in.
type ColorSpace string

const (
	ColorSpaceRGB   ColorSpace = "rgb"
	ColorSpaceLab   ColorSpace = "lab"
	ColorSpaceLuv   ColorSpace = "luv"
	ColorSpaceOklab ColorSpace = "oklab"
)

// Options configures a generation run.
type Options struct {
	// Width and Height size the output canvas. If TargetImage is set, they
	// are ignored and the image's dimensions are used instead.
	Width, Height int

	// Bits is the total color bit depth to enumerate when TargetImage is
	// nil (pkg/curve.AllColors).
	Bits int

	Order      Order
	Frontier   FrontierKind
	ColorSpace ColorSpace

	// TargetImage, if set, makes the color source and (for FrontierImage)
	// the placement target this image's pixels instead of the full RGB
	// cube.
	TargetImage image.Image

	// Striped reorders the color sequence to reduce banding artifacts
	// (pkg/curve.Striped), applied after Order.
	Striped bool

	// X0, Y0 is the seed position for MinNeighbor/MeanNeighbor frontiers.
	X0, Y0 uint32

	// ProgressEvery controls how often a Progress value is sent, in
	// placements. Zero disables progress reporting.
	ProgressEvery int
}

// Progress reports how far a generation run has gotten.
type Progress struct {
	Placed  int
	Total   int
	Elapsed time.Duration
}

func imageToRGB(img image.Image) func(x, y uint32) colorspace.RGB {
	return func(x, y uint32) colorspace.RGB {
		r, g, b, _ := img.At(int(x), int(y)).RGBA()
		return colorspace.NewRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
}

func buildSource(opts Options) curve.Source {
	if opts.TargetImage != nil {
		bounds := opts.TargetImage.Bounds()
		at := imageToRGB(opts.TargetImage)
		return curve.NewImageSource(bounds.Dx(), bounds.Dy(), func(x, y int) colorspace.RGB {
			return at(uint32(bounds.Min.X+x), uint32(bounds.Min.Y+y))
		})
	}
	return curve.AllColors(opts.Bits)
}

func orderColors(source curve.Source, order Order) ([]colorspace.RGB, error) {
	switch order {
	case OrderHilbert:
		return curve.HilbertOrder(source), nil
	case OrderMorton:
		return curve.MortonOrder(source), nil
	case OrderHue:
		return curve.HueSorted(source), nil
	case OrderRandom:
		return curve.Shuffled(source), nil
	default:
		return nil, fmt.Errorf("generate: unknown order %q", order)
	}
}

// Run builds a color source from opts, orders it, drains it through the
// requested Frontier, and paints the result onto a Canvas. Sending on
// progress never blocks the caller: if it is unbuffered and no one is
// receiving, progress updates are simply dropped. Run returns early with
// ctx.Err() if ctx is cancelled between placements.
func Run(ctx context.Context, opts Options, progress chan<- Progress) (*canvas.Canvas, error) {
	source := buildSource(opts)

	colors, err := orderColors(source, opts.Order)
	if err != nil {
		return nil, err
	}
	if opts.Striped {
		colors = curve.Striped(colors)
	}

	width, height := opts.Width, opts.Height
	if opts.TargetImage != nil {
		bounds := opts.TargetImage.Bounds()
		width, height = bounds.Dx(), bounds.Dy()
	}

	switch opts.ColorSpace {
	case ColorSpaceRGB, "":
		return run(ctx, opts, colors, width, height, colorspace.FromRGB, progress)
	case ColorSpaceLab:
		return run(ctx, opts, colors, width, height, colorspace.FromRGBLab, progress)
	case ColorSpaceLuv:
		return run(ctx, opts, colors, width, height, colorspace.FromRGBLuv, progress)
	case ColorSpaceOklab:
		return run(ctx, opts, colors, width, height, colorspace.FromRGBOklab, progress)
	default:
		return nil, fmt.Errorf("generate: unknown color space %q", opts.ColorSpace)
	}
}

func buildFrontier[C colorspace.Color[C]](opts Options, width, height int, convert func(colorspace.RGB) C) (frontier.Frontier, error) {
	w, h := uint32(width), uint32(height)

	switch opts.Frontier {
	case FrontierImage:
		if opts.TargetImage == nil {
			return nil, fmt.Errorf("generate: image frontier requires a target image")
		}
		at := imageToRGB(opts.TargetImage)
		bounds := opts.TargetImage.Bounds()
		return frontier.NewImageTarget[C](w, h, func(x, y uint32) colorspace.RGB {
			return at(uint32(bounds.Min.X)+x, uint32(bounds.Min.Y)+y)
		}, convert), nil
	case FrontierMin:
		return frontier.NewMinNeighbor[C](w, h, opts.X0, opts.Y0, convert), nil
	case FrontierMean, "":
		return frontier.NewMeanNeighbor[C](w, h, opts.X0, opts.Y0, convert), nil
	default:
		return nil, fmt.Errorf("generate: unknown frontier %q", opts.Frontier)
	}
}

func run[C colorspace.Color[C]](ctx context.Context, opts Options, colors []colorspace.RGB, width, height int, convert func(colorspace.RGB) C, progress chan<- Progress) (*canvas.Canvas, error) {
	f, err := buildFrontier(opts, width, height, convert)
	if err != nil {
		return nil, err
	}

	cv := canvas.NewCanvas(width, height)
	start := time.Now()

	for i, c := range colors {
		select {
		case <-ctx.Done():
			return cv, ctx.Err()
		default:
		}

		x, y, ok := f.Place(c)
		if !ok {
			break
		}
		cv.Set(int(x), int(y), c)

		if opts.ProgressEvery > 0 && (i+1)%opts.ProgressEvery == 0 {
			select {
			case progress <- Progress{Placed: i + 1, Total: len(colors), Elapsed: time.Since(start)}:
			default:
			}
		}
	}

	return cv, nil
}
