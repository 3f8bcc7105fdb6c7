package frontier

import (
	"github.com/tavianator/pixelforest/pkg/colorspace"
	"github.com/tavianator/pixelforest/pkg/nn"
	"github.com/tavianator/pixelforest/pkg/nn/forest"
	"github.com/tavianator/pixelforest/pkg/nn/soft"
)

// imageTargetRebuildRatio is the deleted:live ratio at which ImageTarget
// compacts its index, ported from original_source/src/frontier/image.rs.
const imageTargetRebuildRatio = 32

// ImageTarget places each generated color on the position of the
// as-yet-unclaimed target-image pixel closest to it in color space. The
// item set is fixed at construction, so it wraps a soft forest purely for
// its delete-and-rebuild bookkeeping, never pushing further pixels after
// New.
type ImageTarget[C colorspace.Color[C]] struct {
	index   *soft.Search[*Pixel[C], nn.SquaredDistance, colorTarget[C], *forest.Forest[*Pixel[C], nn.SquaredDistance, colorTarget[C]]]
	convert func(colorspace.RGB) C
	width   uint32
	height  uint32
	len     int
	deleted int
}

// NewImageTarget builds an ImageTarget from a width x height source image,
// read through at, and convert, the color space's constructor from sRGB.
func NewImageTarget[C colorspace.Color[C]](width, height uint32, at func(x, y uint32) colorspace.RGB, convert func(colorspace.RGB) C) *ImageTarget[C] {
	index := soft.NewSoftKdForest[*Pixel[C], nn.SquaredDistance, colorTarget[C]]()

	n := 0
	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width; x++ {
			index.Push(NewPixel(x, y, convert(at(x, y))))
			n++
		}
	}

	return &ImageTarget[C]{index: index, convert: convert, width: width, height: height, len: n}
}

func (it *ImageTarget[C]) Width() uint32  { return it.width }
func (it *ImageTarget[C]) Height() uint32 { return it.height }
func (it *ImageTarget[C]) Len() int       { return it.len - it.deleted }

// Place finds the still-live target pixel nearest to c in color space,
// deletes it, and returns its position.
func (it *ImageTarget[C]) Place(c colorspace.RGB) (x, y uint32, ok bool) {
	color := it.convert(c)
	n, found := nn.Nearest[*Pixel[C], nn.SquaredDistance, colorTarget[C]](it.index, target(color))
	if !found {
		return 0, 0, false
	}

	n.Item.delete()
	it.deleted++
	if it.deleted >= imageTargetRebuildRatio*(it.len-it.deleted) {
		it.index.Rebuild()
		it.len -= it.deleted
		it.deleted = 0
	}

	return n.Item.X, n.Item.Y, true
}
