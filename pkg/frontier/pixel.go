package frontier

import (
	"sync/atomic"

	"github.com/tavianator/pixelforest/pkg/colorspace"
	"github.com/tavianator/pixelforest/pkg/nn"
)

// Pixel is a placed (or placeable) canvas position carrying a color. The
// deleted flag is interior mutability: a single Pixel is shared (by
// pointer) between a frontier's position map and its search index, so
// retiring it in one place is immediately visible in the other without a
// rebuild, matching original_source's Rc<Pixel<C>> sharing.
type Pixel[C colorspace.Color[C]] struct {
	X, Y    uint32
	Color   C
	deleted atomic.Bool
}

// NewPixel creates a live (not deleted) pixel at (x, y) with the given
// color.
func NewPixel[C colorspace.Color[C]](x, y uint32, color C) *Pixel[C] {
	return &Pixel[C]{X: x, Y: y, Color: color}
}

// IsDeleted satisfies soft.SoftDelete.
func (p *Pixel[C]) IsDeleted() bool {
	return p.deleted.Load()
}

// delete soft-deletes p, withholding it from future search results until
// the owning index is rebuilt.
func (p *Pixel[C]) delete() {
	p.deleted.Store(true)
}

// Dimensions satisfies nn.Cartesian, delegating to the pixel's color.
func (p *Pixel[C]) Dimensions() int { return p.Color.Dimensions() }

// Coordinate satisfies nn.Cartesian, delegating to the pixel's color.
func (p *Pixel[C]) Coordinate(i int) float64 { return p.Color.Coordinate(i) }

// Distance computes the distance between two pixels' colors, satisfying
// nn.Proximity[*Pixel[C], nn.SquaredDistance].
func (p *Pixel[C]) Distance(other *Pixel[C]) nn.SquaredDistance {
	return p.Color.Distance(other.Color)
}

// DistanceToCoordinates satisfies kdtree.Query, letting a pixel prune a
// k-d tree subtree without needing another pixel to compare against.
func (p *Pixel[C]) DistanceToCoordinates(point nn.CoordinateVector) nn.SquaredDistance {
	return p.Color.DistanceToCoordinates(point)
}

// colorTarget is a search query for the nearest pixel to a bare color, used
// in place of a whole Pixel when the caller has only a color to place and
// no position yet (original_source's Target(color) wrapper).
type colorTarget[C colorspace.Color[C]] struct {
	color C
}

func target[C colorspace.Color[C]](color C) colorTarget[C] {
	return colorTarget[C]{color: color}
}

func (t colorTarget[C]) Dimensions() int          { return t.color.Dimensions() }
func (t colorTarget[C]) Coordinate(i int) float64 { return t.color.Coordinate(i) }

func (t colorTarget[C]) Distance(item *Pixel[C]) nn.SquaredDistance {
	return t.color.Distance(item.Color)
}

func (t colorTarget[C]) DistanceToCoordinates(point nn.CoordinateVector) nn.SquaredDistance {
	return t.color.DistanceToCoordinates(point)
}
