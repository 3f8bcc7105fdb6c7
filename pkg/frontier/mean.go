package frontier

import (
	"github.com/tavianator/pixelforest/pkg/colorspace"
	"github.com/tavianator/pixelforest/pkg/nn"
	"github.com/tavianator/pixelforest/pkg/nn/forest"
	"github.com/tavianator/pixelforest/pkg/nn/soft"
)

// meanRebuildRatio is the deleted:live ratio at which MeanNeighbor compacts
// its index, ported from original_source/src/frontier/mean.rs.
const meanRebuildRatio = 2

type meanPixelState int

const (
	meanEmpty meanPixelState = iota
	meanFillable
	meanFilled
)

type meanPixel[C colorspace.Color[C]] struct {
	state    meanPixelState
	fillable *Pixel[C]
	filled   C
}

func (p meanPixel[C]) filledColor() (C, bool) {
	if p.state == meanFilled {
		return p.filled, true
	}
	var zero C
	return zero, false
}

// MeanNeighbor places each generated color next to the frontier pixel whose
// running average of already-filled neighbors is closest to it.
type MeanNeighbor[C colorspace.Color[C]] struct {
	pixels  []meanPixel[C]
	forest  *soft.Search[*Pixel[C], nn.SquaredDistance, colorTarget[C], *forest.Forest[*Pixel[C], nn.SquaredDistance, colorTarget[C]]]
	convert func(colorspace.RGB) C
	width   uint32
	height  uint32
	len     int
	deleted int
}

// NewMeanNeighbor creates a MeanNeighbor frontier of the given dimensions,
// whose first placement lands at (x0, y0).
func NewMeanNeighbor[C colorspace.Color[C]](width, height, x0, y0 uint32, convert func(colorspace.RGB) C) *MeanNeighbor[C] {
	pixels := make([]meanPixel[C], int(width)*int(height))

	zero := convert(colorspace.NewRGB(0, 0, 0))
	pixel0 := NewPixel(x0, y0, zero)
	pixels[pixelIndex(x0, y0, width)] = meanPixel[C]{state: meanFillable, fillable: pixel0}

	f := soft.NewSoftKdForest[*Pixel[C], nn.SquaredDistance, colorTarget[C]]()
	f.Push(pixel0)

	return &MeanNeighbor[C]{
		pixels:  pixels,
		forest:  f,
		convert: convert,
		width:   width,
		height:  height,
		len:     1,
	}
}

func (m *MeanNeighbor[C]) Width() uint32  { return m.width }
func (m *MeanNeighbor[C]) Height() uint32 { return m.height }
func (m *MeanNeighbor[C]) Len() int       { return m.len - m.deleted }

func (m *MeanNeighbor[C]) neighborColors(x, y uint32) []C {
	var colors []C
	for _, nb := range neighbors(x, y) {
		nx, ny := nb[0], nb[1]
		if nx >= m.width || ny >= m.height {
			continue
		}
		if c, ok := m.pixels[pixelIndex(nx, ny, m.width)].filledColor(); ok {
			colors = append(colors, c)
		}
	}
	return colors
}

func (m *MeanNeighbor[C]) fill(x, y uint32, color C) {
	i := pixelIndex(x, y, m.width)
	switch m.pixels[i].state {
	case meanFillable:
		m.pixels[i].fillable.delete()
		m.deleted++
	}
	m.pixels[i] = meanPixel[C]{state: meanFilled, filled: color}

	var fresh []*Pixel[C]
	for _, nb := range neighbors(x, y) {
		nx, ny := nb[0], nb[1]
		if nx >= m.width || ny >= m.height {
			continue
		}

		ni := pixelIndex(nx, ny, m.width)
		switch m.pixels[ni].state {
		case meanFillable:
			m.pixels[ni].fillable.delete()
			m.deleted++
		case meanFilled:
			continue
		}

		colors := m.neighborColors(nx, ny)
		if len(colors) == 0 {
			continue
		}

		var zero C
		avg := zero.Average(colors...)
		p := NewPixel(nx, ny, avg)
		m.pixels[ni] = meanPixel[C]{state: meanFillable, fillable: p}
		fresh = append(fresh, p)
	}

	m.len += len(fresh)
	for _, p := range fresh {
		m.forest.Push(p)
	}

	if m.deleted >= meanRebuildRatio*(m.len-m.deleted) {
		m.forest.Rebuild()
		m.len -= m.deleted
		m.deleted = 0
	}
}

// Place finds the nearest frontier pixel to c by its neighbor average and
// places c there.
func (m *MeanNeighbor[C]) Place(c colorspace.RGB) (x, y uint32, ok bool) {
	color := m.convert(c)

	n, found := nn.Nearest[*Pixel[C], nn.SquaredDistance, colorTarget[C]](m.forest, target(color))
	if !found {
		return 0, 0, false
	}

	x, y = n.Item.X, n.Item.Y
	m.fill(x, y, color)
	return x, y, true
}
