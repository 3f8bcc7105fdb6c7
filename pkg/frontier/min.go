package frontier

import (
	"math/rand/v2"

	"github.com/tavianator/pixelforest/pkg/colorspace"
	"github.com/tavianator/pixelforest/pkg/nn"
	"github.com/tavianator/pixelforest/pkg/nn/forest"
	"github.com/tavianator/pixelforest/pkg/nn/soft"
)

// minRebuildRatio is the deleted:live ratio at which MinNeighbor compacts
// its index, ported from original_source/src/frontier/min.rs.
const minRebuildRatio = 2

type minPixel[C colorspace.Color[C]] struct {
	pixel  *Pixel[C]
	filled bool
}

// MinNeighbor places each generated color next to the frontier pixel whose
// color is closest to it, on a random one of that pixel's free 8-connected
// neighbors.
type MinNeighbor[C colorspace.Color[C]] struct {
	pixels  []minPixel[C]
	forest  *soft.Search[*Pixel[C], nn.SquaredDistance, colorTarget[C], *forest.Forest[*Pixel[C], nn.SquaredDistance, colorTarget[C]]]
	convert func(colorspace.RGB) C
	width   uint32
	height  uint32
	x0, y0  uint32
	len     int
	deleted int
}

// NewMinNeighbor creates a MinNeighbor frontier of the given dimensions,
// whose first placement lands at (x0, y0).
func NewMinNeighbor[C colorspace.Color[C]](width, height, x0, y0 uint32, convert func(colorspace.RGB) C) *MinNeighbor[C] {
	return &MinNeighbor[C]{
		pixels:  make([]minPixel[C], int(width)*int(height)),
		forest:  soft.NewSoftKdForest[*Pixel[C], nn.SquaredDistance, colorTarget[C]](),
		convert: convert,
		width:   width,
		height:  height,
		x0:      x0,
		y0:      y0,
	}
}

func (m *MinNeighbor[C]) Width() uint32  { return m.width }
func (m *MinNeighbor[C]) Height() uint32 { return m.height }
func (m *MinNeighbor[C]) Len() int       { return m.len - m.deleted }

// freeNeighbor picks a pseudo-random one of (x, y)'s free 8-connected
// neighbors.
func (m *MinNeighbor[C]) freeNeighbor(x, y uint32) (uint32, uint32, bool) {
	offset := rand.Uint64()
	ns := neighbors(x, y)
	for i := 0; i < 8; i++ {
		nb := ns[(uint64(i)+offset)%8]
		nx, ny := nb[0], nb[1]
		if nx < m.width && ny < m.height {
			if !m.pixels[pixelIndex(nx, ny, m.width)].filled {
				return nx, ny, true
			}
		}
	}
	return 0, 0, false
}

// fill places color at (x, y), retiring any now-fully-surrounded neighbors.
func (m *MinNeighbor[C]) fill(x, y uint32, color C) bool {
	i := pixelIndex(x, y, m.width)
	if m.pixels[i].filled {
		return false
	}

	p := NewPixel(x, y, color)
	m.pixels[i] = minPixel[C]{pixel: p, filled: true}

	if _, _, ok := m.freeNeighbor(x, y); ok {
		m.forest.Push(p)
		m.len++
	}

	for _, nb := range neighbors(x, y) {
		nx, ny := nb[0], nb[1]
		if nx >= m.width || ny >= m.height {
			continue
		}
		if _, _, ok := m.freeNeighbor(nx, ny); !ok {
			ni := pixelIndex(nx, ny, m.width)
			if m.pixels[ni].pixel != nil {
				m.pixels[ni].pixel.delete()
				m.pixels[ni].pixel = nil
				m.deleted++
			}
		}
	}

	if m.deleted >= minRebuildRatio*(m.len-m.deleted) {
		m.forest.Rebuild()
		m.len -= m.deleted
		m.deleted = 0
	}

	return true
}

// Place finds the nearest frontier pixel to c in color space and places c
// on one of its free neighbors, falling back to (x0, y0) for the first
// placement.
func (m *MinNeighbor[C]) Place(c colorspace.RGB) (x, y uint32, ok bool) {
	color := m.convert(c)

	x, y = m.x0, m.y0
	if n, found := nn.Nearest[*Pixel[C], nn.SquaredDistance, colorTarget[C]](m.forest, target(color)); found {
		if fx, fy, fok := m.freeNeighbor(n.Item.X, n.Item.Y); fok {
			x, y = fx, fy
		}
	}

	return x, y, m.fill(x, y, color)
}
