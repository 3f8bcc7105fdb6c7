// Package soft adapts a dynamic nearest neighbor index to support soft
// deletion: items are flagged rather than physically removed, stay in
// place so in-flight searches keep seeing a consistent tree, and are
// compacted out only when Rebuild is called.
package soft

import (
	"github.com/tavianator/pixelforest/pkg/nn"
)

// SoftDelete is implemented by items that carry their own deletion flag.
type SoftDelete interface {
	// IsDeleted reports whether this item has been soft-deleted.
	IsDeleted() bool
}

// Dynamic is the subset of a dynamized index that Search needs: the
// ability to add items, search, and enumerate everything currently stored.
// *forest.Forest satisfies this.
type Dynamic[T any, D nn.Distance, Q nn.Proximity[T, D]] interface {
	nn.Index[T, D, Q]
	Items() []T
	Push(item T)
}

// softNeighborhood withholds soft-deleted items from the wrapped
// neighborhood, while still reporting their distance so the underlying
// index's pruning logic sees an accurate, unbiased search.
type softNeighborhood[T SoftDelete, D nn.Distance, Q nn.Proximity[T, D]] struct {
	inner nn.Neighborhood[T, D, Q]
}

func (s *softNeighborhood[T, D, Q]) Target() Q { return s.inner.Target() }

func (s *softNeighborhood[T, D, Q]) Contains(distance float64) bool {
	return s.inner.Contains(distance)
}

func (s *softNeighborhood[T, D, Q]) ContainsDistance(distance D) bool {
	return s.inner.ContainsDistance(distance)
}

func (s *softNeighborhood[T, D, Q]) Consider(item T) D {
	if item.IsDeleted() {
		return s.inner.Target().Distance(item)
	}
	return s.inner.Consider(item)
}

// Search is a nearest neighbor index that supports soft deletes, wrapping
// any Dynamic index U over soft-deletable items T.
type Search[T SoftDelete, D nn.Distance, Q nn.Proximity[T, D], U Dynamic[T, D, Q]] struct {
	inner U
	empty func() U
}

// New creates an empty soft index, using empty to materialize the
// underlying dynamic index (and to rebuild a fresh one when needed).
func New[T SoftDelete, D nn.Distance, Q nn.Proximity[T, D], U Dynamic[T, D, Q]](empty func() U) *Search[T, D, Q, U] {
	return &Search[T, D, Q, U]{inner: empty(), empty: empty}
}

// Push adds a new item into the index.
func (s *Search[T, D, Q, U]) Push(item T) {
	s.inner.Push(item)
}

// Items returns every item currently stored, including soft-deleted ones.
func (s *Search[T, D, Q, U]) Items() []T {
	return s.inner.Items()
}

// Rebuild discards soft-deleted items by rebuilding the underlying index
// from scratch over the survivors.
func (s *Search[T, D, Q, U]) Rebuild() {
	items := s.inner.Items()
	fresh := s.empty()
	for _, item := range items {
		if !item.IsDeleted() {
			fresh.Push(item)
		}
	}
	s.inner = fresh
}

// Search implements nn.Index, withholding soft-deleted items from results.
func (s *Search[T, D, Q, U]) Search(neighborhood nn.Neighborhood[T, D, Q]) {
	s.inner.Search(&softNeighborhood[T, D, Q]{inner: neighborhood})
}
