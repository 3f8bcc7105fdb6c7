// Package kdtree implements a static k-d tree over Cartesian points.
//
// Unlike a pointer-based binary tree, the tree is stored as a single flat
// slice in pre-order: a node's item lives at position p, its left
// subtree occupies the leftLen[p] positions immediately after it, and its
// right subtree occupies whatever remains of its span. This keeps the whole
// tree in one contiguous allocation and lets pkg/nn/forest drain a tree back
// into a plain item slice for free via Items.
package kdtree

import (
	"sort"
	"time"

	"github.com/tavianator/pixelforest/pkg/nn"
)

// Query is a Cartesian point that can measure its distance both to an item
// of type T and to a raw coordinate vector. The second method stands in for
// the blanket Metric<[f64]> implementation the source metric space offers:
// it lets the search prune a subtree using the distance to the nearest
// point on the subtree's bounding hyperrectangle, without needing an actual
// T to compute it against.
type Query[T any, D nn.Distance] interface {
	nn.Cartesian
	nn.Proximity[T, D]
	DistanceToCoordinates(point nn.CoordinateVector) D
}

// SquaredEuclideanToCoordinates is a helper for Query implementations whose
// distance is ordinary squared-Euclidean distance in their own coordinate
// space: most Cartesian query types can implement DistanceToCoordinates as
// a one-line call to this function.
func SquaredEuclideanToCoordinates(q nn.Cartesian, point nn.CoordinateVector) nn.SquaredDistance {
	var sum float64
	dims := q.Dimensions()
	for i := 0; i < dims; i++ {
		d := q.Coordinate(i) - point[i]
		sum += d * d
	}
	return nn.NewSquaredFromSquare(sum)
}

// Tree is a static k-d tree over items of type T, searchable with queries of
// type Q.
type Tree[T nn.Cartesian, D nn.Distance, Q Query[T, D]] struct {
	items    []T
	leftLen  []int
	dims     int
	recorder nn.Recorder
}

// New builds a k-d tree from items. The slice is copied; items is not
// retained.
func New[T nn.Cartesian, D nn.Distance, Q Query[T, D]](items []T) *Tree[T, D, Q] {
	dims := 0
	if len(items) > 0 {
		dims = items[0].Dimensions()
	}
	buf := append([]T(nil), items...)
	leftLen := make([]int, len(buf))
	build(buf, leftLen, 0, dims)
	return &Tree[T, D, Q]{items: buf, leftLen: leftLen, dims: dims}
}

// SetRecorder attaches a Recorder that Search and rebuilds report to. A nil
// recorder (the default) disables reporting.
func (t *Tree[T, D, Q]) SetRecorder(recorder nn.Recorder) {
	t.recorder = recorder
	if recorder != nil {
		recorder.RecordRebuild("kd")
	}
}

// build arranges items in place into pre-order, rotating the split
// axis at each level, and records each node's left-subtree size in leftLen
// (aligned index-for-index with items).
func build[T nn.Cartesian](items []T, leftLen []int, axis, dims int) {
	n := len(items)
	if n == 0 {
		return
	}

	mid := medianSplit(items, axis)
	leftLen[0] = mid

	next := (axis + 1) % dims
	build(items[1:1+mid], leftLen[1:1+mid], next, dims)
	build(items[1+mid:], leftLen[1+mid:], next, dims)
}

// medianSplit sorts items by their axis coordinate and rearranges them so
// that items[0] is the median, items[1:1+mid] are the smaller half, and
// items[1+mid:] are the larger half. It returns mid, the size of the
// smaller half.
func medianSplit[T nn.Cartesian](items []T, axis int) int {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Coordinate(axis) < items[j].Coordinate(axis)
	})

	n := len(items)
	mid := n / 2

	tmp := make([]T, n)
	tmp[0] = items[mid]
	copy(tmp[1:1+mid], items[:mid])
	copy(tmp[1+mid:], items[mid+1:])
	copy(items, tmp)

	return mid
}

// Items returns the tree's items in pre-order.
func (t *Tree[T, D, Q]) Items() []T {
	return t.items
}

// Search implements nn.Index.
func (t *Tree[T, D, Q]) Search(neighborhood nn.Neighborhood[T, D, Q]) {
	if len(t.items) == 0 {
		return
	}

	if t.recorder != nil {
		start := time.Now()
		defer func() { t.recorder.RecordSearch("kd", time.Since(start)) }()
	}

	target := neighborhood.Target()
	closest := make(nn.CoordinateVector, t.dims)
	for i := 0; i < t.dims; i++ {
		closest[i] = target.Coordinate(i)
	}

	t.search(0, len(t.items), 0, closest, neighborhood)
}

// search recursively considers the node spanning items[pos:pos+length],
// descending into the half-space containing the target first and only
// descending into the far half-space if it could contain a closer point
// than anything found so far.
func (t *Tree[T, D, Q]) search(pos, length, axis int, closest nn.CoordinateVector, neighborhood nn.Neighborhood[T, D, Q]) {
	item := t.items[pos]
	neighborhood.Consider(item)

	leftLen := t.leftLen[pos]
	rightLen := length - 1 - leftLen
	next := (axis + 1) % t.dims

	target := neighborhood.Target()
	ti := target.Coordinate(axis)
	si := item.Coordinate(axis)

	nearPos, nearLen := pos+1, leftLen
	farPos, farLen := pos+1+leftLen, rightLen
	if ti > si {
		nearPos, nearLen, farPos, farLen = farPos, farLen, nearPos, nearLen
	}

	if nearLen > 0 {
		t.search(nearPos, nearLen, next, closest, neighborhood)
	}

	if farLen > 0 {
		saved := closest[axis]
		closest[axis] = si
		if neighborhood.ContainsDistance(target.DistanceToCoordinates(closest)) {
			t.search(farPos, farLen, next, closest, neighborhood)
		}
		closest[axis] = saved
	}
}
