// Package vptree implements a static vantage-point tree over any metric
// space, for item types that have no usable coordinate structure (unlike
// pkg/nn/kdtree, which needs one).
//
// As with kdtree, the tree is a single flat slice in pre-order rather
// than a pointer tree: a node's item lives at position p, the subtree
// inside its radius occupies the insideLen[p] positions immediately after
// it, and the subtree outside its radius occupies whatever remains of its
// span.
package vptree

import (
	"sort"
	"time"

	"github.com/tavianator/pixelforest/pkg/nn"
)

// Tree is a static vantage-point tree over items of type T, searchable with
// queries of type Q. T must itself be a metric space (able to measure its
// distance to other items of its own type), since building the tree
// requires comparing candidate vantage points to one another.
type Tree[T nn.Metric[T, D], D nn.Distance, Q nn.Proximity[T, D]] struct {
	items     []T
	insideLen []int
	radius    []float64
	recorder  nn.Recorder
}

// New builds a vantage-point tree from items. The slice is copied; items is
// not retained.
func New[T nn.Metric[T, D], D nn.Distance, Q nn.Proximity[T, D]](items []T) *Tree[T, D, Q] {
	buf := append([]T(nil), items...)
	insideLen := make([]int, len(buf))
	radius := make([]float64, len(buf))
	build[T, D](buf, insideLen, radius)
	return &Tree[T, D, Q]{items: buf, insideLen: insideLen, radius: radius}
}

// SetRecorder attaches a Recorder that Search and rebuilds report to. A nil
// recorder (the default) disables reporting.
func (t *Tree[T, D, Q]) SetRecorder(recorder nn.Recorder) {
	t.recorder = recorder
	if recorder != nil {
		recorder.RecordRebuild("vp")
	}
}

// build arranges items in place into pre-order. At each level it
// picks the last item of its span as the vantage point, sorts the rest by
// their distance to it, and splits them at the median distance into an
// inside half (closer than or equal to the radius) and an outside half.
func build[T nn.Metric[T, D], D nn.Distance](items []T, insideLen []int, radius []float64) {
	n := len(items)
	if n == 0 {
		return
	}

	last := n - 1
	pivot := items[last]
	rest := items[:last]

	sort.Slice(rest, func(i, j int) bool {
		return pivot.Distance(rest[i]) < pivot.Distance(rest[j])
	})

	mid := len(rest) / 2

	tmp := make([]T, n)
	tmp[0] = pivot
	copy(tmp[1:1+mid], rest[:mid])
	copy(tmp[1+mid:], rest[mid:])
	copy(items, tmp)

	insideLen[0] = mid
	if mid > 0 {
		radius[0] = pivot.Distance(items[mid]).Real()
	}

	build[T, D](items[1:1+mid], insideLen[1:1+mid], radius[1:1+mid])
	build[T, D](items[1+mid:], insideLen[1+mid:], radius[1+mid:])
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
		defer func() { t.recorder.RecordSearch("vp", time.Since(start)) }()
	}
	t.search(0, len(t.items), neighborhood)
}

// search considers the vantage point at pos, then descends into whichever
// of the inside/outside subtrees is nearer to the target first, pruning the
// other with the triangle inequality against the node's radius.
func (t *Tree[T, D, Q]) search(pos, length int, neighborhood nn.Neighborhood[T, D, Q]) {
	item := t.items[pos]
	distance := neighborhood.Consider(item).Real()

	insideLen := t.insideLen[pos]
	outsideLen := length - 1 - insideLen
	r := t.radius[pos]
	insidePos, outsidePos := pos+1, pos+1+insideLen

	searchInside := func() {
		if insideLen > 0 && neighborhood.Contains(distance-r) {
			t.search(insidePos, insideLen, neighborhood)
		}
	}
	searchOutside := func() {
		if outsideLen > 0 && neighborhood.Contains(r-distance) {
			t.search(outsidePos, outsideLen, neighborhood)
		}
	}

	if distance <= r {
		searchInside()
		searchOutside()
	} else {
		searchOutside()
		searchInside()
	}
}
