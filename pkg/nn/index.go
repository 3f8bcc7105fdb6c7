package nn

import "time"

// Recorder is the shape an index accepts to optionally report its own
// activity (search latency, rebuild events) without the core importing a
// metrics library. Anything satisfying this method set works, including
// pkg/observability's Prometheus-backed Metrics.
type Recorder interface {
	RecordSearch(indexKind string, duration time.Duration)
	RecordRebuild(indexKind string)
}

// Index is a nearest-neighbor search index over items of type T, queried
// with targets of type Q that know how to measure their distance to an
// item, using distance representation D.
//
// Search is the single primitive every other query derives from: it drives
// the index's internal walk, offering candidates to neighborhood.Consider
// until the walk is exhausted or neighborhood's threshold prunes the rest.
type Index[T any, D Distance, Q Proximity[T, D]] interface {
	Search(neighborhood Neighborhood[T, D, Q])
}

// ItemSource exposes an index's stored items as a flat slice. For the
// array-backed indices (Exhaustive, kdtree.Tree, vptree.Tree) Items returns
// their internal storage without copying; forest.Forest builds a new slice
// from its buffer and trees. It is what lets the forest drain a sub-index
// during compaction without a separate iterator type.
type ItemSource[T any] interface {
	Items() []T
}

// StaticIndex is a bulk-built, read-only index that also exposes its items,
// the shape the dynamization forest (pkg/nn/forest) wraps.
type StaticIndex[T any, D Distance, Q Proximity[T, D]] interface {
	Index[T, D, Q]
	ItemSource[T]
}

// Nearest returns the nearest neighbor to target, or false if idx is empty.
func Nearest[T any, D Distance, Q Proximity[T, D]](idx Index[T, D, Q], target Q) (Neighbor[T], bool) {
	n := NewSingleton[T, D, Q](target)
	idx.Search(n)
	return n.Neighbor()
}

// NearestWithin returns the nearest neighbor to target within threshold, if
// one exists.
func NearestWithin[T any, D Distance, Q Proximity[T, D]](idx Index[T, D, Q], target Q, threshold float64) (Neighbor[T], bool) {
	n := NewSingletonWithin[T, D, Q](target, threshold)
	idx.Search(n)
	return n.Neighbor()
}

// KNearest returns up to k nearest neighbors to target, sorted ascending by
// distance.
func KNearest[T any, D Distance, Q Proximity[T, D]](idx Index[T, D, Q], target Q, k int) []Neighbor[T] {
	n := NewBoundedK[T, D, Q](target, k)
	idx.Search(n)
	return n.Neighbors()
}

// KNearestWithin returns up to k nearest neighbors to target within
// threshold, sorted ascending by distance.
func KNearestWithin[T any, D Distance, Q Proximity[T, D]](idx Index[T, D, Q], target Q, k int, threshold float64) []Neighbor[T] {
	n := NewBoundedKWithin[T, D, Q](target, k, threshold)
	idx.Search(n)
	return n.Neighbors()
}
