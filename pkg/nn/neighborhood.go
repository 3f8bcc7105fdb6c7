package nn

import "container/heap"

// Neighborhood accumulates nearest-neighbor search results. It exposes its
// current acceptance threshold so indices can prune subtrees that cannot
// possibly contain an admissible candidate.
type Neighborhood[T any, D Distance, Q Proximity[T, D]] interface {
	// Target returns the query this neighborhood was constructed for.
	Target() Q
	// Contains reports whether a real-valued distance is currently
	// admissible. Singleton and BoundedK admit every negative distance
	// (these arise from triangle-inequality bounds that may go negative),
	// except that a BoundedK with k == 0 admits nothing.
	Contains(distance float64) bool
	// ContainsDistance is the same predicate without a real conversion;
	// indices prefer this to avoid computing a square root just to prune.
	ContainsDistance(distance D) bool
	// Consider offers a candidate item. The neighborhood computes
	// target.Distance(item) exactly once, admits it if ContainsDistance
	// holds, and returns the computed distance so the caller can use it
	// for further pruning.
	Consider(item T) D
}

// candidate pairs an item with its distance, for efficient heap comparison
// without decoding to a real.
type candidate[D Distance, T any] struct {
	item     T
	distance D
}

func (c candidate[D, T]) toNeighbor() Neighbor[T] {
	return Neighbor[T]{Item: c.item, Distance: c.distance.Real()}
}

// Singleton is a Neighborhood holding at most one result.
type Singleton[T any, D Distance, Q Proximity[T, D]] struct {
	target       Q
	threshold    D
	hasThreshold bool
	best         candidate[D, T]
	hasBest      bool
}

// NewSingleton creates a Singleton neighborhood with no upper bound.
func NewSingleton[T any, D Distance, Q Proximity[T, D]](target Q) *Singleton[T, D, Q] {
	return &Singleton[T, D, Q]{target: target}
}

// NewSingletonWithin creates a Singleton neighborhood bounded by threshold.
func NewSingletonWithin[T any, D Distance, Q Proximity[T, D]](target Q, threshold float64) *Singleton[T, D, Q] {
	return &Singleton[T, D, Q]{
		target:       target,
		threshold:    FromReal[D](threshold),
		hasThreshold: true,
	}
}

func (s *Singleton[T, D, Q]) Target() Q { return s.target }

func (s *Singleton[T, D, Q]) Contains(distance float64) bool {
	if distance < 0 {
		return true
	}
	return s.ContainsDistance(FromReal[D](distance))
}

func (s *Singleton[T, D, Q]) ContainsDistance(distance D) bool {
	if !s.hasThreshold {
		return true
	}
	return distance <= s.threshold
}

func (s *Singleton[T, D, Q]) Consider(item T) D {
	distance := s.target.Distance(item)
	if s.ContainsDistance(distance) {
		s.threshold = distance
		s.hasThreshold = true
		s.best = candidate[D, T]{item: item, distance: distance}
		s.hasBest = true
	}
	return distance
}

// Neighbor returns the nearest candidate found, if any.
func (s *Singleton[T, D, Q]) Neighbor() (Neighbor[T], bool) {
	if !s.hasBest {
		var zero Neighbor[T]
		return zero, false
	}
	return s.best.toNeighbor(), true
}

// candidateHeap is a max-heap of candidates, ordered so the farthest
// candidate is at the top (ready to be evicted first).
type candidateHeap[D Distance, T any] []candidate[D, T]

func (h candidateHeap[D, T]) Len() int            { return len(h) }
func (h candidateHeap[D, T]) Less(i, j int) bool  { return h[i].distance > h[j].distance }
func (h candidateHeap[D, T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap[D, T]) Push(x interface{}) { *h = append(*h, x.(candidate[D, T])) }
func (h *candidateHeap[D, T]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// BoundedK is a Neighborhood of up to k results, backed by a max-heap.
type BoundedK[T any, D Distance, Q Proximity[T, D]] struct {
	target       Q
	k            int
	threshold    D
	hasThreshold bool
	heap         candidateHeap[D, T]
}

// NewBoundedK creates a BoundedK neighborhood with no upper bound.
func NewBoundedK[T any, D Distance, Q Proximity[T, D]](target Q, k int) *BoundedK[T, D, Q] {
	return &BoundedK[T, D, Q]{
		target: target,
		k:      k,
		heap:   make(candidateHeap[D, T], 0, k),
	}
}

// NewBoundedKWithin creates a BoundedK neighborhood bounded by threshold.
func NewBoundedKWithin[T any, D Distance, Q Proximity[T, D]](target Q, k int, threshold float64) *BoundedK[T, D, Q] {
	return &BoundedK[T, D, Q]{
		target:       target,
		k:            k,
		threshold:    FromReal[D](threshold),
		hasThreshold: true,
		heap:         make(candidateHeap[D, T], 0, k),
	}
}

func (b *BoundedK[T, D, Q]) Target() Q { return b.target }

func (b *BoundedK[T, D, Q]) Contains(distance float64) bool {
	if distance < 0 {
		return b.k > 0
	}
	return b.ContainsDistance(FromReal[D](distance))
}

func (b *BoundedK[T, D, Q]) ContainsDistance(distance D) bool {
	if b.k == 0 {
		return false
	}
	if !b.hasThreshold {
		return true
	}
	return distance <= b.threshold
}

func (b *BoundedK[T, D, Q]) Consider(item T) D {
	distance := b.target.Distance(item)
	if b.ContainsDistance(distance) {
		if len(b.heap) == b.k {
			heap.Pop(&b.heap)
		}
		heap.Push(&b.heap, candidate[D, T]{item: item, distance: distance})
		if len(b.heap) == b.k {
			b.threshold = b.heap[0].distance
			b.hasThreshold = true
		}
	}
	return distance
}

// Neighbors drains the heap into a slice sorted ascending by distance.
func (b *BoundedK[T, D, Q]) Neighbors() []Neighbor[T] {
	n := len(b.heap)
	result := make([]Neighbor[T], n)
	h := append(candidateHeap[D, T](nil), b.heap...)
	for i := n - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(candidate[D, T]).toNeighbor()
	}
	return result
}
