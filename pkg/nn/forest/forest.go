// Package forest applies dynamization to an arbitrary static nearest
// neighbor index, via the classical logarithmic (Bentley-Saxe) method: new
// items land in a small flat buffer, and once the buffer fills, groups of
// items are consolidated into a geometric sequence of static sub-indices
// (sizes 2^6, 2^7, 2^8, ...), each rebuilt from scratch only when its bit in
// the binary representation of the item count flips.
package forest

import (
	"time"

	"github.com/tavianator/pixelforest/pkg/nn"
)

// bufferBits is the number of bits dedicated to the flat buffer.
const bufferBits = 6

// bufferSize is the maximum size of the buffer before it is folded into the
// tree sequence.
const bufferSize = 1 << bufferBits

// Builder constructs a static index from a batch of items, the operation
// the forest needs to materialize one slot of its tree sequence.
type Builder[T any, D nn.Distance, Q nn.Proximity[T, D]] func(items []T) nn.StaticIndex[T, D, Q]

// Forest is a dynamic nearest-neighbor index built from a family of static
// ones: new items can be added one at a time without paying the full
// rebuild cost of the underlying structure on every insertion.
type Forest[T any, D nn.Distance, Q nn.Proximity[T, D]] struct {
	buffer   []T
	trees    []nn.StaticIndex[T, D, Q]
	build    Builder[T, D, Q]
	recorder nn.Recorder
}

// New creates an empty forest that materializes sub-indices with build.
func New[T any, D nn.Distance, Q nn.Proximity[T, D]](build Builder[T, D, Q]) *Forest[T, D, Q] {
	return &Forest[T, D, Q]{build: build}
}

// SetRecorder attaches a Recorder that Search and sub-index rebuilds report
// to. A nil recorder (the default) disables reporting.
func (f *Forest[T, D, Q]) SetRecorder(recorder nn.Recorder) {
	f.recorder = recorder
}

// Push adds a single item to the forest.
func (f *Forest[T, D, Q]) Push(item T) {
	f.Extend([]T{item})
}

// Extend adds items to the forest, folding the buffer into the tree
// sequence whenever it reaches bufferSize.
func (f *Forest[T, D, Q]) Extend(items []T) {
	f.buffer = append(f.buffer, items...)
	if len(f.buffer) < bufferSize {
		return
	}

	length := f.Len()

	for i := 0; ; i++ {
		bit := 1 << (i + bufferBits)
		if bit > length {
			break
		}

		if i >= len(f.trees) {
			f.trees = append(f.trees, nil)
		}

		if length&bit == 0 {
			if f.trees[i] != nil {
				f.buffer = append(f.buffer, f.trees[i].Items()...)
				f.trees[i] = nil
			}
		} else if f.trees[i] == nil {
			offset := len(f.buffer) - bit
			chunk := append([]T(nil), f.buffer[offset:]...)
			f.buffer = f.buffer[:offset]
			f.trees[i] = f.build(chunk)
			if f.recorder != nil {
				f.recorder.RecordRebuild("forest")
			}
		}
	}
}

// Len returns the number of items in the forest.
func (f *Forest[T, D, Q]) Len() int {
	length := len(f.buffer)
	for i, t := range f.trees {
		if t != nil {
			length += 1 << (i + bufferBits)
		}
	}
	return length
}

// IsEmpty reports whether the forest holds no items.
func (f *Forest[T, D, Q]) IsEmpty() bool {
	if len(f.buffer) != 0 {
		return false
	}
	for _, t := range f.trees {
		if t != nil {
			return false
		}
	}
	return true
}

// Items returns every item in the forest, across the buffer and every tree.
// Forest itself satisfies nn.StaticIndex, so this is what lets a forest of
// forests drain an inner forest into its own buffer during compaction.
func (f *Forest[T, D, Q]) Items() []T {
	result := append([]T(nil), f.buffer...)
	for _, t := range f.trees {
		if t != nil {
			result = append(result, t.Items()...)
		}
	}
	return result
}

// Search implements nn.Index, scanning the buffer linearly and delegating
// to each materialized tree in turn.
func (f *Forest[T, D, Q]) Search(neighborhood nn.Neighborhood[T, D, Q]) {
	if f.recorder != nil {
		start := time.Now()
		defer func() { f.recorder.RecordSearch("forest", time.Since(start)) }()
	}
	for _, item := range f.buffer {
		neighborhood.Consider(item)
	}
	for _, t := range f.trees {
		if t != nil {
			t.Search(neighborhood)
		}
	}
}
