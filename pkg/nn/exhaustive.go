package nn

import "time"

// Exhaustive is a baseline linear-scan index. It is also the reference
// oracle other indices are tested against: every other index must agree
// with Exhaustive over random inputs.
type Exhaustive[T any, D Distance, Q Proximity[T, D]] struct {
	items    []T
	recorder Recorder
}

// NewExhaustive collects items into an Exhaustive index.
func NewExhaustive[T any, D Distance, Q Proximity[T, D]](items []T) *Exhaustive[T, D, Q] {
	return &Exhaustive[T, D, Q]{items: append([]T(nil), items...)}
}

// SetRecorder attaches a Recorder that Search reports to. A nil recorder
// (the default) disables reporting.
func (e *Exhaustive[T, D, Q]) SetRecorder(recorder Recorder) {
	e.recorder = recorder
}

// Push adds a single item to the index.
func (e *Exhaustive[T, D, Q]) Push(item T) {
	e.items = append(e.items, item)
}

// Extend adds multiple items to the index.
func (e *Exhaustive[T, D, Q]) Extend(items []T) {
	e.items = append(e.items, items...)
}

// Items returns the stored items, in insertion order.
func (e *Exhaustive[T, D, Q]) Items() []T {
	return e.items
}

// Search offers every item to neighborhood in insertion order.
func (e *Exhaustive[T, D, Q]) Search(neighborhood Neighborhood[T, D, Q]) {
	if e.recorder != nil {
		start := time.Now()
		defer func() { e.recorder.RecordSearch("exhaustive", time.Since(start)) }()
	}
	for _, item := range e.items {
		neighborhood.Consider(item)
	}
}
