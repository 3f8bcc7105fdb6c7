package soft

import (
	"github.com/tavianator/pixelforest/pkg/nn"
	"github.com/tavianator/pixelforest/pkg/nn/forest"
	"github.com/tavianator/pixelforest/pkg/nn/kdtree"
)

// CartesianDeletable is a Cartesian point that can be soft-deleted, the
// item constraint for a soft k-d forest.
type CartesianDeletable interface {
	nn.Cartesian
	SoftDelete
}

// NewSoftKdForest creates an empty dynamized, soft-deletable forest of k-d
// trees.
func NewSoftKdForest[T CartesianDeletable, D nn.Distance, Q kdtree.Query[T, D]]() *Search[T, D, Q, *forest.Forest[T, D, Q]] {
	return New[T, D, Q, *forest.Forest[T, D, Q]](func() *forest.Forest[T, D, Q] {
		return forest.NewKdForest[T, D, Q]()
	})
}

// MetricDeletable is a general metric-space item that can be soft-deleted,
// the item constraint for a soft VP forest.
type MetricDeletable[T any, D nn.Distance] interface {
	nn.Metric[T, D]
	SoftDelete
}

// NewSoftVpForest creates an empty dynamized, soft-deletable forest of
// vantage-point trees.
func NewSoftVpForest[T MetricDeletable[T, D], D nn.Distance, Q nn.Proximity[T, D]]() *Search[T, D, Q, *forest.Forest[T, D, Q]] {
	return New[T, D, Q, *forest.Forest[T, D, Q]](func() *forest.Forest[T, D, Q] {
		return forest.NewVpForest[T, D, Q]()
	})
}
