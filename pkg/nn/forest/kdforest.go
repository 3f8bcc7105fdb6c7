package forest

import (
	"github.com/tavianator/pixelforest/pkg/nn"
	"github.com/tavianator/pixelforest/pkg/nn/kdtree"
)

// NewKdForest creates an empty dynamized forest of k-d trees.
func NewKdForest[T nn.Cartesian, D nn.Distance, Q kdtree.Query[T, D]]() *Forest[T, D, Q] {
	return New[T, D, Q](func(items []T) nn.StaticIndex[T, D, Q] {
		return kdtree.New[T, D, Q](items)
	})
}
