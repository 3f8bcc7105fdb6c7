package forest

import (
	"github.com/tavianator/pixelforest/pkg/nn"
	"github.com/tavianator/pixelforest/pkg/nn/vptree"
)

// NewVpForest creates an empty dynamized forest of vantage-point trees.
func NewVpForest[T nn.Metric[T, D], D nn.Distance, Q nn.Proximity[T, D]]() *Forest[T, D, Q] {
	return New[T, D, Q](func(items []T) nn.StaticIndex[T, D, Q] {
		return vptree.New[T, D, Q](items)
	})
}
