// Package approx converts an exact nearest-neighbor index into an
// approximate one, trading accuracy for speed by pruning more eagerly and
// capping the number of candidates considered.
package approx

import (
	"github.com/tavianator/pixelforest/pkg/nn"
)

// neighborhood scales every distance it is asked about by ratio before
// passing it to the wrapped neighborhood's test, so subtrees are pruned
// unless they could hold something ratio times closer than the current
// threshold. Once limit candidates have been considered, Contains and
// ContainsDistance report false. Consider itself always forwards to the
// wrapped neighborhood.
type neighborhood[T any, D nn.Distance, Q nn.Proximity[T, D]] struct {
	inner nn.Neighborhood[T, D, Q]
	ratio float64
	limit int
}

func (n *neighborhood[T, D, Q]) Target() Q { return n.inner.Target() }

func (n *neighborhood[T, D, Q]) Contains(distance float64) bool {
	if n.limit <= 0 {
		return false
	}
	return n.inner.Contains(n.ratio * distance)
}

func (n *neighborhood[T, D, Q]) ContainsDistance(distance D) bool {
	return n.Contains(n.ratio * distance.Real())
}

func (n *neighborhood[T, D, Q]) Consider(item T) D {
	n.limit--
	return n.inner.Consider(item)
}

// Search wraps an exact index to make it approximate: a ratio greater than
// 1.0 prunes any region that could not improve the current best distance by
// a factor of ratio, and once limit candidates have been considered every
// further pruning test fails. Candidates the wrapped index offers without a
// pruning test (such as the node it is visiting) are still considered.
//
// A ratio of 1.0 and an unbounded limit make Search behave exactly like the
// wrapped index.
type Search[T any, D nn.Distance, Q nn.Proximity[T, D]] struct {
	inner nn.Index[T, D, Q]
	ratio float64
	limit int
}

// New wraps inner as an approximate index. limit <= 0 means unbounded.
func New[T any, D nn.Distance, Q nn.Proximity[T, D]](inner nn.Index[T, D, Q], ratio float64, limit int) *Search[T, D, Q] {
	if limit <= 0 {
		limit = int(^uint(0) >> 1)
	}
	return &Search[T, D, Q]{inner: inner, ratio: ratio, limit: limit}
}

// Search implements nn.Index, delegating to the wrapped index with a
// ratio-and-limit neighborhood in place of the caller's.
func (s *Search[T, D, Q]) Search(target nn.Neighborhood[T, D, Q]) {
	s.inner.Search(&neighborhood[T, D, Q]{inner: target, ratio: s.ratio, limit: s.limit})
}
