package approx_test

import (
	"math"
	"testing"

	"github.com/tavianator/pixelforest/pkg/nn"
	"github.com/tavianator/pixelforest/pkg/nn/approx"
	"github.com/tavianator/pixelforest/pkg/nn/kdtree"
	"github.com/tavianator/pixelforest/pkg/nn/nntest"
	"github.com/tavianator/pixelforest/pkg/nn/vptree"
)

// An exact ratio (1.0) and an unbounded limit must behave exactly like the
// wrapped index, so the shared suite (which assumes an exact oracle) still
// applies.
func TestApproxKdTreeExactIsExact(t *testing.T) {
	nntest.RunSuite(t, func(points []nntest.Point) nntest.Index {
		tree := kdtree.New[nntest.Point, nn.SquaredDistance, nntest.Point](points)
		return approx.New[nntest.Point, nn.SquaredDistance, nntest.Point](tree, 1.0, 0)
	})
}

func TestApproxVpTreeExactIsExact(t *testing.T) {
	nntest.RunSuite(t, func(points []nntest.Point) nntest.Index {
		tree := vptree.New[nntest.Point, nn.SquaredDistance, nntest.Point](points)
		return approx.New[nntest.Point, nn.SquaredDistance, nntest.Point](tree, 1.0, 0)
	})
}

// A negative candidate limit means unbounded, so with ratio 1.0 the search
// is exact.
func TestApproxNegativeLimitIsUnbounded(t *testing.T) {
	points := []nntest.Point{{1, 2, 2}, {3, 4, 0}, {2, 3, 6}}
	tree := kdtree.New[nntest.Point, nn.SquaredDistance, nntest.Point](points)
	idx := approx.New[nntest.Point, nn.SquaredDistance, nntest.Point](tree, 1.0, -1)

	n := nn.NewSingleton[nntest.Point, nn.SquaredDistance, nntest.Point](nntest.Point{0, 0, 0})
	idx.Search(n)
	got, ok := n.Neighbor()
	if !ok || got.Item != (nntest.Point{1, 2, 2}) || got.Distance != 3 {
		t.Errorf("limit<=0 found %v, %v; want (1,2,2) at 3", got, ok)
	}
}

// A wide ratio must never return a result closer than the exact nearest
// neighbor: pruning more eagerly can only skip candidates, so the result is
// the same or a farther one.
func TestApproxRatioNeverImproves(t *testing.T) {
	points := make([]nntest.Point, 64)
	for i := range points {
		points[i] = nntest.Point{float64(i), float64(i * i % 7), float64(i % 5)}
	}
	target := nntest.Point{3, 1, 4}

	oracle := nn.NewExhaustive[nntest.Point, nn.SquaredDistance, nntest.Point](points)
	exactNearest, _ := nn.Nearest[nntest.Point, nn.SquaredDistance, nntest.Point](oracle, target)

	tree := kdtree.New[nntest.Point, nn.SquaredDistance, nntest.Point](points)
	loose := approx.New[nntest.Point, nn.SquaredDistance, nntest.Point](tree, 4.0, 0)
	approxNearest, ok := nn.Nearest[nntest.Point, nn.SquaredDistance, nntest.Point](loose, target)
	if !ok {
		t.Fatal("approximate search found nothing")
	}
	if approxNearest.Distance < exactNearest.Distance-1e-9 {
		t.Errorf("approximate distance %v closer than exact %v", approxNearest.Distance, exactNearest.Distance)
	}
	if math.IsNaN(approxNearest.Distance) {
		t.Error("approximate distance is NaN")
	}
}
