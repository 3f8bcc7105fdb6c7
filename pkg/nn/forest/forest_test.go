package forest_test

import (
	"testing"

	"github.com/tavianator/pixelforest/pkg/nn"
	"github.com/tavianator/pixelforest/pkg/nn/forest"
	"github.com/tavianator/pixelforest/pkg/nn/nntest"
)

func exhaustiveBuilder() forest.Builder[nntest.Point, nn.SquaredDistance, nntest.Point] {
	return func(items []nntest.Point) nn.StaticIndex[nntest.Point, nn.SquaredDistance, nntest.Point] {
		return nn.NewExhaustive[nntest.Point, nn.SquaredDistance, nntest.Point](items)
	}
}

func TestExhaustiveForest(t *testing.T) {
	nntest.RunSuite(t, func(points []nntest.Point) nntest.Index {
		f := forest.New[nntest.Point, nn.SquaredDistance, nntest.Point](exhaustiveBuilder())
		f.Extend(points)
		return f
	})
}

func TestForestOfForests(t *testing.T) {
	nntest.RunSuite(t, func(points []nntest.Point) nntest.Index {
		f := forest.New[nntest.Point, nn.SquaredDistance, nntest.Point](
			func(items []nntest.Point) nn.StaticIndex[nntest.Point, nn.SquaredDistance, nntest.Point] {
				inner := forest.New[nntest.Point, nn.SquaredDistance, nntest.Point](exhaustiveBuilder())
				inner.Extend(items)
				return inner
			},
		)
		f.Extend(points)
		return f
	})
}

func TestKdForest(t *testing.T) {
	nntest.RunSuite(t, func(points []nntest.Point) nntest.Index {
		f := forest.NewKdForest[nntest.Point, nn.SquaredDistance, nntest.Point]()
		f.Extend(points)
		return f
	})
}

func TestVpForest(t *testing.T) {
	nntest.RunSuite(t, func(points []nntest.Point) nntest.Index {
		f := forest.NewVpForest[nntest.Point, nn.SquaredDistance, nntest.Point]()
		f.Extend(points)
		return f
	})
}

func TestForestLenAndIsEmpty(t *testing.T) {
	f := forest.New[nntest.Point, nn.SquaredDistance, nntest.Point](exhaustiveBuilder())
	if !f.IsEmpty() || f.Len() != 0 {
		t.Fatalf("new forest should be empty, got len=%d", f.Len())
	}

	f.Push(nntest.Point{1, 1, 1})
	if f.IsEmpty() || f.Len() != 1 {
		t.Errorf("after one push, len = %d, want 1", f.Len())
	}
}

func TestForestFoldsBufferIntoTree(t *testing.T) {
	f := forest.New[nntest.Point, nn.SquaredDistance, nntest.Point](exhaustiveBuilder())

	points := make([]nntest.Point, 64)
	for i := range points {
		points[i] = nntest.Point{float64(i), 0, 0}
	}
	f.Extend(points)

	if got := f.Len(); got != 64 {
		t.Fatalf("Len() = %d, want 64", got)
	}

	got := nn.KNearest[nntest.Point, nn.SquaredDistance, nntest.Point](f, nntest.Point{0, 0, 0}, 3)
	if len(got) != 3 || got[0].Item != (nntest.Point{0, 0, 0}) {
		t.Errorf("KNearest after fold = %v", got)
	}
}

func TestForestMergesAdjacentTreesOnCarry(t *testing.T) {
	f := forest.New[nntest.Point, nn.SquaredDistance, nntest.Point](exhaustiveBuilder())

	points := make([]nntest.Point, 128)
	for i := range points {
		points[i] = nntest.Point{float64(i), 0, 0}
	}
	f.Extend(points[:64])
	f.Extend(points[64:])

	if got := f.Len(); got != 128 {
		t.Fatalf("Len() = %d, want 128", got)
	}

	got := nn.KNearest[nntest.Point, nn.SquaredDistance, nntest.Point](f, nntest.Point{0, 0, 0}, 1)
	if len(got) != 1 || got[0].Item != (nntest.Point{0, 0, 0}) {
		t.Errorf("KNearest after carry-merge = %v", got)
	}
}
