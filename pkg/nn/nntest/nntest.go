// Package nntest is a shared nearest-neighbor test harness, reused by the
// exhaustive, kdtree, vptree, forest and approx tests in pkg/nn so each
// concrete index is checked against the same oracle and the same concrete
// scenarios from the specification. (pkg/nn/soft tests need a
// soft-deletable item type and carry their own fixture.)
package nntest

import (
	"math/rand/v2"
	"testing"

	"github.com/tavianator/pixelforest/pkg/nn"
)

// Point is a point in three-dimensional Euclidean space, used as the common
// fixture type across every index's tests.
type Point [3]float64

func (p Point) Dimensions() int { return 3 }

func (p Point) Coordinate(i int) float64 { return p[i] }

// Distance computes the squared-Euclidean distance to another Point.
func (p Point) Distance(o Point) nn.SquaredDistance {
	var sum float64
	for i := 0; i < 3; i++ {
		d := p[i] - o[i]
		sum += d * d
	}
	return nn.NewSquaredFromSquare(sum)
}

// DistanceToCoordinates computes the squared-Euclidean distance to a raw
// coordinate vector, satisfying kdtree.Query for Point-over-Point trees.
func (p Point) DistanceToCoordinates(point nn.CoordinateVector) nn.SquaredDistance {
	var sum float64
	for i := 0; i < 3; i++ {
		d := p[i] - point[i]
		sum += d * d
	}
	return nn.NewSquaredFromSquare(sum)
}

// Index is the subset of nn.Index that every tested implementation must
// satisfy for Point-over-Point queries.
type Index = nn.Index[Point, nn.SquaredDistance, Point]

// Builder constructs an index of the given kind from a set of points.
type Builder func(points []Point) Index

// RunSuite exercises empty-index behavior, the specification's concrete
// Pythagorean-points scenario table, and agreement with the exhaustive
// oracle over random input, against the index built by build.
func RunSuite(t *testing.T, build Builder) {
	t.Run("Empty", func(t *testing.T) { testEmpty(t, build) })
	t.Run("Pythagorean", func(t *testing.T) { testPythagorean(t, build) })
	t.Run("RandomAgreesWithOracle", func(t *testing.T) { testRandomPoints(t, build) })
}

func testEmpty(t *testing.T, build Builder) {
	idx := build(nil)
	target := Point{0, 0, 0}

	if _, ok := nn.Nearest[Point, nn.SquaredDistance, Point](idx, target); ok {
		t.Errorf("Nearest on empty index returned a result")
	}
	if _, ok := nn.NearestWithin[Point, nn.SquaredDistance, Point](idx, target, 1.0); ok {
		t.Errorf("NearestWithin on empty index returned a result")
	}
	if got := nn.KNearest[Point, nn.SquaredDistance, Point](idx, target, 0); len(got) != 0 {
		t.Errorf("KNearest(0) on empty index returned %v", got)
	}
	if got := nn.KNearest[Point, nn.SquaredDistance, Point](idx, target, 3); len(got) != 0 {
		t.Errorf("KNearest(3) on empty index returned %v", got)
	}
	if got := nn.KNearestWithin[Point, nn.SquaredDistance, Point](idx, target, 0, 1.0); len(got) != 0 {
		t.Errorf("KNearestWithin(0) on empty index returned %v", got)
	}
	if got := nn.KNearestWithin[Point, nn.SquaredDistance, Point](idx, target, 3, 1.0); len(got) != 0 {
		t.Errorf("KNearestWithin(3) on empty index returned %v", got)
	}
}

// testPythagorean is the concrete scenario table from the specification
// (§8): points chosen so every distance from the origin is an integer via
// Pythagorean triples.
func testPythagorean(t *testing.T, build Builder) {
	points := []Point{
		{3, 4, 0},
		{5, 0, 12},
		{0, 8, 15},
		{1, 2, 2},
		{2, 3, 6},
		{4, 4, 7},
	}
	idx := build(points)
	target := Point{0, 0, 0}

	nearest, ok := nn.Nearest[Point, nn.SquaredDistance, Point](idx, target)
	if !ok || nearest.Item != (Point{1, 2, 2}) || nearest.Distance != 3.0 {
		t.Errorf("Nearest = %v, %v; want {1,2,2}@3.0", nearest, ok)
	}

	if _, ok := nn.NearestWithin[Point, nn.SquaredDistance, Point](idx, target, 2.0); ok {
		t.Errorf("NearestWithin(2.0) found a result, want none")
	}
	within, ok := nn.NearestWithin[Point, nn.SquaredDistance, Point](idx, target, 4.0)
	if !ok || within.Item != (Point{1, 2, 2}) || within.Distance != 3.0 {
		t.Errorf("NearestWithin(4.0) = %v, %v; want {1,2,2}@3.0", within, ok)
	}

	k3 := nn.KNearest[Point, nn.SquaredDistance, Point](idx, target, 3)
	wantK3 := []Point{{1, 2, 2}, {3, 4, 0}, {2, 3, 6}}
	wantD3 := []float64{3, 5, 7}
	assertOrdered(t, k3, wantK3, wantD3)

	k3w6 := nn.KNearestWithin[Point, nn.SquaredDistance, Point](idx, target, 3, 6.0)
	assertOrdered(t, k3w6, []Point{{1, 2, 2}, {3, 4, 0}}, []float64{3, 5})
}

func assertOrdered(t *testing.T, got []nn.Neighbor[Point], wantItems []Point, wantDistances []float64) {
	t.Helper()
	if len(got) != len(wantItems) {
		t.Fatalf("got %d neighbors, want %d: %v", len(got), len(wantItems), got)
	}
	for i, n := range got {
		if n.Item != wantItems[i] || n.Distance != wantDistances[i] {
			t.Errorf("neighbor %d = %v; want {%v}@%v", i, n, wantItems[i], wantDistances[i])
		}
	}
}

func testRandomPoints(t *testing.T, build Builder) {
	points := make([]Point, 255)
	for i := range points {
		points[i] = Point{rand.Float64(), rand.Float64(), rand.Float64()}
	}
	target := Point{rand.Float64(), rand.Float64(), rand.Float64()}

	oracle := nn.NewExhaustive[Point, nn.SquaredDistance, Point](points)
	idx := build(points)

	want := nn.KNearest[Point, nn.SquaredDistance, Point](oracle, target, 3)
	got := nn.KNearest[Point, nn.SquaredDistance, Point](idx, target, 3)

	if len(want) != len(got) {
		t.Fatalf("got %d neighbors, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Distance != want[i].Distance {
			t.Errorf("neighbor %d distance = %v; want %v", i, got[i].Distance, want[i].Distance)
		}
	}
}
