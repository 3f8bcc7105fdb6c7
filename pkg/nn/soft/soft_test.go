package soft_test

import (
	"testing"

	"github.com/tavianator/pixelforest/pkg/nn"
	"github.com/tavianator/pixelforest/pkg/nn/soft"
)

// softPoint is a Cartesian point that can be soft-deleted, mirroring the
// specification's concrete Pythagorean-points scenario (§8) with one point
// pre-deleted at the origin.
type softPoint struct {
	x, y, z float64
	deleted bool
}

func newPoint(x, y, z float64) softPoint       { return softPoint{x: x, y: y, z: z} }
func newDeletedPoint(x, y, z float64) softPoint { return softPoint{x: x, y: y, z: z, deleted: true} }

func (p softPoint) IsDeleted() bool { return p.deleted }

func (p softPoint) Dimensions() int { return 3 }

func (p softPoint) Coordinate(i int) float64 {
	switch i {
	case 0:
		return p.x
	case 1:
		return p.y
	default:
		return p.z
	}
}

func (p softPoint) Distance(o softPoint) nn.SquaredDistance {
	dx, dy, dz := p.x-o.x, p.y-o.y, p.z-o.z
	return nn.NewSquaredFromSquare(dx*dx + dy*dy + dz*dz)
}

func (p softPoint) DistanceToCoordinates(point nn.CoordinateVector) nn.SquaredDistance {
	dx, dy, dz := p.x-point[0], p.y-point[1], p.z-point[2]
	return nn.NewSquaredFromSquare(dx*dx + dy*dy + dz*dz)
}

func points() []softPoint {
	return []softPoint{
		newDeletedPoint(0, 0, 0),
		newPoint(3, 4, 0),
		newPoint(5, 0, 12),
		newPoint(0, 8, 15),
		newPoint(1, 2, 2),
		newPoint(2, 3, 6),
		newPoint(4, 4, 7),
	}
}

func assertScenario(t *testing.T, idx nn.Index[softPoint, nn.SquaredDistance, softPoint]) {
	t.Helper()
	target := softPoint{}

	nearest, ok := nn.Nearest[softPoint, nn.SquaredDistance, softPoint](idx, target)
	if !ok || nearest.Item != newPoint(1, 2, 2) || nearest.Distance != 3.0 {
		t.Errorf("Nearest = %v, %v; want {1,2,2}@3.0", nearest, ok)
	}

	if _, ok := nn.NearestWithin[softPoint, nn.SquaredDistance, softPoint](idx, target, 2.0); ok {
		t.Errorf("NearestWithin(2.0) found a result, want none")
	}

	k3 := nn.KNearest[softPoint, nn.SquaredDistance, softPoint](idx, target, 3)
	want := []softPoint{newPoint(1, 2, 2), newPoint(3, 4, 0), newPoint(2, 3, 6)}
	wantD := []float64{3, 5, 7}
	if len(k3) != len(want) {
		t.Fatalf("KNearest(3) = %v, want %v", k3, want)
	}
	for i, n := range k3 {
		if n.Item != want[i] || n.Distance != wantD[i] {
			t.Errorf("neighbor %d = %v; want {%v}@%v", i, n, want[i], wantD[i])
		}
	}

	k3w6 := nn.KNearestWithin[softPoint, nn.SquaredDistance, softPoint](idx, target, 3, 6.0)
	if len(k3w6) != 2 || k3w6[0].Item != newPoint(1, 2, 2) || k3w6[1].Item != newPoint(3, 4, 0) {
		t.Errorf("KNearestWithin(3, 6.0) = %v", k3w6)
	}

	for _, n := range k3 {
		if n.Item.IsDeleted() {
			t.Errorf("deleted item %v leaked into results", n.Item)
		}
	}
}

func TestSoftKdForest(t *testing.T) {
	idx := soft.NewSoftKdForest[softPoint, nn.SquaredDistance, softPoint]()
	for _, p := range points() {
		idx.Push(p)
	}
	assertScenario(t, idx)

	idx.Rebuild()
	assertScenario(t, idx)

	if got := len(idx.Items()); got != 6 {
		t.Errorf("after Rebuild, Items() has %d entries, want 6 (deleted item dropped)", got)
	}
}

func TestSoftVpForest(t *testing.T) {
	idx := soft.NewSoftVpForest[softPoint, nn.SquaredDistance, softPoint]()
	for _, p := range points() {
		idx.Push(p)
	}
	assertScenario(t, idx)

	idx.Rebuild()
	assertScenario(t, idx)

	if got := len(idx.Items()); got != 6 {
		t.Errorf("after Rebuild, Items() has %d entries, want 6 (deleted item dropped)", got)
	}
}

