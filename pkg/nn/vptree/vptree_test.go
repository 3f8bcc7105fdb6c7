package vptree_test

import (
	"testing"

	"github.com/tavianator/pixelforest/pkg/nn"
	"github.com/tavianator/pixelforest/pkg/nn/nntest"
	"github.com/tavianator/pixelforest/pkg/nn/vptree"
)

func TestVpTree(t *testing.T) {
	nntest.RunSuite(t, func(points []nntest.Point) nntest.Index {
		return vptree.New[nntest.Point, nn.SquaredDistance, nntest.Point](points)
	})
}

func TestVpTreeItemsRoundTrip(t *testing.T) {
	points := []nntest.Point{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	tree := vptree.New[nntest.Point, nn.SquaredDistance, nntest.Point](points)

	got := tree.Items()
	if len(got) != len(points) {
		t.Fatalf("got %d items, want %d", len(got), len(points))
	}

	seen := make(map[nntest.Point]bool, len(got))
	for _, p := range got {
		seen[p] = true
	}
	for _, p := range points {
		if !seen[p] {
			t.Errorf("item %v missing from tree", p)
		}
	}
}

func TestVpTreeSingleItem(t *testing.T) {
	points := []nntest.Point{{2, 2, 2}}
	tree := vptree.New[nntest.Point, nn.SquaredDistance, nntest.Point](points)

	got, ok := nn.Nearest[nntest.Point, nn.SquaredDistance, nntest.Point](tree, nntest.Point{0, 0, 0})
	if !ok || got.Item != points[0] {
		t.Errorf("Nearest = %v, %v; want %v", got, ok, points[0])
	}
}
