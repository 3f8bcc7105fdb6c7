package nn

import "testing"

type scalar float64

func (s scalar) Distance(q scalar) RawDistance {
	d := float64(s) - float64(q)
	if d < 0 {
		d = -d
	}
	return NewRawDistance(d)
}

func TestSingletonAcceptsOnlyCloser(t *testing.T) {
	s := NewSingleton[scalar, RawDistance, scalar](scalar(10))

	s.Consider(scalar(15))
	got, ok := s.Neighbor()
	if !ok || got.Item != scalar(15) {
		t.Fatalf("after first consider: %v, %v", got, ok)
	}

	s.Consider(scalar(20))
	got, ok = s.Neighbor()
	if !ok || got.Item != scalar(15) {
		t.Errorf("farther candidate should be rejected, got %v", got)
	}

	s.Consider(scalar(11))
	got, ok = s.Neighbor()
	if !ok || got.Item != scalar(11) {
		t.Errorf("closer candidate should replace, got %v", got)
	}
}

func TestSingletonWithinRejectsBeyondThreshold(t *testing.T) {
	s := NewSingletonWithin[scalar, RawDistance, scalar](scalar(0), 5.0)

	s.Consider(scalar(10))
	if _, ok := s.Neighbor(); ok {
		t.Errorf("candidate beyond threshold should be rejected")
	}

	s.Consider(scalar(3))
	got, ok := s.Neighbor()
	if !ok || got.Item != scalar(3) {
		t.Errorf("candidate within threshold should be accepted, got %v, %v", got, ok)
	}
}

func TestBoundedKZeroRejectsEverything(t *testing.T) {
	b := NewBoundedK[scalar, RawDistance, scalar](scalar(0), 0)
	b.Consider(scalar(1))
	if got := b.Neighbors(); len(got) != 0 {
		t.Errorf("k=0 should reject everything, got %v", got)
	}
}

func TestBoundedKKeepsClosestK(t *testing.T) {
	b := NewBoundedK[scalar, RawDistance, scalar](scalar(0), 2)
	for _, v := range []scalar{10, 1, 5, 2, 8} {
		b.Consider(v)
	}

	got := b.Neighbors()
	if len(got) != 2 {
		t.Fatalf("got %d neighbors, want 2: %v", len(got), got)
	}
	if got[0].Item != scalar(1) || got[1].Item != scalar(2) {
		t.Errorf("got %v, want [1, 2] ascending by distance", got)
	}
	if got[0].Distance > got[1].Distance {
		t.Errorf("neighbors not sorted ascending: %v", got)
	}
}

func TestBoundedKContainsDistanceTightensAtCapacity(t *testing.T) {
	b := NewBoundedK[scalar, RawDistance, scalar](scalar(0), 1)
	if !b.ContainsDistance(NewRawDistance(100)) {
		t.Errorf("before capacity, any distance should be admissible")
	}
	b.Consider(scalar(5))
	if b.ContainsDistance(NewRawDistance(10)) {
		t.Errorf("at capacity, farther distance should not be admissible")
	}
	if !b.ContainsDistance(NewRawDistance(1)) {
		t.Errorf("at capacity, closer distance should be admissible")
	}
}
