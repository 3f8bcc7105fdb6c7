// Package nn is the nearest-neighbor search core: a metric-space
// abstraction, an order-preserving distance algebra, a neighborhood
// accumulator, and the index family that searches over it.
package nn

import "math"

// Distance is an order embedding for a non-negative real distance: a value
// that can be compared more cheaply than the real it represents (e.g.
// deferring a square root), while preserving the real's order.
//
// Implementations must satisfy, for all non-negative reals x and y:
//
//	x == D(x).Real()
//	x <= y iff D(x) <= D(y)
//
// The underlying representation must be float64 so ordinary comparison
// operators (<, <=) work directly between two values of the same concrete
// Distance type; Real is only called when a caller actually needs the
// decoded value.
type Distance interface {
	~float64
	Real() float64
}

// RawDistance is a value-preserving Distance: the stored value and the
// real distance are identical.
type RawDistance float64

// NewRawDistance wraps a non-negative real as a RawDistance.
func NewRawDistance(d float64) RawDistance {
	return RawDistance(d)
}

// Real returns the wrapped value unchanged.
func (d RawDistance) Real() float64 { return float64(d) }

// SquaredDistance stores d^2 and compares on the stored value, deferring the
// square root until a real is actually demanded.
type SquaredDistance float64

// NewSquaredFromRoot squares d to build a SquaredDistance.
func NewSquaredFromRoot(d float64) SquaredDistance {
	return SquaredDistance(d * d)
}

// NewSquaredFromSquare builds a SquaredDistance directly from an
// already-squared value, for callers (like squared-Euclidean formulas) that
// can produce d^2 without a redundant multiply.
func NewSquaredFromSquare(d2 float64) SquaredDistance {
	return SquaredDistance(d2)
}

// Real takes the square root of the stored squared value.
func (d SquaredDistance) Real() float64 {
	return math.Sqrt(float64(d))
}

// FromReal converts a real, non-negative distance into a Distance of type D.
// Used where a caller supplies a plain float64 threshold (e.g.
// NearestWithin) and it must be compared against an index's native
// Distance representation.
func FromReal[D Distance](real float64) D {
	var zero D
	switch any(zero).(type) {
	case RawDistance:
		return any(RawDistance(real)).(D)
	case SquaredDistance:
		return any(NewSquaredFromRoot(real)).(D)
	default:
		// Custom Distance implementations are expected to be
		// value-preserving like RawDistance unless they special-case
		// themselves above.
		return D(real)
	}
}
