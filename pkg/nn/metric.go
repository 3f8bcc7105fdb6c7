package nn

// Proximity is an asymmetric distance from a query type (the implementer)
// to an item type T: q.Distance(item) measures how far an item is from the
// query q. The query and item types need not coincide — they share only
// this function. Symmetry is not required of Proximity itself.
//
// D is the distance representation the query chooses to return; it must
// satisfy Distance.
type Proximity[T any, D Distance] interface {
	Distance(item T) D
}

// Metric is a marker refinement of Proximity asserting, on top of a
// symmetric base (the query type and T coincide), the triangle inequality:
//
//	x.Distance(x) == 0            (identity of indiscernibles)
//	x.Distance(y) == y.Distance(x) (symmetry)
//	x.Distance(z) <= x.Distance(y) + y.Distance(z) (triangle inequality)
//
// Any type implementing Proximity[T, D] with the right method set already
// satisfies Metric[T, D] structurally; this type exists purely to document
// the stronger contract at call sites that rely on it.
type Metric[T any, D Distance] interface {
	Proximity[T, D]
}

// Cartesian is a point in Cartesian space: one exposing real-valued
// coordinates along a fixed number of axes.
type Cartesian interface {
	// Dimensions returns the number of axes needed to describe this point.
	Dimensions() int
	// Coordinate returns the value of the i-th coordinate (i < Dimensions()).
	Coordinate(i int) float64
}

// CoordinateVector is a raw coordinate vector, itself Cartesian, with
// squared-Euclidean distance to another CoordinateVector.
type CoordinateVector []float64

func (v CoordinateVector) Dimensions() int { return len(v) }

func (v CoordinateVector) Coordinate(i int) float64 { return v[i] }

// Distance computes the squared-Euclidean distance to another vector of the
// same dimensionality.
func (v CoordinateVector) Distance(other CoordinateVector) SquaredDistance {
	var sum float64
	for i := range v {
		d := v[i] - other[i]
		sum += d * d
	}
	return NewSquaredFromSquare(sum)
}

// Neighbor is a nearest neighbor found during a search: the item together
// with its real-valued distance from the query.
type Neighbor[T any] struct {
	Item     T
	Distance float64
}
