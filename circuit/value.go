package circuit

// Value is a witness value that may be unknown. During key generation
// passes witnesses do not exist yet; the unknown state propagates through
// every arithmetic operation instead of masquerading as a zero value, so
// an uninitialized witness can never look like a valid one.
type Value[T any] struct {
	v     T
	known bool
}

// Known wraps a known witness value.
func Known[T any](v T) Value[T] {
	return Value[T]{v: v, known: true}
}

// Unknown returns the absent witness state.
func Unknown[T any]() Value[T] {
	return Value[T]{}
}

// IsKnown reports whether the value is present.
func (val Value[T]) IsKnown() bool {
	return val.known
}

// Get returns the wrapped value and whether it is present.
func (val Value[T]) Get() (T, bool) {
	return val.v, val.known
}

// MapValue applies f to a known value; an unknown input yields an unknown
// result.
func MapValue[T, U any](val Value[T], f func(T) U) Value[U] {
	if !val.known {
		return Unknown[U]()
	}
	return Known(f(val.v))
}

// MapValue2 applies f to two known values; if either is unknown the result
// is unknown.
func MapValue2[T, U, V any](a Value[T], b Value[U], f func(T, U) V) Value[V] {
	if !a.known || !b.known {
		return Unknown[V]()
	}
	return Known(f(a.v, b.v))
}
