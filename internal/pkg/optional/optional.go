// Package optional provides a presence-aware value container for partial updates.
package optional

import "encoding/json"

// Value holds a T together with whether it was supplied at all.
// A JSON field that is absent leaves the Value unset; an explicit null sets it to the zero T.
type Value[T any] struct {
	value T
	set   bool
}

// Some returns a Value that is set to v.
func Some[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// None returns an unset Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// IsSet reports whether a value was supplied.
func (v Value[T]) IsSet() bool {
	return v.set
}

// Get returns the value and whether it was supplied.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.set
}

// OrElse returns the value if supplied, otherwise fallback.
func (v Value[T]) OrElse(fallback T) T {
	if v.set {
		return v.value
	}
	return fallback
}

// UnmarshalJSON marks the value as supplied and decodes it.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.set = true
	return json.Unmarshal(data, &v.value)
}

// MarshalJSON encodes the held value.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
