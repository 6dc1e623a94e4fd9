package device

import "reflect"

// Selector is a type-keyed extension registry. Drivers and devices embed one
// to expose backend-specific capabilities (a native handle, a vendor config
// struct) without widening the Driver/Device interfaces for every backend's
// special case.
type Selector struct {
	values map[reflect.Type]any
}

// NewSelector returns an empty Selector.
func NewSelector() *Selector {
	return &Selector{values: make(map[reflect.Type]any)}
}

// Provide registers v under type T, replacing any previous value of that
// type.
func Provide[T any](s *Selector, v T) {
	if s.values == nil {
		s.values = make(map[reflect.Type]any)
	}
	s.values[reflect.TypeFor[T]()] = v
}

// Lookup returns the value registered under type T, if any.
func Lookup[T any](s *Selector) (T, bool) {
	var zero T
	if s == nil || s.values == nil {
		return zero, false
	}
	v, ok := s.values[reflect.TypeFor[T]()]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
