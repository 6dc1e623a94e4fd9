// Package facade provides a callback-type-erased view over device.Driver,
// device.Device and stream.Handle for callers that need to select a
// backend and a stream at runtime, where the concrete callback type is not
// known until a configuration file or a user click picks it. The
// device and stream packages deliberately keep their generic methods out
// of their interfaces — a Go interface method cannot introduce its own
// type parameter — so a dynamic trait-object-like surface needs its
// generic parts boxed behind `any` instead.
package facade

import (
	"fmt"

	"github.com/loopwire-audio/loopwire/stream"
)

// AnyStreamHandle is a type-erased stream.Handle. Eject returns the
// original callback boxed as any; use EjectAs to recover its concrete
// type.
type AnyStreamHandle interface {
	Start() error
	Stop() error
	Eject() (any, error)
	Config() stream.ResolvedConfig
}

type boxedHandle[Callback any] struct {
	inner stream.Handle[Callback]
}

func (b *boxedHandle[Callback]) Start() error                     { return b.inner.Start() }
func (b *boxedHandle[Callback]) Stop() error                      { return b.inner.Stop() }
func (b *boxedHandle[Callback]) Config() stream.ResolvedConfig    { return b.inner.Config() }
func (b *boxedHandle[Callback]) Eject() (any, error) {
	cb, err := b.inner.Eject()
	if err != nil {
		return nil, err
	}
	return cb, nil
}

// Box erases h's callback type, yielding a handle that can sit in a slice
// or map alongside handles of other callback types.
func Box[Callback any](h stream.Handle[Callback]) AnyStreamHandle {
	return &boxedHandle[Callback]{inner: h}
}

// EjectAs ejects h and downcasts the returned callback to Callback. It
// returns an error, rather than panicking, if h's erased callback was not
// actually of type Callback — a caller mismatching EjectAs's type
// parameter against the type it originally passed to Box is a programming
// error, but one a dynamic facade cannot prevent at compile time.
func EjectAs[Callback any](h AnyStreamHandle) (Callback, error) {
	var zero Callback
	v, err := h.Eject()
	if err != nil {
		return zero, err
	}
	cb, ok := v.(Callback)
	if !ok {
		return zero, fmt.Errorf("facade: eject: callback is %T, not %T", v, zero)
	}
	return cb, nil
}
