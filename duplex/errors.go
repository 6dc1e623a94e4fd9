package duplex

import "fmt"

// CallbackError classifies a failure of a composed duplex stream (while
// creating, starting, stopping or ejecting it) by the side that failed,
// since the underlying input and output streams can fail independently.
type CallbackError struct {
	Side string // "input", "output" or "other"
	Err  error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("duplex: %s: %v", e.Side, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }

func inputError(err error) error {
	if err == nil {
		return nil
	}
	return &CallbackError{Side: "input", Err: err}
}

func outputError(err error) error {
	if err == nil {
		return nil
	}
	return &CallbackError{Side: "output", Err: err}
}
