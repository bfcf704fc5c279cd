package popup

import "errors"

// ErrNoAnchor is returned when a popup is shown before an anchor is bound.
var ErrNoAnchor = errors.New("popup helper cannot be used without an anchor")

// StateError reports an operation attempted in a state that cannot serve it.
type StateError struct {
	Op  string
	Err error
}

func (e *StateError) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + ": invalid state"
}

func (e *StateError) Unwrap() error {
	return e.Err
}
