package notes

import (
	"errors"
	"fmt"
)

// Kind classifies a store failure.
type Kind string

const (
	KindOpen    Kind = "open"
	KindSchema  Kind = "schema"
	KindPrepare Kind = "prepare"
	KindExec    Kind = "exec"
)

// Error is a store failure. Err holds the underlying driver error.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("notes: %s: %s failed", e.Op, e.Kind)
	}
	return fmt.Sprintf("notes: %s: %s failed: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf returns the kind of a store error, or "" if err is not one.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
