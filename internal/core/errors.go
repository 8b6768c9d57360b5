// Error taxonomy shared by the transform library, the edit session and its collaborators
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSource is returned when a path cannot be decoded as an image.
	ErrInvalidSource = errors.New("invalid image source")

	// ErrInvalidParameter is returned when transform parameters violate a precondition.
	// The session is left unchanged and the caller may retry with corrected values.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNothingToUndo is returned by undo when only the original frame is present.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrEncodeFailure is returned when the current image cannot be encoded or written.
	ErrEncodeFailure = errors.New("encode failure")

	// ErrNoImage is returned by presentation layers when an action needs a loaded image.
	ErrNoImage = errors.New("no image loaded")
)

// ParameterError describes a rejected transform parameter.
type ParameterError struct {
	Op     string
	Param  string
	Value  interface{}
	Reason string
}

// NewParameterError builds a ParameterError for op/param.
func NewParameterError(op, param string, value interface{}, reason string) error {
	return &ParameterError{Op: op, Param: param, Value: value, Reason: reason}
}

func (e *ParameterError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: %s=%v: %s", e.Op, e.Param, e.Value, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidParameter) hold for every ParameterError.
func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }
