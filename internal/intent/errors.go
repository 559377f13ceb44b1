package intent

import (
	"errors"
	"fmt"
)

// ErrMalformedParameter is matched by every parameter extraction failure
var ErrMalformedParameter = errors.New("malformed parameter")

var errNotPositive = errors.New("must be at least 1")

// ParamError reports a question whose intent was recognized but whose
// parameter is missing or has the wrong type
type ParamError struct {
	Intent Intent
	Param  string
	Value  string
	Err    error
}

func (e *ParamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: missing %s", e.Intent, e.Param)
	}
	return fmt.Sprintf("%s: invalid %s %q: %v", e.Intent, e.Param, e.Value, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrMalformedParameter) match any ParamError
func (e *ParamError) Is(target error) bool {
	return target == ErrMalformedParameter
}
