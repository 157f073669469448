package remote

import (
	"errors"
	"fmt"
)

// CallError is a transport failure or non-2xx answer from a remote system.
type CallError struct {
	System     string
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *CallError) Error() string {
	if e.StatusCode != 0 && e.Err == nil {
		return fmt.Sprintf("%s %s %s failed: http %d: %s", e.System, e.Method, e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s %s failed: %v", e.System, e.Method, e.Path, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by a *CallError in err's chain, or 0.
func StatusCode(err error) int {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.StatusCode
	}
	return 0
}
