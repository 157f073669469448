package ims

import "fmt"

// AuthenticationError means the client-credentials exchange with IMS failed.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("ims authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }
