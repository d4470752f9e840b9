package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrMissingCredential is an operator fault, not a caller fault: a
	// provider call was attempted without its configured credential.
	ErrMissingCredential = errors.New("missing provider credential")
	// ErrRateLimited marks a provider 429 so callers can back off.
	ErrRateLimited           = errors.New("rate limited by provider")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// UpstreamError carries a provider's non-2xx status and message through to
// the boundary, where the message is passed along to the caller.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream status=%d", e.Status)
	}
	return fmt.Sprintf("upstream status=%d: %s", e.Status, e.Message)
}
