package moderation

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the moderation services. Callers match with
// errors.Is; anything wrapping ErrPersistence means the underlying store call
// failed and the operation may be retried by the caller.
var (
	ErrNotAuthorized    = errors.New("not authorized")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyResolved  = errors.New("case already resolved")
	ErrInvalidReference = errors.New("invalid content reference")
	ErrPersistence      = errors.New("persistence failure")
)

// persistence wraps a store error so callers can match ErrPersistence while
// keeping the underlying driver error in the chain.
func persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrPersistence, err)
}
