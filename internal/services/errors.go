package services

import (
	"errors"
	"fmt"

	"github.com/diewo77/freelance-invoices/internal/models"
)

// ErrAuthenticationRequired is returned when an operation is attempted
// without a valid session.
var ErrAuthenticationRequired = errors.New("authentication required")

// ValidationError describes malformed or out-of-range input. It is always
// raised before any storage call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports that a referenced entity is absent.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

// RelationshipError reports a referential mismatch between entities, such as
// a client that belongs to a different freelancer.
type RelationshipError struct {
	Message string
}

func (e *RelationshipError) Error() string { return e.Message }

// ConstraintError wraps a uniqueness or foreign-key violation surfaced by
// the store with a human-readable message.
type ConstraintError struct {
	Message string
	Err     error
}

func (e *ConstraintError) Error() string { return e.Message }
func (e *ConstraintError) Unwrap() error { return e.Err }

// owns reports whether the record belongs to ownerID.
func owns(ownerID string, m models.Ownable) bool {
	return m.GetOwnerID() == ownerID
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
