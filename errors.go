package qalampress

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no post matches the given id or slug.
var ErrNotFound = errors.New("post not found")

// ErrUnauthorized is returned when the admin gate rejects a credential.
var ErrUnauthorized = errors.New("invalid admin credential")

// ValidationError reports missing or malformed required input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UploadError wraps a media backend failure so handlers can map it to a
// gateway error instead of a generic 500.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("media upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
