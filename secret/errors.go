package secret

import (
	"errors"
	"fmt"
)

// Sentinel errors for secret resolution.
var (
	// ErrFetch marks any failure to obtain a usable secret from the store.
	ErrFetch = errors.New("secret: fetch failed")

	// ErrNotFound indicates the store has no record for the reference.
	ErrNotFound = errors.New("secret: not found")

	// ErrMalformedRecord indicates the record is not a JSON object.
	ErrMalformedRecord = errors.New("secret: record is not a JSON object")

	// ErrFieldNotFound indicates the record lacks the configured field.
	ErrFieldNotFound = errors.New("secret: field not found in record")

	// ErrEmptySecret indicates the configured field holds an empty or non-string value.
	ErrEmptySecret = errors.New("secret: field is empty or not a string")

	// ErrMissingEnv indicates a configuration value references an unset variable.
	ErrMissingEnv = errors.New("secret: missing required environment variables")
)

// FetchError reports a failed secret fetch for one secret identifier.
// It matches ErrFetch with errors.Is and unwraps to the underlying cause.
type FetchError struct {
	SecretID string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("secret: fetch %q: %v", e.SecretID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFetch.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
