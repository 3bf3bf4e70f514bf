package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors for credential verification.
var (
	ErrMissingCredential = errors.New("auth: missing credential")
	ErrInvalidScheme     = errors.New("auth: invalid authorization scheme")
	ErrSecretUnavailable = errors.New("auth: signing secret unavailable")
	ErrTokenInvalid      = errors.New("auth: token invalid")

	// ErrMissingSubject is the cause of a TokenInvalid failure for a valid
	// token without a subject claim.
	ErrMissingSubject = errors.New("auth: token has no subject")
)

// Kind classifies a verification failure.
type Kind string

const (
	KindMissingCredential Kind = "missing_credential"
	KindInvalidScheme     Kind = "invalid_scheme"
	KindSecretUnavailable Kind = "secret_unavailable"
	KindTokenInvalid      Kind = "token_invalid"
)

func (k Kind) sentinel() error {
	switch k {
	case KindMissingCredential:
		return ErrMissingCredential
	case KindInvalidScheme:
		return ErrInvalidScheme
	case KindSecretUnavailable:
		return ErrSecretUnavailable
	case KindTokenInvalid:
		return ErrTokenInvalid
	default:
		return nil
	}
}

// Error is a verification failure tagged with its Kind.
//
// errors.Is matches the Kind's sentinel (ErrTokenInvalid and so on) as well
// as anything in the wrapped cause chain.
type Error struct {
	Kind Kind
	Err  error
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Err == nil {
		return msg
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
