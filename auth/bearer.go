package auth

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Scheme is the accepted authorization scheme, matched case-insensitively.
	Scheme = "bearer"

	// Separator splits the scheme from the token.
	Separator = " "
)

var errEmptyToken = errors.New("empty bearer token")

// ParseBearer extracts the token from a "Bearer <token>" credential.
//
// The scheme is matched case-insensitively and must be followed by a single
// space. The credential is split on spaces and the segment right after the
// scheme is the token. Later segments are ignored unless rejectExtraSegments
// is set, in which case they are an InvalidScheme failure.
func ParseBearer(credential string, rejectExtraSegments bool) (string, error) {
	if credential == "" {
		return "", newError(KindMissingCredential, nil)
	}

	prefix := Scheme + Separator
	if len(credential) < len(prefix) || !strings.EqualFold(credential[:len(prefix)], prefix) {
		return "", newError(KindInvalidScheme, nil)
	}

	segments := strings.Split(credential, Separator)
	token := segments[1]
	if token == "" {
		return "", newError(KindMissingCredential, errEmptyToken)
	}

	if rejectExtraSegments && len(segments) > 2 {
		return "", newError(KindInvalidScheme, fmt.Errorf("%d unexpected segments after token", len(segments)-2))
	}

	return token, nil
}
