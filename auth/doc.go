// Package auth turns an inbound bearer credential into an API Gateway policy
// decision.
//
// Verification is a linear sequence: presence check, scheme check, token
// extraction, secret resolution, signature and claims verification. Each
// failing step yields an *Error tagged with a Kind. Verifier.Authorize is the
// single point where every failure becomes a Deny decision, so callers always
// receive a well-formed Decision and never an error.
//
// Accepted signing methods are pinned by configuration (HS256 by default);
// a token cannot select its own algorithm.
package auth
