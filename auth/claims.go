package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the verified claims of a token.
type Claims struct {
	Subject   string
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	IssuedAt  time.Time

	// Raw holds every claim as decoded from the token.
	Raw map[string]any
}

func claimsFromMap(m jwt.MapClaims) (*Claims, error) {
	c := &Claims{Raw: make(map[string]any, len(m))}
	for k, v := range m {
		c.Raw[k] = v
	}

	var err error
	if c.Subject, err = m.GetSubject(); err != nil {
		return nil, err
	}
	if c.Issuer, err = m.GetIssuer(); err != nil {
		return nil, err
	}
	aud, err := m.GetAudience()
	if err != nil {
		return nil, err
	}
	c.Audience = aud

	exp, err := m.GetExpirationTime()
	if err != nil {
		return nil, err
	}
	if exp != nil {
		c.ExpiresAt = exp.Time
	}

	iat, err := m.GetIssuedAt()
	if err != nil {
		return nil, err
	}
	if iat != nil {
		c.IssuedAt = iat.Time
	}

	if c.Subject == "" {
		return nil, ErrMissingSubject
	}
	return c, nil
}
