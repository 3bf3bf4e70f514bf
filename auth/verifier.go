package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jonwraymond/gatekeeper/observe"
)

// DefaultAlgorithm is the signing method accepted when none is configured.
const DefaultAlgorithm = "HS256"

// SupportedAlgorithms lists the signing methods a Verifier may be pinned to.
// All are symmetric, since the signing secret is shared.
var SupportedAlgorithms = []string{"HS256", "HS384", "HS512"}

var errNilSource = errors.New("auth: nil secret source")

// SecretSource supplies the current signing secret.
type SecretSource interface {
	GetSecret(ctx context.Context) (string, error)
}

// VerifierConfig configures a Verifier.
type VerifierConfig struct {
	// Algorithms lists the accepted signing methods.
	// Default: ["HS256"]
	Algorithms []string

	// RejectExtraSegments fails credentials with anything after the token.
	// Default: false (trailing segments are ignored)
	RejectExtraSegments bool

	// Leeway is the clock skew tolerated on exp, nbf and iat.
	Leeway time.Duration

	// Issuer, when set, must match the iss claim.
	Issuer string

	// Audience, when set, must be present in the aud claim.
	Audience string
}

// Validate checks the configuration.
func (c VerifierConfig) Validate() error {
	for _, alg := range c.Algorithms {
		if !slices.Contains(SupportedAlgorithms, alg) {
			return fmt.Errorf("auth: unsupported signing algorithm %q", alg)
		}
	}
	if c.Leeway < 0 {
		return fmt.Errorf("auth: negative leeway %s", c.Leeway)
	}
	return nil
}

func (c VerifierConfig) algorithms() []string {
	if len(c.Algorithms) == 0 {
		return []string{DefaultAlgorithm}
	}
	return c.Algorithms
}

// Verifier validates bearer credentials and produces policy decisions.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: Verify returns *Error values only; Authorize never fails.
// - Ordering: the secret is resolved only after the credential passes the
// presence and scheme checks.
type Verifier struct {
	config  VerifierConfig
	secrets SecretSource
	parser  *jwt.Parser
	inst    observe.Instruments
	logger  observe.Logger
}

// NewVerifier creates a Verifier that resolves signing secrets from secrets.
func NewVerifier(config VerifierConfig, secrets SecretSource, inst observe.Instruments) (*Verifier, error) {
	if secrets == nil {
		return nil, errNilSource
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(config.algorithms()),
		jwt.WithLeeway(config.Leeway),
	}
	if config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(config.Issuer))
	}
	if config.Audience != "" {
		opts = append(opts, jwt.WithAudience(config.Audience))
	}

	inst = inst.Normalize()
	return &Verifier{
		config:  config,
		secrets: secrets,
		parser:  jwt.NewParser(opts...),
		inst:    inst,
		logger:  inst.Logger.With(observe.String("component", "verifier")),
	}, nil
}

// Verify checks credential and returns the verified claims.
func (v *Verifier) Verify(ctx context.Context, credential string) (*Claims, error) {
	token, err := ParseBearer(credential, v.config.RejectExtraSegments)
	if err != nil {
		return nil, err
	}

	key, err := v.secrets.GetSecret(ctx)
	if err != nil {
		return nil, newError(KindSecretUnavailable, err)
	}

	claims, err := v.verifyToken(token, key)
	if err != nil {
		return nil, newError(KindTokenInvalid, err)
	}
	return claims, nil
}

func (v *Verifier) verifyToken(token, key string) (*Claims, error) {
	parsed, err := v.parser.Parse(token, func(*jwt.Token) (any, error) {
		return []byte(key), nil
	})
	if err != nil {
		return nil, err
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}
	return claimsFromMap(mc)
}

// Authorize verifies credential and returns the resulting decision. Every
// failure, including a panic below it, becomes Deny.
func (v *Verifier) Authorize(ctx context.Context, credential string) (decision Decision) {
	ctx, span := v.inst.Tracer.Start(ctx, observe.SpanAuthorize,
		attribute.Bool("auth.credential_present", credential != ""),
	)

	logger := v.logger
	if info, ok := RequestInfoFromContext(ctx); ok {
		logger = logger.With(
			observe.String("request_id", info.RequestID),
			observe.String("method_arn", info.MethodARN),
		)
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("auth: verification panicked: %v", r)
			v.inst.Tracer.End(span, err)
			v.inst.Metrics.RecordDecision(ctx, string(EffectDeny), "internal")
			logger.Error(ctx, "authorization denied", observe.String("reason", "internal"), observe.Err(err))
			decision = Deny()
		}
	}()

	claims, err := v.Verify(ctx, credential)
	if err != nil {
		kind := KindOf(err)
		span.SetAttributes(
			attribute.String("auth.effect", string(EffectDeny)),
			attribute.String("auth.reason", string(kind)),
		)
		v.inst.Tracer.End(span, err)
		v.inst.Metrics.RecordDecision(ctx, string(EffectDeny), string(kind))
		logger.Warn(ctx, "authorization denied",
			observe.String("reason", string(kind)),
			observe.Err(err),
		)
		return Deny()
	}

	span.SetAttributes(attribute.String("auth.effect", string(EffectAllow)))
	v.inst.Tracer.End(span, nil)
	v.inst.Metrics.RecordDecision(ctx, string(EffectAllow), "")
	fields := []observe.Field{observe.String("principal", claims.Subject)}
	if !claims.ExpiresAt.IsZero() {
		fields = append(fields, observe.Field{Key: "expires_at", Value: claims.ExpiresAt})
	}
	logger.Info(ctx, "authorization granted", fields...)
	return Allow(claims.Subject)
}
