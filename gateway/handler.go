package gateway

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"github.com/jonwraymond/gatekeeper/auth"
	"github.com/jonwraymond/gatekeeper/observe"
)

// Authorizer turns a credential into a policy decision.
type Authorizer interface {
	Authorize(ctx context.Context, credential string) auth.Decision
}

// Handler handles TOKEN authorizer events.
type Handler struct {
	authorizer Authorizer
	logger     observe.Logger
}

// NewHandler creates a Handler. A nil logger discards output.
func NewHandler(authorizer Authorizer, logger observe.Logger) *Handler {
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &Handler{
		authorizer: authorizer,
		logger:     logger.With(observe.String("component", "gateway")),
	}
}

// Handle authorizes one invocation. The error is always nil: a rejected
// credential is reported to the gateway as a Deny policy, not as a failure.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayCustomAuthorizerRequest) (auth.Decision, error) {
	info := auth.RequestInfo{
		RequestID: requestID(ctx),
		MethodARN: req.MethodArn,
	}
	ctx = auth.WithRequestInfo(ctx, info)

	h.logger.Debug(ctx, "authorizer invoked",
		observe.String("request_id", info.RequestID),
		observe.String("method_arn", info.MethodARN),
		observe.String("type", req.Type),
	)

	return h.authorizer.Authorize(ctx, req.AuthorizationToken), nil
}

func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}
