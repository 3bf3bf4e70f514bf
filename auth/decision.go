package auth

// Policy document constants required by API Gateway.
const (
	PolicyVersion = "2012-10-17"
	ActionInvoke  = "execute-api:Invoke"
	ResourceAll   = "*"

	// DenyPrincipal is the placeholder principal of every Deny decision.
	DenyPrincipal = "user"
)

// Effect is the outcome of a policy statement.
type Effect string

const (
	EffectAllow Effect = "Allow"
	EffectDeny  Effect = "Deny"
)

// Decision is the authorizer response consumed by API Gateway.
// Field order and names match the gateway's wire format.
type Decision struct {
	PrincipalID    string         `json:"principalId"`
	PolicyDocument PolicyDocument `json:"policyDocument"`
}

// PolicyDocument is an IAM policy with a single statement.
type PolicyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Statement is one IAM policy statement.
type Statement struct {
	Action   string `json:"Action"`
	Effect   Effect `json:"Effect"`
	Resource string `json:"Resource"`
}

func newDecision(principal string, effect Effect) Decision {
	return Decision{
		PrincipalID: principal,
		PolicyDocument: PolicyDocument{
			Version: PolicyVersion,
			Statement: []Statement{{
				Action:   ActionInvoke,
				Effect:   effect,
				Resource: ResourceAll,
			}},
		},
	}
}

// Allow returns an Allow decision for principal.
func Allow(principal string) Decision {
	return newDecision(principal, EffectAllow)
}

// Deny returns the Deny decision. It never carries caller-derived data.
func Deny() Decision {
	return newDecision(DenyPrincipal, EffectDeny)
}

// Effect returns the effect of the decision's statement.
func (d Decision) Effect() Effect {
	if len(d.PolicyDocument.Statement) == 0 {
		return EffectDeny
	}
	return d.PolicyDocument.Statement[0].Effect
}

// Allowed reports whether the decision allows the call.
func (d Decision) Allowed() bool {
	return d.Effect() == EffectAllow
}
