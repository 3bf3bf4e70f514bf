// Package gateway adapts the Verifier to the API Gateway custom authorizer
// event shape used by the Lambda runtime.
package gateway
