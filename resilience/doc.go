// Package resilience provides retry with backoff for calls to external
// collaborators such as the secret store.
//
// A Retry with MaxAttempts of 1 runs the operation exactly once, which is the
// default for secret fetches: the platform invoking the authorizer owns any
// timeout, and retries only help for transient store errors.
//
//	r := resilience.NewRetry(resilience.RetryConfig{MaxAttempts: 3})
//	value, err := resilience.Do(ctx, r, func(ctx context.Context) (string, error) {
//	    return provider.Resolve(ctx, ref)
//	})
package resilience
