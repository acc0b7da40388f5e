// Package retry selects and configures retry strategies for network
// operations.
//
// A strategy decides, per failed attempt, whether to retry and how long to
// wait. Four variants exist, selected by Mode:
//
//   - standard: capped attempts, jittered exponential backoff and a retry
//     token quota
//   - legacy: one extra attempt and a heavier backoff tier for throttling
//   - adaptive_v2: standard behavior plus a client-side send-rate limiter
//   - adaptive: the older adaptive behavior, served through an adapter over
//     the legacy rate-limited Policy object
//
// Every variant carries the same generic condition set: a failure is
// retried when it is inherently retryable, carries a retryable status code,
// is caused by clock skew, is classified as throttling, or matches one of
// the known retryable sentinel causes. Configure attaches that set to any
// builder implementing the Builder capability interface.
//
// Basic usage:
//
//	// Strategy for the mode configured in the environment
//	s := retry.DefaultStrategy()
//	err := retry.Do(ctx, s, func() error {
//		return client.Fetch(id)
//	})
//
//	// Explicit mode
//	s := retry.ForMode(retry.ModeAdaptiveV2)
//
//	// Custom strategy with the generic conditions merged in
//	b := retry.NewStandardBuilder()
//	b.WithBackoff(&retry.ConstantBackoff{Delay: time.Second})
//	retry.StrategyDefaults().ApplyDefaults(b)
//	s := b.Build()
//
// The RETRYKIT_MAX_ATTEMPTS environment variable overrides every variant's
// built-in attempt budget; RETRYKIT_RETRY_MODE selects the variant used by
// DefaultStrategy.
package retry
