package retry

import (
	"fmt"

	"retrykit/pkg/config"
	"retrykit/pkg/failure"
	"retrykit/pkg/ratelimit"
)

// DefaultsName identifies the library's defaults bundle on builders.
const DefaultsName = "sdk"

// Defaults is a named, idempotently-applicable bundle of default retry
// conditions. It carries no mutable state; the process-wide instance
// returned by StrategyDefaults is safe to share across goroutines.
type Defaults struct{}

// Name returns the stable bundle identifier
func (Defaults) Name() string {
	return DefaultsName
}

// ApplyDefaults merges the generic condition set into the builder. When the
// builder records applied bundles and this one is already marked, the call
// is a no-op, so conditions are never duplicated through the bundle path.
func (d Defaults) ApplyDefaults(b Builder) {
	if aware, ok := b.(DefaultsAware); ok && aware.DefaultsApplied(d.Name()) {
		return
	}
	ConfigureStrategy(b)
	markDefaultsApplied(b)
}

var strategyDefaults = Defaults{}

// StrategyDefaults returns the process-wide defaults bundle
func StrategyDefaults() Defaults {
	return strategyDefaults
}

// DefaultStrategy returns the fully configured strategy for the retry mode
// resolved from process configuration
func DefaultStrategy() Strategy {
	return ForMode(DefaultMode())
}

// ForMode returns the fully configured strategy for the given mode. The
// mode enumeration is closed: an unrecognized value is a programming error
// and panics rather than silently picking a default.
func ForMode(mode Mode) Strategy {
	switch mode {
	case ModeStandard:
		return StandardStrategy()
	case ModeAdaptive:
		return adaptiveCompatStrategy()
	case ModeAdaptiveV2:
		return AdaptiveStrategy()
	case ModeLegacy:
		return LegacyStrategy()
	default:
		panic(fmt.Sprintf("retry: unknown retry mode %q", mode))
	}
}

// ModeOf returns the retry mode a strategy instance belongs to. Instances
// not produced by this package yield an error: a silent guess here would
// hide a missing arm when a new variant is added.
func ModeOf(s Strategy) (Mode, error) {
	switch s.(type) {
	case *Standard:
		return ModeStandard, nil
	case *Adaptive:
		return ModeAdaptiveV2, nil
	case *Legacy:
		return ModeLegacy, nil
	case *PolicyAdapter:
		return ModeAdaptive, nil
	default:
		return "", fmt.Errorf("unknown retry strategy type %T", s)
	}
}

// StandardStrategy returns a Standard strategy with the generic retry
// conditions applied
func StandardStrategy() *Standard {
	return StandardStrategyBuilder().Build()
}

// LegacyStrategy returns a Legacy strategy with the generic retry
// conditions applied
func LegacyStrategy() *Legacy {
	return LegacyStrategyBuilder().Build()
}

// AdaptiveStrategy returns an Adaptive strategy with the generic retry
// conditions applied
func AdaptiveStrategy() *Adaptive {
	return AdaptiveStrategyBuilder().Build()
}

// StandardStrategyBuilder returns a StandardBuilder preconfigured with the
// generic retry conditions, not yet finalized
func StandardStrategyBuilder() *StandardBuilder {
	return Configure(NewStandardBuilder())
}

// LegacyStrategyBuilder returns a LegacyBuilder preconfigured with the
// generic retry conditions, not yet finalized
func LegacyStrategyBuilder() *LegacyBuilder {
	return Configure(NewLegacyBuilder())
}

// AdaptiveStrategyBuilder returns an AdaptiveBuilder preconfigured with the
// generic retry conditions, not yet finalized
func AdaptiveStrategyBuilder() *AdaptiveBuilder {
	return Configure(NewAdaptiveBuilder())
}

// Configure decorates any builder with the generic retry conditions, the
// throttling classifier, the environment max-attempts override when one is
// present, and the defaults marker. It returns the same builder so callers
// can keep chaining variant-specific configuration.
func Configure[B Builder](b B) B {
	ConfigureStrategy(b)
	if maxAttempts, ok := config.MaxAttemptsOverride(); ok {
		b.SetMaxAttempts(maxAttempts)
	}
	markDefaultsApplied(b)
	return b
}

// ConfigureStrategy registers the generic condition set only: the four
// canonical predicates, the sentinel cause matches and the throttling
// classifier. No environment override, no defaults bookkeeping. Meant for
// merge flows that manage those concerns themselves.
func ConfigureStrategy(b Builder) Builder {
	for _, cond := range genericConditions() {
		b.RetryOnError(cond)
	}
	for _, target := range failure.RetryableErrors {
		b.RetryOnErrorIs(target)
	}
	b.TreatAsThrottling(treatAsThrottling)
	return b
}

// FromConfig builds the strategy a configuration describes: the configured
// mode with the configured backoff, attempt budget and rate limiting. The
// environment max-attempts override still wins over the configured budget.
// Unlike ForMode, a bad mode here is runtime input and yields an error.
func FromConfig(cfg *config.Config) (Strategy, error) {
	mode, err := ParseMode(cfg.Retry.Mode)
	if err != nil {
		return nil, err
	}

	backoff := &ExponentialBackoff{
		BaseDelay:    cfg.Retry.BaseDelay,
		MaxDelay:     cfg.Retry.MaxDelay,
		Multiplier:   cfg.Retry.Multiplier,
		JitterFactor: cfg.Retry.JitterFactor,
	}
	switch mode {
	case ModeStandard:
		b := NewStandardBuilder()
		b.WithBackoff(backoff)
		b.WithQuota(ratelimit.NewBucket(float64(cfg.RateLimit.TokenBucketSize)), cfg.RateLimit.RetryCost)
		b.SetMaxAttempts(cfg.Retry.MaxAttempts)
		return Configure(b).Build(), nil
	case ModeLegacy:
		b := NewLegacyBuilder()
		b.WithBackoff(backoff)
		b.SetMaxAttempts(cfg.Retry.MaxAttempts)
		return Configure(b).Build(), nil
	case ModeAdaptiveV2:
		b := NewAdaptiveBuilder()
		b.WithBackoff(backoff)
		b.WithLimiter(ratelimit.NewAdaptiveLimiterWith(
			cfg.RateLimit.MinFillRate, cfg.RateLimit.SmoothingFactor))
		b.SetMaxAttempts(cfg.Retry.MaxAttempts)
		return Configure(b).Build(), nil
	case ModeAdaptive:
		policy := RateLimitedPolicy()
		policy.MaxAttempts = cfg.Retry.MaxAttempts
		policy.Backoff = backoff
		if maxAttempts, ok := config.MaxAttemptsOverride(); ok {
			policy.MaxAttempts = maxAttempts
		}
		return NewPolicyAdapter(policy), nil
	default:
		return nil, fmt.Errorf("unknown retry mode: %q", mode)
	}
}

// adaptiveCompatStrategy implements the backwards-compatible adaptive mode
// through an adapter over the legacy rate-limited policy
func adaptiveCompatStrategy() Strategy {
	return NewPolicyAdapter(RateLimitedPolicy())
}

func markDefaultsApplied(b Builder) {
	if aware, ok := b.(DefaultsAware); ok {
		aware.MarkDefaultsApplied(DefaultsName)
	}
}
