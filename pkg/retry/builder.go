package retry

// Builder is the minimal capability any retry strategy builder must expose
// to receive the generic condition set. All native builders in this package
// implement it; custom builders may too.
type Builder interface {
	// RetryOnError registers an additional retry condition. Conditions
	// are evaluated in registration order with OR semantics.
	RetryOnError(cond Condition)
	// RetryOnErrorIs registers a retry rule matching the failure or any
	// of its wrapped causes against the target sentinel.
	RetryOnErrorIs(target error)
	// TreatAsThrottling registers the classifier used to pick the
	// throttling delay tier for a failure.
	TreatAsThrottling(cond Condition)
	// SetMaxAttempts replaces the builder's attempt budget.
	SetMaxAttempts(n int)
}

// DefaultsAware is an optional capability a builder may implement to record
// which named defaults bundles were already applied to it. The marker keeps
// repeated bundle application from duplicating the generic condition set.
type DefaultsAware interface {
	MarkDefaultsApplied(name string)
	DefaultsApplied(name string) bool
}

// baseBuilder carries the state every native strategy builder shares. The
// concrete builders embed it and add their variant-specific knobs.
type baseBuilder struct {
	conditions  []Condition
	throttling  Condition
	maxAttempts int
	defaults    map[string]bool
}

func newBaseBuilder(maxAttempts int) baseBuilder {
	return baseBuilder{
		throttling:  func(error) bool { return false },
		maxAttempts: maxAttempts,
		defaults:    make(map[string]bool),
	}
}

func (b *baseBuilder) RetryOnError(cond Condition) {
	if cond == nil {
		return
	}
	b.conditions = append(b.conditions, cond)
}

func (b *baseBuilder) RetryOnErrorIs(target error) {
	if target == nil {
		return
	}
	b.conditions = append(b.conditions, matchesCause(target))
}

func (b *baseBuilder) TreatAsThrottling(cond Condition) {
	if cond == nil {
		return
	}
	b.throttling = cond
}

func (b *baseBuilder) SetMaxAttempts(n int) {
	if n > 0 {
		b.maxAttempts = n
	}
}

func (b *baseBuilder) MarkDefaultsApplied(name string) {
	b.defaults[name] = true
}

func (b *baseBuilder) DefaultsApplied(name string) bool {
	return b.defaults[name]
}

// retryCondition composes everything registered so far into one condition
func (b *baseBuilder) retryCondition() Condition {
	conds := make([]Condition, len(b.conditions))
	copy(conds, b.conditions)
	return anyOf(conds...)
}
