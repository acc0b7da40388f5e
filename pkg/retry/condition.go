package retry

import (
	"errors"

	"retrykit/pkg/failure"
)

// Condition determines whether a failed operation should be retried.
// Conditions are pure functions: they never mutate the error and never
// return an error of their own. An unclassifiable failure answers false.
type Condition func(error) bool

// anyOf composes conditions with short-circuit OR: the composed condition
// answers true as soon as any member does
func anyOf(conds ...Condition) Condition {
	return func(err error) bool {
		for _, cond := range conds {
			if cond != nil && cond(err) {
				return true
			}
		}
		return false
	}
}

// matchesCause builds a condition that answers true when the failure or any
// of its wrapped causes matches the target sentinel
func matchesCause(target error) Condition {
	return func(err error) bool {
		return errors.Is(err, target)
	}
}

// retryOnRetryableError retries failures the taxonomy classifies as
// inherently retryable: connection resets, transient server conditions and
// other I/O-layer trouble
func retryOnRetryableError(err error) bool {
	return failure.IsRetryable(err)
}

// retryOnStatusCodes retries service failures whose status code is in the
// fixed retryable set. Failures without a service-reported code never match.
func retryOnStatusCodes(err error) bool {
	code, ok := failure.StatusCode(err)
	if !ok {
		return false
	}
	return failure.RetryableStatusCodes[code]
}

// retryOnClockSkew retries failures caused by client/server time divergence
func retryOnClockSkew(err error) bool {
	return failure.IsClockSkew(err)
}

// retryOnThrottling retries failures the service classified as rate
// limiting. The same function doubles as the throttling classifier handed
// to builders so that backoff logic can pick the throttling delay tier.
func retryOnThrottling(err error) bool {
	return failure.IsThrottling(err)
}

// treatAsThrottling is the classifier registered on every builder. It is an
// alias of retryOnThrottling: one underlying function, two registration
// points.
func treatAsThrottling(err error) bool {
	return retryOnThrottling(err)
}

// genericConditions returns the canonical ordered set of retry conditions
// applied to every strategy variant
func genericConditions() []Condition {
	return []Condition{
		retryOnRetryableError,
		retryOnStatusCodes,
		retryOnClockSkew,
		retryOnThrottling,
	}
}

// DefaultRetryCondition returns the composed generic condition set: the four
// canonical predicates plus the sentinel cause matches. This is what a
// strategy evaluates when deciding "should this failure be retried at all".
func DefaultRetryCondition() Condition {
	conds := genericConditions()
	for _, target := range failure.RetryableErrors {
		conds = append(conds, matchesCause(target))
	}
	return anyOf(conds...)
}
