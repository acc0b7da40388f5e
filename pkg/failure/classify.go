package failure

import "errors"

// RetryableStatusCodes is the fixed set of service status codes that are
// worth retrying regardless of how the failure is otherwise classified
var RetryableStatusCodes = map[int]bool{
	500: true,
	502: true,
	503: true,
	504: true,
	509: true,
}

// ThrottlingStatusCodes is the fixed set of status codes a service uses to
// signal that the caller exceeded its allowed request rate
var ThrottlingStatusCodes = map[int]bool{
	429: true,
	503: true,
}

// IsRetryable reports whether the failure is inherently retryable: a
// transient transport or server-side condition that may succeed on a fresh
// attempt. Unclassifiable errors are not retryable.
func IsRetryable(err error) bool {
	var f *Error
	if !errors.As(err, &f) {
		return false
	}
	switch f.Kind {
	case KindNetwork, KindServer, KindThrottling:
		return true
	case KindAuth, KindNotFound, KindValidation:
		return false
	default:
		return false
	}
}

// IsThrottling reports whether the failure indicates the caller was
// rate limited by the service
func IsThrottling(err error) bool {
	var f *Error
	if !errors.As(err, &f) {
		return false
	}
	if f.Kind == KindThrottling {
		return true
	}
	return f.StatusCode != 0 && ThrottlingStatusCodes[f.StatusCode]
}

// IsClockSkew reports whether the failure was caused by client/server time
// divergence. These are retried because the corrected clock on the next
// attempt resolves them.
func IsClockSkew(err error) bool {
	var f *Error
	if !errors.As(err, &f) {
		return false
	}
	return f.Kind == KindClockSkew
}

// StatusCode returns the service-reported status code carried by the
// failure, if any
func StatusCode(err error) (int, bool) {
	var f *Error
	if !errors.As(err, &f) {
		return 0, false
	}
	if f.StatusCode == 0 {
		return 0, false
	}
	return f.StatusCode, true
}
