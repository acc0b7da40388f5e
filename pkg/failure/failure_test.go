package failure

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "transport failure without status code",
			err:      New(KindNetwork, "connection refused"),
			expected: "network error: connection refused",
		},
		{
			name:     "service failure with status code",
			err:      NewService(KindServer, 503, "service unavailable"),
			expected: "server error (status 503): service unavailable",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.err.Error(); got != test.expected {
				t.Errorf("Error() = %q, want %q", got, test.expected)
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("read tcp: broken pipe")
	err := Wrap(KindNetwork, "request failed", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped failure should match its cause via errors.Is")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		kind      Kind
		retryable bool
	}{
		{KindNetwork, true},
		{KindServer, true},
		{KindThrottling, true},
		{KindAuth, false},
		{KindNotFound, false},
		{KindValidation, false},
		{KindUnknown, false},
	}

	for _, test := range tests {
		t.Run(string(test.kind), func(t *testing.T) {
			if got := IsRetryable(New(test.kind, "boom")); got != test.retryable {
				t.Errorf("IsRetryable(%s) = %v, want %v", test.kind, got, test.retryable)
			}
		})
	}
}

func TestIsRetryableUnclassified(t *testing.T) {
	if IsRetryable(errors.New("plain error")) {
		t.Error("plain errors are not classifiable and must not be retryable")
	}
	if IsRetryable(nil) {
		t.Error("nil is not retryable")
	}
}

func TestIsRetryableThroughWrapping(t *testing.T) {
	inner := NewService(KindServer, 500, "internal error")
	outer := fmt.Errorf("operation failed: %w", inner)

	if !IsRetryable(outer) {
		t.Error("classification should see through fmt.Errorf wrapping")
	}
}

func TestIsThrottling(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		throttling bool
	}{
		{"throttling kind", New(KindThrottling, "slow down"), true},
		{"status 429", NewService(KindServer, 429, "too many requests"), true},
		{"status 503", NewService(KindServer, 503, "unavailable"), true},
		{"status 500", NewService(KindServer, 500, "internal"), false},
		{"network kind", New(KindNetwork, "reset"), false},
		{"unclassified", errors.New("nope"), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsThrottling(test.err); got != test.throttling {
				t.Errorf("IsThrottling = %v, want %v", got, test.throttling)
			}
		})
	}
}

func TestIsClockSkew(t *testing.T) {
	if !IsClockSkew(New(KindClockSkew, "signature expired")) {
		t.Error("clock skew kind must classify as clock skew")
	}
	// Status code must not influence the classification.
	if !IsClockSkew(NewService(KindClockSkew, 403, "signature expired")) {
		t.Error("clock skew classification is independent of status code")
	}
	if IsClockSkew(NewService(KindServer, 403, "forbidden")) {
		t.Error("non-skew kinds must not classify as clock skew")
	}
}

func TestStatusCode(t *testing.T) {
	if _, ok := StatusCode(New(KindNetwork, "reset")); ok {
		t.Error("transport failures carry no status code")
	}

	code, ok := StatusCode(NewService(KindServer, 502, "bad gateway"))
	if !ok || code != 502 {
		t.Errorf("StatusCode = (%d, %v), want (502, true)", code, ok)
	}

	if _, ok := StatusCode(errors.New("plain")); ok {
		t.Error("unclassified errors carry no status code")
	}
}
