package retry

import (
	"fmt"
	"strings"

	"retrykit/pkg/config"
)

// Mode selects which retry strategy variant a client uses
type Mode string

const (
	// ModeStandard is the default: capped attempts, jittered exponential
	// backoff and a retry token quota.
	ModeStandard Mode = "standard"
	// ModeAdaptive is the older adaptive behavior, kept for backwards
	// compatibility. It is served through an adapter over the legacy
	// rate-limited policy object.
	ModeAdaptive Mode = "adaptive"
	// ModeAdaptiveV2 is the current adaptive behavior: standard retries
	// plus a client-side send-rate limiter.
	ModeAdaptiveV2 Mode = "adaptive_v2"
	// ModeLegacy mirrors the pre-standard behavior: one more attempt and a
	// separate, heavier backoff tier for throttling.
	ModeLegacy Mode = "legacy"
)

// ParseMode converts a string to a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeStandard:
		return ModeStandard, nil
	case ModeAdaptive:
		return ModeAdaptive, nil
	case ModeAdaptiveV2:
		return ModeAdaptiveV2, nil
	case ModeLegacy:
		return ModeLegacy, nil
	default:
		return "", fmt.Errorf("unknown retry mode: %q", s)
	}
}

// DefaultMode resolves the retry mode from process-wide configuration.
// An unset or unparseable setting falls back to ModeStandard.
func DefaultMode() Mode {
	setting := config.RetryModeSetting()
	if setting == "" {
		return ModeStandard
	}
	mode, err := ParseMode(setting)
	if err != nil {
		return ModeStandard
	}
	return mode
}
