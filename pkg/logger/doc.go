// Package logger provides a structured logging interface for the retry
// library.
//
// It wraps the zerolog library behind a small interface so that the retry
// executor and policies can log attempts without depending on a concrete
// logging backend. A TestLogger implementation records entries in memory
// for assertions in tests.
//
// Basic usage:
//
//	cfg := &config.LoggingConfig{Level: "info"}
//	if err := logger.Initialize(cfg); err != nil {
//		// handle error
//	}
//
//	log := logger.GetLogger().WithField("component", "retry")
//	log.Warn("retrying operation")
package logger
