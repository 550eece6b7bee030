// Package logging provides structured logging for maptools.
//
// This package wraps a zap logger with convenience functions for the logging
// patterns used throughout the tools: general leveled logging plus helpers
// for screen stack transitions and user-facing notices.
//
// # Log Levels
//
//   - Debug: every stack transition, wizard provider calls, mirror frames
//   - Info: map loads, saves, mirror clients connecting
//   - Warn: notices shown to the user (bad polygon, missing scenario)
//   - Error: startup failures
//
// # Configuration
//
// The terminal UI owns stdout, so logs go to a file:
//
//	if err := logging.Initialize("debug", "/tmp/maptools.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// When no level is given and MAPTOOLS_LOG_LEVEL is unset, logging is silent.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
