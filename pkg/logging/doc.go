// Package logging provides structured logging utilities for the plats service.
//
// # Overview
//
// This package wraps the standard library slog package with service defaults
// so the API server and the CLI log the same way.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Output Format
//
// LOG_FORMAT selects the handler:
//   - json (default): one JSON object per line on stderr
//   - text: colored, human-readable lines (github.com/lmittmann/tint)
//
// JSON example:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "server started",
//	    "module": "platsd",
//	    "version": "v1.0.0",
//	    "port": 8080
//	}
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("platsd", version)
//	    slog.Info("starting", "port", 8080)
//	}
package logging
