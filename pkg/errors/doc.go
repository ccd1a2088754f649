// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Every failure a request can hit maps to exactly one ErrorCode, which the
// server package translates into an HTTP status:
//
//	MISSING_PARAMETER, INVALID_REQUEST, INSUFFICIENT_RESULTS -> 400
//	UNAUTHORIZED                                              -> 401
//	NOT_FOUND                                                 -> 404
//	INVALID_SUBMISSION_STATE                                  -> 422
//	UPSTREAM_ERROR                                            -> 502
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUpstream,
//	    "Airtable error (Tally)",
//	    cause,
//	    map[string]any{
//	        "table":  "Tally",
//	        "status": 503,
//	    },
//	)
package errors
