package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/globetraiteurs/plats/pkg/errors"
	"github.com/globetraiteurs/plats/pkg/serializer"
)

// WriteError writes a JSON ErrorResponse with the given status and code.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code errors.ErrorCode, message string, retryable bool, details map[string]any) {

	writeErrorResponse(w, r, statusCode, ErrorResponse{
		Error:     message,
		Code:      string(code),
		Details:   details,
		Retryable: retryable,
	})
}

// WriteErrorFromErr maps err to an HTTP status and writes it. StructuredError
// values keep their code, message, reason and context; context deadline
// errors become TIMEOUT; anything else is reported as INTERNAL with
// fallbackMsg.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string, details map[string]any) {
	if fallbackMsg == "" {
		fallbackMsg = "Internal server error"
	}

	var se *errors.StructuredError
	switch {
	case stderrors.As(err, &se):
		msg := se.Message
		if msg == "" {
			msg = fallbackMsg
		}
		merged := mergeDetails(se.Context, details)
		if se.Cause != nil {
			merged = mergeDetails(merged, map[string]any{"cause": se.Cause.Error()})
		}
		writeErrorResponse(w, r, HTTPStatusFromCode(se.Code), ErrorResponse{
			Error:     msg,
			Detail:    se.Reason,
			Code:      string(se.Code),
			Details:   merged,
			Retryable: retryableFromCode(se.Code),
		})
	case stderrors.Is(err, context.DeadlineExceeded):
		writeErrorResponse(w, r, http.StatusGatewayTimeout, ErrorResponse{
			Error:     "Request timed out",
			Code:      string(errors.ErrCodeTimeout),
			Details:   details,
			Retryable: true,
		})
	default:
		merged := details
		if err != nil {
			merged = mergeDetails(details, map[string]any{"cause": err.Error()})
		}
		writeErrorResponse(w, r, http.StatusInternalServerError, ErrorResponse{
			Error:     fallbackMsg,
			Code:      string(errors.ErrCodeInternal),
			Details:   merged,
			Retryable: true,
		})
	}
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, resp ErrorResponse) {
	resp.RequestID = RequestID(r.Context())
	if resp.RequestID == "" {
		resp.RequestID = uuid.New().String()
	}
	resp.Timestamp = time.Now().UTC()
	serializer.RespondJSON(w, statusCode, resp)
}

// HTTPStatusFromCode maps an error code to its HTTP status.
func HTTPStatusFromCode(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeMissingParameter, errors.ErrCodeInvalidRequest, errors.ErrCodeInsufficientResults:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case errors.ErrCodeInvalidSubmissionState:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case errors.ErrCodeUpstream:
		return http.StatusBadGateway
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code errors.ErrorCode) bool {
	switch code {
	case errors.ErrCodeUpstream, errors.ErrCodeTimeout, errors.ErrCodeUnavailable,
		errors.ErrCodeRateLimitExceeded, errors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map with b's entries overriding a's.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
