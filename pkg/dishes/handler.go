package dishes

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/globetraiteurs/plats/pkg/defaults"
	apperrors "github.com/globetraiteurs/plats/pkg/errors"
	"github.com/globetraiteurs/plats/pkg/serializer"
	"github.com/globetraiteurs/plats/pkg/server"
)

const (
	paramSubmissionID = "submission_id"
	paramEnvelope     = "envelope"
)

// HandleGetPlats handles GET /api/get_plats?submission_id=ID. The bare dish
// list is returned unless envelope=true is set.
func (s *Service) HandleGetPlats(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	submissionID := strings.TrimSpace(q.Get(paramSubmissionID))
	if submissionID == "" {
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeMissingParameter,
			"missing submission_id", false, map[string]any{"param": paramSubmissionID})
		return
	}

	envelope := false
	if v := q.Get(paramEnvelope); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
				"invalid envelope parameter", false, map[string]any{"param": paramEnvelope, "value": v})
			return
		}
		envelope = b
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result, err := s.Plats(ctx, submissionID)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to get dishes", nil)
		return
	}

	if envelope {
		serializer.RespondJSON(w, http.StatusOK, result)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, result.Plats)
}

// HandleCreateRecommendations handles POST /recommendations/create. Mount it
// behind server.BearerAuth.
func (s *Service) HandleCreateRecommendations(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req RecommendRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid request body", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result, err := s.Recommend(ctx, req)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to create recommendation", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, result)
}

// decodeJSONBody reads a size-capped JSON body into v. Unknown fields are
// ignored.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, defaults.MaxRequestBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest, "request body too large", err,
				map[string]any{"limit": maxErr.Limit}).WithReason(ReasonInvalidJSON)
		}
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid JSON body", err).
			WithReason(ReasonInvalidJSON)
	}
	return nil
}
