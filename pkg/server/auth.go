package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/globetraiteurs/plats/pkg/errors"
)

const (
	// ReasonMissingBearer is reported when no bearer credential was sent.
	ReasonMissingBearer = "missing_bearer"
	// ReasonBadBearer is reported when the bearer credential does not match.
	ReasonBadBearer = "bad_bearer"
)

// BearerAuth rejects requests whose Authorization header does not carry
// "Bearer <token>" before next sees them. The comparison is constant time.
func BearerAuth(token string, next http.HandlerFunc) http.HandlerFunc {
	expected := []byte(token)
	return func(w http.ResponseWriter, r *http.Request) {
		got, ok := bearerToken(r)
		if !ok {
			authFailures.WithLabelValues(ReasonMissingBearer).Inc()
			writeUnauthorized(w, r, ReasonMissingBearer)
			return
		}
		if len(expected) == 0 || subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
			authFailures.WithLabelValues(ReasonBadBearer).Inc()
			writeUnauthorized(w, r, ReasonBadBearer)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// bearerToken extracts the credential from the Authorization header. The
// scheme is matched case-insensitively; an empty credential after a valid
// scheme is reported as present so it fails the comparison.
func bearerToken(r *http.Request) (string, bool) {
	scheme, credential, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return strings.TrimSpace(credential), true
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="plats"`)
	WriteErrorFromErr(w, r, errors.New(errors.ErrCodeUnauthorized, "Unauthorized").WithReason(reason), "", nil)
}
