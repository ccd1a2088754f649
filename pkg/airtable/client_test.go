package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/globetraiteurs/plats/pkg/errors"
)

const (
	testBase  = "appTEST"
	testToken = "patTEST"
)

type capturedRequest struct {
	path   string
	query  map[string]string
	auth   string
	agent  string
	method string
}

func newTestServer(t *testing.T, status int, body any) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{query: map[string]string{}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.EscapedPath()
		captured.auth = r.Header.Get("Authorization")
		captured.agent = r.Header.Get("User-Agent")
		captured.method = r.Method
		for k := range r.URL.Query() {
			captured.query[k] = r.URL.Query().Get(k)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		switch b := body.(type) {
		case string:
			_, _ = w.Write([]byte(b))
		default:
			_ = json.NewEncoder(w).Encode(b)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	c, err := New(srv.URL+"/v0", testBase, testToken, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", testBase, testToken)
	assert.Error(t, err)

	_, err = New("http://x", "", testToken)
	assert.Error(t, err)

	_, err = New("http://x", testBase, "")
	assert.Error(t, err)

	_, err = New("http://x", testBase, testToken, WithPageSize(0))
	assert.Error(t, err)

	_, err = New("http://x", testBase, testToken, WithPageSize(101))
	assert.Error(t, err)

	c, err := New("http://x/", testBase, testToken, WithPageSize(25))
	require.NoError(t, err)
	assert.Equal(t, 25, c.PageSize())
}

func TestFetchOne(t *testing.T) {
	srv, got := newTestServer(t, http.StatusOK, map[string]any{
		"records": []map[string]any{
			{"id": "rec1", "fields": map[string]any{"submission_id": "abc123", "culture": "Inde"}},
		},
	})
	c := newTestClient(t, srv, WithUserAgent("plats-test"))

	rec, err := c.FetchOne(context.Background(), "Tally", "{submission_id}='abc123'")
	require.NoError(t, err)

	assert.Equal(t, "rec1", rec.ID)
	culture, ok := rec.String("culture")
	assert.True(t, ok)
	assert.Equal(t, "Inde", culture)

	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/v0/appTEST/Tally", got.path)
	assert.Equal(t, "Bearer "+testToken, got.auth)
	assert.Equal(t, "plats-test", got.agent)
	assert.Equal(t, "{submission_id}='abc123'", got.query["filterByFormula"])
	assert.Equal(t, "1", got.query["maxRecords"])
	assert.NotContains(t, got.query, "offset")
}

func TestFetchOne_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, map[string]any{"records": []any{}})
	c := newTestClient(t, srv)

	_, err := c.FetchOne(context.Background(), "Tally", "{submission_id}='nope'")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))
}

func TestFetchMany_FirstPageOnly(t *testing.T) {
	srv, got := newTestServer(t, http.StatusOK, map[string]any{
		"records": []map[string]any{
			{"id": "rec1", "fields": map[string]any{"nom": "Dal"}},
			{"id": "rec2", "fields": map[string]any{"nom": "Naan"}},
		},
		"offset": "itrNEXT/rec2",
	})
	c := newTestClient(t, srv, WithPageSize(20))

	recs, err := c.FetchMany(context.Background(), "Plats", "{culture}='Inde'")
	require.NoError(t, err)

	assert.Len(t, recs, 2)
	assert.Equal(t, "20", got.query["pageSize"])
	assert.Equal(t, "{culture}='Inde'", got.query["filterByFormula"])
}

func TestFetchMany_EscapesTableName(t *testing.T) {
	srv, got := newTestServer(t, http.StatusOK, map[string]any{"records": []any{}})
	c := newTestClient(t, srv)

	_, err := c.FetchMany(context.Background(), "Plats du jour", "TRUE()")
	require.NoError(t, err)
	assert.Equal(t, "/v0/appTEST/Plats%20du%20jour", got.path)
}

func TestFetchByIDs(t *testing.T) {
	srv, got := newTestServer(t, http.StatusOK, map[string]any{
		"records": []map[string]any{
			{"id": "recA", "fields": map[string]any{"name": "Inde"}},
		},
	})
	c := newTestClient(t, srv)

	recs, err := c.FetchByIDs(context.Background(), "Cultures", []string{"recA", "recB"})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, "OR(RECORD_ID()='recA',RECORD_ID()='recB')", got.query["filterByFormula"])

	none, err := c.FetchByIDs(context.Background(), "Cultures", nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestFetch_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       any
		wantInText string
	}{
		{
			name:       "structured error",
			status:     http.StatusUnprocessableEntity,
			body:       `{"error":{"type":"INVALID_FILTER_BY_FORMULA","message":"The formula for filtering records is invalid"}}`,
			wantInText: "INVALID_FILTER_BY_FORMULA",
		},
		{
			name:       "string error",
			status:     http.StatusNotFound,
			body:       `{"error":"NOT_FOUND"}`,
			wantInText: "NOT_FOUND",
		},
		{
			name:       "plain text",
			status:     http.StatusBadGateway,
			body:       "upstream exploded",
			wantInText: "upstream exploded",
		},
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"error":{"type":"AUTHENTICATION_REQUIRED","message":"Authentication required"}}`,
			wantInText: "401",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)
			c := newTestClient(t, srv)

			_, err := c.FetchMany(context.Background(), "Plats", "TRUE()")
			require.Error(t, err)

			assert.Equal(t, apperrors.ErrCodeUpstream, apperrors.CodeOf(err))
			assert.Contains(t, err.Error(), "Airtable error (Plats)")
			assert.Contains(t, err.Error(), tt.wantInText)

			var se *apperrors.StructuredError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.Context["status"])

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestFetch_InvalidBody(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, "{not json")
	c := newTestClient(t, srv)

	_, err := c.FetchMany(context.Background(), "Plats", "TRUE()")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUpstream, apperrors.CodeOf(err))
}

func TestFetch_TransportFailure(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, map[string]any{"records": []any{}})
	c := newTestClient(t, srv, WithTimeout(time.Second))
	srv.Close()

	_, err := c.FetchOne(context.Background(), "Tally", "TRUE()")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUpstream, apperrors.CodeOf(err))
}

func TestFetch_CanceledContext(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, map[string]any{"records": []any{}})
	c := newTestClient(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchMany(ctx, "Plats", "TRUE()")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUpstream, apperrors.CodeOf(err))
}

func TestFetch_EmptyTable(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, map[string]any{"records": []any{}})
	c := newTestClient(t, srv)

	_, err := c.FetchMany(context.Background(), "", "TRUE()")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.CodeOf(err))
}
