package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/plushka/stitchfarm/internal/handler"
)

const (
	testUserID    = "user-alice"
	testPlotID    = "11111111-1111-1111-1111-111111111111"
	testPenID     = "22222222-2222-2222-2222-222222222222"
	testListingID = "33333333-3333-3333-3333-333333333333"
	testTaskID    = "44444444-4444-4444-4444-444444444444"
)

// newAuthedRequest builds a JSON request carrying a principal, the way the
// auth middleware would hand it to a handler.
func newAuthedRequest(t *testing.T, method, path string, body interface{}, userID string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req = req.WithContext(handler.WithPrincipal(req.Context(), userID))
	}
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}
