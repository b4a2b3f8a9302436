package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plushka/stitchfarm/internal/handler"
)

type fakePool struct {
	pingErr error
}

func (p *fakePool) Ping(ctx context.Context) error { return p.pingErr }
func (p *fakePool) Close()                         {}

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	handler.HandleHealthz()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp handler.HealthResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "ok", resp.Status)
}

func TestHandleReadyz(t *testing.T) {
	t.Run("Database Up", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rec := httptest.NewRecorder()

		handler.HandleReadyz(&fakePool{})(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Database Down", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rec := httptest.NewRecorder()

		handler.HandleReadyz(&fakePool{pingErr: errors.New("connection refused")})(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp handler.HealthResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "unavailable", resp.Status)
	})
}

func TestHandleVersion(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()

	handler.HandleVersion()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var info handler.VersionInfo
	decodeBody(t, rec, &info)
	assert.NotEmpty(t, info.GoVersion)
}
