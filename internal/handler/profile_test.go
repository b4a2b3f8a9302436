package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/plushka/stitchfarm/internal/account"
	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/handler"
)

func TestProfileHandler_HandleGetProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("Profile", mock.Anything, testUserID).
			Return(&domain.Profile{UserID: testUserID, DisplayName: "Alice", Balance: 10}, nil)
		svc.On("Pantry", mock.Anything, testUserID).
			Return([]domain.PantryItem{{ItemType: "wheat", Quantity: 2}}, nil)

		req := newAuthedRequest(t, http.MethodGet, "/api/v1/profile", nil, testUserID)
		rec := httptest.NewRecorder()

		handler.NewProfileHandler(svc).HandleGetProfile(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp handler.ProfileResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, 10, resp.Profile.Balance)
		assert.Len(t, resp.Pantry, 1)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("Profile", mock.Anything, testUserID).
			Return(nil, domain.ErrProfileNotFound)

		req := newAuthedRequest(t, http.MethodGet, "/api/v1/profile", nil, testUserID)
		rec := httptest.NewRecorder()

		handler.NewProfileHandler(svc).HandleGetProfile(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Missing Principal", func(t *testing.T) {
		svc := new(MockAccountService)

		req := newAuthedRequest(t, http.MethodGet, "/api/v1/profile", nil, "")
		rec := httptest.NewRecorder()

		handler.NewProfileHandler(svc).HandleGetProfile(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp handler.ErrorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, handler.ErrMsgMissingPrincipal, resp.Error)
	})
}

func TestProfileHandler_HandleEnsureProfile(t *testing.T) {
	handler.InitValidator()

	t.Run("Success", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("EnsureProfile", mock.Anything, testUserID, "Alice").
			Return(&domain.Profile{UserID: testUserID, DisplayName: "Alice", Balance: 10}, nil)

		req := newAuthedRequest(t, http.MethodPost, "/api/v1/profile/ensure",
			handler.EnsureProfileRequest{DisplayName: "Alice"}, testUserID)
		rec := httptest.NewRecorder()

		handler.NewProfileHandler(svc).HandleEnsureProfile(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var profile domain.Profile
		decodeBody(t, rec, &profile)
		assert.Equal(t, 10, profile.Balance)
	})

	t.Run("Missing Display Name", func(t *testing.T) {
		svc := new(MockAccountService)

		req := newAuthedRequest(t, http.MethodPost, "/api/v1/profile/ensure",
			handler.EnsureProfileRequest{}, testUserID)
		rec := httptest.NewRecorder()

		handler.NewProfileHandler(svc).HandleEnsureProfile(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "EnsureProfile", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProfileHandler_HandleGetCacheStats(t *testing.T) {
	svc := new(MockAccountService)
	svc.On("CacheStats").Return(account.CacheStats{Hits: 7, Misses: 3})

	req := newAuthedRequest(t, http.MethodGet, "/api/v1/admin/cache/stats", nil, testUserID)
	rec := httptest.NewRecorder()

	handler.NewProfileHandler(svc).HandleGetCacheStats(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var stats account.CacheStats
	decodeBody(t, rec, &stats)
	assert.Equal(t, uint64(7), stats.Hits)
}
