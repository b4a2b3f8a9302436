package handler

import (
	"net/http"

	"github.com/plushka/stitchfarm/internal/account"
	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/logger"
)

// EnsureProfileRequest represents a request to create or refresh a profile
type EnsureProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=100"`
}

// ProfileResponse bundles the profile with its pantry stock
type ProfileResponse struct {
	Profile *domain.Profile     `json:"profile"`
	Pantry  []domain.PantryItem `json:"pantry"`
}

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	accountSvc account.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(accountSvc account.Service) *ProfileHandler {
	return &ProfileHandler{accountSvc: accountSvc}
}

// HandleGetProfile handles the profile endpoint
// @Summary Get profile
// @Description Returns the caller's profile and pantry stock
// @Tags profile
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 404 {object} ErrorResponse "Profile not found"
// @Router /profile [get]
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	profile, err := h.accountSvc.Profile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get profile", err)
		return
	}

	pantry, err := h.accountSvc.Pantry(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get pantry", err)
		return
	}

	respondJSON(w, http.StatusOK, ProfileResponse{Profile: profile, Pantry: pantry})
}

// HandleEnsureProfile handles the profile bootstrap endpoint
// @Summary Ensure profile
// @Description Create the profile and starting farm layout on first sight
// @Tags profile
// @Accept json
// @Produce json
// @Param request body EnsureProfileRequest true "Ensure request"
// @Success 200 {object} domain.Profile
// @Router /profile/ensure [post]
func (h *ProfileHandler) HandleEnsureProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req EnsureProfileRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Ensure profile"); err != nil {
		return
	}

	profile, err := h.accountSvc.EnsureProfile(r.Context(), userID, req.DisplayName)
	if err != nil {
		respondServiceError(w, r, "Ensure profile", err)
		return
	}

	logger.FromContext(r.Context()).Info("Profile ensured", "userID", userID)
	respondJSON(w, http.StatusOK, profile)
}

// HandleGetCacheStats handles the admin cache stats endpoint
// @Summary Profile cache stats
// @Description Returns hit and miss counters for the profile read cache
// @Tags admin
// @Produce json
// @Success 200 {object} account.CacheStats
// @Router /admin/cache/stats [get]
func (h *ProfileHandler) HandleGetCacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.accountSvc.CacheStats())
}
