package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/plushka/stitchfarm/internal/logger"
)

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal stores the authenticated user ID in the context. The auth
// middleware is the only writer.
func WithPrincipal(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, principalKey, userID)
}

// PrincipalFromContext returns the authenticated user ID, if any.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(principalKey).(string)
	return userID, ok && userID != ""
}

// Principal extracts the authenticated user ID from the request. If the
// gateway forwarded no principal, a 400 has already been written and the
// handler should return.
func Principal(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := PrincipalFromContext(r.Context())
	if !ok {
		log := logger.FromContext(r.Context())
		log.Warn("Request without principal", "path", r.URL.Path)
		respondError(w, http.StatusBadRequest, ErrMsgMissingPrincipal)
		return "", false
	}
	return userID, true
}

// DecodeAndValidateRequest decodes a JSON request body, validates it, and
// returns appropriate errors. If it returns an error, the HTTP response has
// already been written and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetQueryParam retrieves a required query parameter. If it is missing, an
// error response has already been written and the handler should return.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	log := logger.FromContext(r.Context())
	value := r.URL.Query().Get(paramName)
	if value == "" {
		log.Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return "", false
	}
	return value, true
}
