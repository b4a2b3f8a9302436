package handler

import (
	"errors"
	"net/http"

	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/logger"
	"github.com/plushka/stitchfarm/internal/metrics"
)

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPrincipal      = "Missing X-User-ID header"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgGenericServerError    = "Something went wrong"

	// Farm messages
	ErrMsgPlotNotFoundHTTP = "Plot not found"
	ErrMsgPenNotFoundHTTP  = "Pen not found"
	ErrMsgUnknownKindHTTP  = "That kind does not exist"
	ErrMsgPlotOccupiedHTTP = "Plot is already occupied"
	ErrMsgNotPlantedHTTP   = "Nothing is planted there"
	ErrMsgNotReadyHTTP     = "Not ready yet. Come back later"
	ErrMsgPenEmptyHTTP     = "Pen has no animal"
	ErrMsgPenFullHTTP      = "Pen is full"
	ErrMsgNotEnoughCoins   = "Not enough coins"
	ErrMsgNotEnoughStock   = "Not enough items in the pantry"
	ErrMsgNotEnoughFeed    = "Not enough feed in the pantry"

	// Market messages
	ErrMsgListingNotFoundHTTP  = "Listing not found"
	ErrMsgListingNotActiveHTTP = "Listing is no longer active"
	ErrMsgSelfTradeHTTP        = "You cannot buy your own listing"

	// Stitch messages
	ErrMsgTaskNotFoundHTTP    = "Task not found"
	ErrMsgWrongStateHTTP      = "That action is not allowed right now"
	ErrMsgSelfReviewHTTP      = "You cannot review your own task"
	ErrMsgDuplicateReviewHTTP = "You already reviewed this task"

	// Access and retry messages
	ErrMsgNotYoursHTTP          = "That does not belong to you"
	ErrMsgProfileNotFoundHTTP   = "Profile not found"
	ErrMsgTransientConflictHTTP = "Busy, please retry"
)

// mapServiceError maps domain errors to HTTP status codes and user-facing
// messages. Not-found sentinels become 404, access violations 403, state and
// funds conflicts 409, bad input 400, everything unknown a generic 500.
func mapServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnknownKind):
		return http.StatusBadRequest, ErrMsgUnknownKindHTTP

	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, ErrMsgProfileNotFoundHTTP
	case errors.Is(err, domain.ErrPlotNotFound):
		return http.StatusNotFound, ErrMsgPlotNotFoundHTTP
	case errors.Is(err, domain.ErrPenNotFound):
		return http.StatusNotFound, ErrMsgPenNotFoundHTTP
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, ErrMsgListingNotFoundHTTP
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, ErrMsgTaskNotFoundHTTP

	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, ErrMsgNotYoursHTTP
	case errors.Is(err, domain.ErrSelfTrade):
		return http.StatusForbidden, ErrMsgSelfTradeHTTP
	case errors.Is(err, domain.ErrSelfReview):
		return http.StatusForbidden, ErrMsgSelfReviewHTTP

	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusConflict, ErrMsgNotEnoughCoins
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict, ErrMsgNotEnoughStock
	case errors.Is(err, domain.ErrInsufficientFeed):
		return http.StatusConflict, ErrMsgNotEnoughFeed
	case errors.Is(err, domain.ErrPlotOccupied):
		return http.StatusConflict, ErrMsgPlotOccupiedHTTP
	case errors.Is(err, domain.ErrNotPlanted):
		return http.StatusConflict, ErrMsgNotPlantedHTTP
	case errors.Is(err, domain.ErrNotReady):
		return http.StatusConflict, ErrMsgNotReadyHTTP
	case errors.Is(err, domain.ErrPenEmpty):
		return http.StatusConflict, ErrMsgPenEmptyHTTP
	case errors.Is(err, domain.ErrPenFull):
		return http.StatusConflict, ErrMsgPenFullHTTP
	case errors.Is(err, domain.ErrListingNotActive):
		return http.StatusConflict, ErrMsgListingNotActiveHTTP
	case errors.Is(err, domain.ErrWrongState):
		return http.StatusConflict, ErrMsgWrongStateHTTP
	case errors.Is(err, domain.ErrDuplicateReview):
		return http.StatusConflict, ErrMsgDuplicateReviewHTTP
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a failed service call and writes the mapped error.
// Transient conflicts carry a retryable flag so clients can retry verbatim.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	log.Error(opName+" failed", "error", err)

	if errors.Is(err, domain.ErrTransientConflict) {
		metrics.TransientConflicts.Inc()
		respondJSON(w, http.StatusConflict, ErrorResponse{
			Error:     ErrMsgTransientConflictHTTP,
			Retryable: true,
		})
		return
	}

	status, msg := mapServiceError(err)
	respondError(w, status, msg)
}
