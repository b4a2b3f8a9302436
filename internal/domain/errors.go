package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Account errors
	ErrMsgProfileNotFound   = "profile not found"
	ErrMsgInsufficientFunds = "insufficient funds"

	// Pantry errors
	ErrMsgInsufficientStock = "insufficient stock"
	ErrMsgInsufficientFeed  = "insufficient feed"

	// Farm errors
	ErrMsgPlotNotFound = "plot not found"
	ErrMsgPlotOccupied = "plot already occupied"
	ErrMsgNotPlanted   = "nothing planted"
	ErrMsgNotReady     = "not ready yet"
	ErrMsgPenNotFound  = "pen not found"
	ErrMsgPenEmpty     = "pen has no animal"
	ErrMsgPenFull      = "pen is full"
	ErrMsgUnknownKind  = "unknown kind"

	// Market errors
	ErrMsgListingNotFound   = "listing not found"
	ErrMsgListingNotActive  = "listing is not active"
	ErrMsgSelfTrade         = "cannot buy your own listing"

	// Stitch errors
	ErrMsgTaskNotFound    = "task not found"
	ErrMsgWrongState      = "operation not allowed in current state"
	ErrMsgSelfReview      = "cannot review your own task"
	ErrMsgDuplicateReview = "task already reviewed by this reviewer"

	// Access errors
	ErrMsgUnauthorized = "principal does not own this row"

	// Database/System errors
	ErrMsgTransientConflict = "transient conflict, retry"
	ErrMsgTxClosed          = "tx is closed"

	// Validation errors
	ErrMsgInvalidQuantity = "quantity must be positive"
	ErrMsgInvalidInput    = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Account errors
	ErrProfileNotFound   = errors.New(ErrMsgProfileNotFound)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Pantry errors
	ErrInsufficientStock = errors.New(ErrMsgInsufficientStock)
	ErrInsufficientFeed  = errors.New(ErrMsgInsufficientFeed)

	// Farm errors
	ErrPlotNotFound = errors.New(ErrMsgPlotNotFound)
	ErrPlotOccupied = errors.New(ErrMsgPlotOccupied)
	ErrNotPlanted   = errors.New(ErrMsgNotPlanted)
	ErrNotReady     = errors.New(ErrMsgNotReady)
	ErrPenNotFound  = errors.New(ErrMsgPenNotFound)
	ErrPenEmpty     = errors.New(ErrMsgPenEmpty)
	ErrPenFull      = errors.New(ErrMsgPenFull)
	ErrUnknownKind  = errors.New(ErrMsgUnknownKind)

	// Market errors
	ErrListingNotFound  = errors.New(ErrMsgListingNotFound)
	ErrListingNotActive = errors.New(ErrMsgListingNotActive)
	ErrSelfTrade        = errors.New(ErrMsgSelfTrade)

	// Stitch errors
	ErrTaskNotFound    = errors.New(ErrMsgTaskNotFound)
	ErrWrongState      = errors.New(ErrMsgWrongState)
	ErrSelfReview      = errors.New(ErrMsgSelfReview)
	ErrDuplicateReview = errors.New(ErrMsgDuplicateReview)

	// Access errors
	ErrUnauthorized = errors.New(ErrMsgUnauthorized)

	// System errors
	ErrTransientConflict = errors.New(ErrMsgTransientConflict)

	// Validation errors
	ErrInvalidQuantity = errors.New(ErrMsgInvalidQuantity)
	ErrInvalidInput    = errors.New(ErrMsgInvalidInput)
)
