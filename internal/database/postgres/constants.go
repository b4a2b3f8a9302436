package postgres

// PostgreSQL Error Codes
const (
	// PgErrCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrCodeUniqueViolation = "23505"
	// PgErrCodeCheckViolation is the PostgreSQL error code for CHECK constraint violations
	PgErrCodeCheckViolation = "23514"
	// PgErrCodeSerializationFailure signals a retryable serialization conflict
	PgErrCodeSerializationFailure = "40001"
	// PgErrCodeDeadlockDetected signals a retryable deadlock abort
	PgErrCodeDeadlockDetected = "40P01"
	// PgErrCodeLockNotAvailable signals a NOWAIT lock acquisition failure
	PgErrCodeLockNotAvailable = "55P03"
)

// Starting layout for freshly created profiles
const (
	StartingPlots     = 3
	StartingTreeSlots = 1
	StartingPens      = 1
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)
