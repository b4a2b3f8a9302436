package repository

import (
	"context"

	"github.com/plushka/stitchfarm/internal/domain"
)

// Stitch defines persistence operations for stitch tasks and reviews
type Stitch interface {
	// GetTask fetches one task. Returns domain.ErrTaskNotFound when absent.
	GetTask(ctx context.Context, taskID string) (*domain.StitchTask, error)

	// TasksByOwner returns a user's own tasks, newest first.
	TasksByOwner(ctx context.Context, userID string) ([]domain.StitchTask, error)

	// PendingTasksForReviewer returns tasks awaiting review, excluding tasks
	// the reviewer authored or already reviewed, oldest first.
	PendingTasksForReviewer(ctx context.Context, reviewerID string) ([]domain.StitchTask, error)

	BeginTx(ctx context.Context) (StitchTx, error)
}

// StitchTx carries the stitch mutations that must run inside one transaction
type StitchTx interface {
	Tx
	LedgerTx

	// GetTaskForUpdate locks one task row.
	// Returns domain.ErrTaskNotFound when absent.
	GetTaskForUpdate(ctx context.Context, taskID string) (*domain.StitchTask, error)

	// GetOpenDraft returns the user's current draft task, nil when none.
	GetOpenDraft(ctx context.Context, userID string) (*domain.StitchTask, error)

	// CreateDraft inserts a new draft task and fills in its ID and timestamps.
	// Returns domain.ErrWrongState when the user already has an open draft.
	CreateDraft(ctx context.Context, task *domain.StitchTask) error

	// SubmitTask flips a draft to pending, recording the submission fields.
	// Returns false when the task was not in draft.
	SubmitTask(ctx context.Context, taskID, beforeRef, afterRef string, stitchCount, rewardAmount int) (bool, error)

	// InsertReview records a reviewer's verdict.
	// Returns domain.ErrDuplicateReview on a second review by the same reviewer.
	InsertReview(ctx context.Context, review *domain.Review) error

	// UpdateTaskCounts persists the running approval and rejection tallies.
	UpdateTaskCounts(ctx context.Context, taskID string, approvals, rejections int) error

	// SettleTask flips a pending task to a terminal status.
	// Returns false when the task was no longer pending.
	SettleTask(ctx context.Context, taskID, status string) (bool, error)

	// BumpReviewerStats increments a reviewer's lifetime review count and reputation.
	BumpReviewerStats(ctx context.Context, reviewerID string) error
}
