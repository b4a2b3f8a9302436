package stitch

import (
	"context"
	"fmt"
	"strconv"

	"github.com/plushka/stitchfarm/internal/cleanup"
	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/logger"
	"github.com/plushka/stitchfarm/internal/metrics"
	"github.com/plushka/stitchfarm/internal/repository"
)

// Config carries the review economy tunables resolved at startup
type Config struct {
	ApprovalQuorum  int
	RejectionQuorum int
	ReviewerReward  int
	AuthorReward    int
}

// Invalidator drops cached profile state after a balance mutation
type Invalidator interface {
	Invalidate(userID string)
}

// ReviewResult reports the state of a task after one review landed
type ReviewResult struct {
	TaskID     string `json:"task_id"`
	Status     string `json:"status"`
	Approvals  int    `json:"approvals"`
	Rejections int    `json:"rejections"`
	Settled    bool   `json:"settled"`
}

// Service defines the interface for stitch task operations
type Service interface {
	// RequestCodeWord opens a draft task carrying a fresh code word the
	// author must include in their before photo.
	RequestCodeWord(ctx context.Context, userID string) (*domain.StitchTask, error)

	// SubmitTask moves the author's draft to pending with its photo evidence.
	SubmitTask(ctx context.Context, userID, taskID, beforeRef, afterRef string, stitchCount int) (*domain.StitchTask, error)

	// CastReview records one reviewer's verdict, pays the reviewer, and
	// settles the task when a quorum is reached.
	CastReview(ctx context.Context, reviewerID, taskID string, approve bool) (*ReviewResult, error)

	// PendingTasks lists tasks this reviewer can still vote on.
	PendingTasks(ctx context.Context, reviewerID string) ([]domain.StitchTask, error)

	// MyTasks lists the caller's own tasks, any status.
	MyTasks(ctx context.Context, userID string) ([]domain.StitchTask, error)
}

type service struct {
	repo     repository.Stitch
	accounts Invalidator
	notifier cleanup.Notifier
	cfg      Config
}

// NewService creates a new stitch service
func NewService(repo repository.Stitch, accounts Invalidator, notifier cleanup.Notifier, cfg Config) Service {
	if notifier == nil {
		notifier = cleanup.NopNotifier{}
	}
	return &service{
		repo:     repo,
		accounts: accounts,
		notifier: notifier,
		cfg:      cfg,
	}
}

func (s *service) RequestCodeWord(ctx context.Context, userID string) (*domain.StitchTask, error) {
	log := logger.FromContext(ctx)
	log.Info("RequestCodeWord called", "userID", userID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	draft, err := tx.GetOpenDraft(ctx, userID)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		return nil, fmt.Errorf("%w: draft %s already open", domain.ErrWrongState, draft.ID)
	}

	task := &domain.StitchTask{
		UserID:   userID,
		CodeWord: newCodeWord(),
	}
	if err := tx.CreateDraft(ctx, task); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *service) SubmitTask(ctx context.Context, userID, taskID, beforeRef, afterRef string, stitchCount int) (*domain.StitchTask, error) {
	log := logger.FromContext(ctx)
	log.Info("SubmitTask called", "userID", userID, "taskID", taskID, "stitchCount", stitchCount)

	if beforeRef == "" || afterRef == "" {
		return nil, fmt.Errorf("%w: both photo references are required", domain.ErrInvalidInput)
	}
	if stitchCount <= 0 {
		return nil, fmt.Errorf("%w: stitch count must be positive", domain.ErrInvalidQuantity)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	task, err := tx.GetTaskForUpdate(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, fmt.Errorf("%w: not the task owner", domain.ErrUnauthorized)
	}
	if !domain.CanTransition(task.Status, domain.TaskStatusPending) {
		return nil, fmt.Errorf("%w: task is %s", domain.ErrWrongState, task.Status)
	}

	submitted, err := tx.SubmitTask(ctx, taskID, beforeRef, afterRef, stitchCount, s.cfg.AuthorReward)
	if err != nil {
		return nil, err
	}
	if !submitted {
		return nil, fmt.Errorf("%w: task is no longer a draft", domain.ErrWrongState)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.TasksSubmitted.Inc()

	task.Status = domain.TaskStatusPending
	task.PhotoBeforeRef = beforeRef
	task.PhotoAfterRef = afterRef
	task.StitchCount = stitchCount
	task.RewardAmount = s.cfg.AuthorReward
	return task, nil
}

func (s *service) CastReview(ctx context.Context, reviewerID, taskID string, approve bool) (*ReviewResult, error) {
	log := logger.FromContext(ctx)
	log.Info("CastReview called", "reviewerID", reviewerID, "taskID", taskID, "approve", approve)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	task, err := tx.GetTaskForUpdate(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID == reviewerID {
		return nil, fmt.Errorf("%w: cannot review own task", domain.ErrSelfReview)
	}
	if task.Status != domain.TaskStatusPending {
		return nil, fmt.Errorf("%w: task is %s", domain.ErrWrongState, task.Status)
	}

	review := &domain.Review{TaskID: taskID, ReviewerID: reviewerID, Approve: approve}
	if err := tx.InsertReview(ctx, review); err != nil {
		return nil, err
	}

	approvals := task.ApprovalsCount
	rejections := task.RejectionsCount
	if approve {
		approvals++
	} else {
		rejections++
	}
	if err := tx.UpdateTaskCounts(ctx, taskID, approvals, rejections); err != nil {
		return nil, err
	}

	// The reviewer is paid per verdict, settled or not.
	if err := tx.AdjustStitchcoins(ctx, reviewerID, s.cfg.ReviewerReward); err != nil {
		return nil, err
	}
	if err := tx.BumpReviewerStats(ctx, reviewerID); err != nil {
		return nil, err
	}

	result := &ReviewResult{
		TaskID:     taskID,
		Status:     domain.TaskStatusPending,
		Approvals:  approvals,
		Rejections: rejections,
	}

	switch {
	case approvals >= s.cfg.ApprovalQuorum:
		if err := s.settle(ctx, tx, task, domain.TaskStatusApproved); err != nil {
			return nil, err
		}
		if err := tx.AdjustStitchcoins(ctx, task.UserID, task.RewardAmount); err != nil {
			return nil, err
		}
		result.Status = domain.TaskStatusApproved
		result.Settled = true
	case rejections >= s.cfg.RejectionQuorum:
		if err := s.settle(ctx, tx, task, domain.TaskStatusRejected); err != nil {
			return nil, err
		}
		result.Status = domain.TaskStatusRejected
		result.Settled = true
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.accounts.Invalidate(reviewerID)
	metrics.ReviewsCast.WithLabelValues(strconv.FormatBool(approve)).Inc()

	if result.Settled {
		s.accounts.Invalidate(task.UserID)
		metrics.TasksSettled.WithLabelValues(result.Status).Inc()

		// Best effort only. The settlement is already committed.
		if err := s.notifier.NotifyTaskSettled(ctx, taskID, result.Status); err != nil {
			log.Warn("Cleanup notification failed", "taskID", taskID, "error", err)
		}
	}
	return result, nil
}

func (s *service) settle(ctx context.Context, tx repository.StitchTx, task *domain.StitchTask, status string) error {
	if !domain.CanTransition(task.Status, status) {
		return fmt.Errorf("%w: cannot move %s task to %s", domain.ErrWrongState, task.Status, status)
	}
	settled, err := tx.SettleTask(ctx, task.ID, status)
	if err != nil {
		return err
	}
	if !settled {
		return fmt.Errorf("%w: task settled concurrently", domain.ErrWrongState)
	}
	return nil
}

func (s *service) PendingTasks(ctx context.Context, reviewerID string) ([]domain.StitchTask, error) {
	return s.repo.PendingTasksForReviewer(ctx, reviewerID)
}

func (s *service) MyTasks(ctx context.Context, userID string) ([]domain.StitchTask, error) {
	return s.repo.TasksByOwner(ctx, userID)
}
