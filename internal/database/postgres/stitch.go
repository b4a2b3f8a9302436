package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/repository"
)

type stitchRepository struct {
	db *pgxpool.Pool
}

// NewStitchRepository creates a new PostgreSQL stitch repository
func NewStitchRepository(db *pgxpool.Pool) repository.Stitch {
	return &stitchRepository{db: db}
}

const taskColumns = `id, user_id, status, code_word, photo_before_ref, photo_after_ref,
	stitch_count, approvals_count, rejections_count, reward_amount, created_at, updated_at`

func scanTask(row pgx.Row) (*domain.StitchTask, error) {
	var t domain.StitchTask
	err := row.Scan(&t.ID, &t.UserID, &t.Status, &t.CodeWord, &t.PhotoBeforeRef, &t.PhotoAfterRef,
		&t.StitchCount, &t.ApprovalsCount, &t.RejectionsCount, &t.RewardAmount, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *stitchRepository) GetTask(ctx context.Context, taskID string) (*domain.StitchTask, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM stitch_tasks WHERE id = $1`, taskID)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (r *stitchRepository) TasksByOwner(ctx context.Context, userID string) ([]domain.StitchTask, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM stitch_tasks WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
}

func (r *stitchRepository) PendingTasksForReviewer(ctx context.Context, reviewerID string) ([]domain.StitchTask, error) {
	return r.queryTasks(ctx, `
		SELECT `+taskColumns+`
		FROM stitch_tasks t
		WHERE t.status = 'pending'
		  AND t.user_id <> $1
		  AND NOT EXISTS (
			SELECT 1 FROM reviews r WHERE r.task_id = t.id AND r.reviewer_id = $1
		  )
		ORDER BY t.created_at`,
		reviewerID)
}

func (r *stitchRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]domain.StitchTask, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.StitchTask{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read task rows: %w", err)
	}
	return tasks, nil
}

func (r *stitchRepository) BeginTx(ctx context.Context) (repository.StitchTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &stitchTx{txBase{tx: tx}}, nil
}

type stitchTx struct {
	txBase
}

func (t *stitchTx) GetTaskForUpdate(ctx context.Context, taskID string) (*domain.StitchTask, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM stitch_tasks WHERE id = $1 FOR UPDATE`, taskID)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
		}
		return nil, fmt.Errorf("failed to lock task: %w", mapConflictError(err))
	}
	return task, nil
}

func (t *stitchTx) GetOpenDraft(ctx context.Context, userID string) (*domain.StitchTask, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM stitch_tasks WHERE user_id = $1 AND status = 'draft' FOR UPDATE`,
		userID)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open draft: %w", mapConflictError(err))
	}
	return task, nil
}

func (t *stitchTx) CreateDraft(ctx context.Context, task *domain.StitchTask) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO stitch_tasks (user_id, status, code_word)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		task.UserID, domain.TaskStatusDraft, task.CodeWord).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		// The partial unique index allows one open draft per owner.
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: draft already open", domain.ErrWrongState)
		}
		return fmt.Errorf("failed to create draft: %w", mapConflictError(err))
	}
	task.Status = domain.TaskStatusDraft
	return nil
}

func (t *stitchTx) SubmitTask(ctx context.Context, taskID, beforeRef, afterRef string, stitchCount, rewardAmount int) (bool, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE stitch_tasks
		SET status = $2, photo_before_ref = $3, photo_after_ref = $4,
		    stitch_count = $5, reward_amount = $6, updated_at = now()
		WHERE id = $1 AND status = $7`,
		taskID, domain.TaskStatusPending, beforeRef, afterRef, stitchCount, rewardAmount,
		domain.TaskStatusDraft)
	if err != nil {
		return false, fmt.Errorf("failed to submit task: %w", mapConflictError(err))
	}
	return tag.RowsAffected() == 1, nil
}

func (t *stitchTx) InsertReview(ctx context.Context, review *domain.Review) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO reviews (task_id, reviewer_id, decision)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		review.TaskID, review.ReviewerID, review.Approve).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: reviewer %s on task %s", domain.ErrDuplicateReview, review.ReviewerID, review.TaskID)
		}
		return fmt.Errorf("failed to insert review: %w", mapConflictError(err))
	}
	return nil
}

func (t *stitchTx) UpdateTaskCounts(ctx context.Context, taskID string, approvals, rejections int) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE stitch_tasks SET approvals_count = $2, rejections_count = $3, updated_at = now()
		WHERE id = $1`,
		taskID, approvals, rejections)
	if err != nil {
		return fmt.Errorf("failed to update task counts: %w", mapConflictError(err))
	}
	return nil
}

func (t *stitchTx) SettleTask(ctx context.Context, taskID, status string) (bool, error) {
	tag, err := t.tx.Exec(ctx,
		`UPDATE stitch_tasks SET status = $2, updated_at = now() WHERE id = $1 AND status = $3`,
		taskID, status, domain.TaskStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to settle task: %w", mapConflictError(err))
	}
	return tag.RowsAffected() == 1, nil
}

func (t *stitchTx) BumpReviewerStats(ctx context.Context, reviewerID string) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE profiles SET reviews_count = reviews_count + 1, reputation = reputation + 1, updated_at = now()
		WHERE user_id = $1`,
		reviewerID)
	if err != nil {
		return fmt.Errorf("failed to bump reviewer stats: %w", mapConflictError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, reviewerID)
	}
	return nil
}
