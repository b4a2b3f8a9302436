package stitch

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/repository"
)

type MockStitchRepo struct {
	mock.Mock
}

func (m *MockStitchRepo) GetTask(ctx context.Context, taskID string) (*domain.StitchTask, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StitchTask), args.Error(1)
}

func (m *MockStitchRepo) TasksByOwner(ctx context.Context, userID string) ([]domain.StitchTask, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StitchTask), args.Error(1)
}

func (m *MockStitchRepo) PendingTasksForReviewer(ctx context.Context, reviewerID string) ([]domain.StitchTask, error) {
	args := m.Called(ctx, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StitchTask), args.Error(1)
}

func (m *MockStitchRepo) BeginTx(ctx context.Context) (repository.StitchTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.StitchTx), args.Error(1)
}

type MockStitchTx struct {
	mock.Mock
}

func (m *MockStitchTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStitchTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStitchTx) GetBalanceForUpdate(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStitchTx) AdjustBalance(ctx context.Context, userID string, delta int) error {
	return m.Called(ctx, userID, delta).Error(0)
}

func (m *MockStitchTx) AdjustStitchcoins(ctx context.Context, userID string, delta int) error {
	return m.Called(ctx, userID, delta).Error(0)
}

func (m *MockStitchTx) AddPantry(ctx context.Context, userID, itemType string, quantity int) error {
	return m.Called(ctx, userID, itemType, quantity).Error(0)
}

func (m *MockStitchTx) RemovePantry(ctx context.Context, userID, itemType string, quantity int) error {
	return m.Called(ctx, userID, itemType, quantity).Error(0)
}

func (m *MockStitchTx) GetPantryQuantityForUpdate(ctx context.Context, userID, itemType string) (int, error) {
	args := m.Called(ctx, userID, itemType)
	return args.Int(0), args.Error(1)
}

func (m *MockStitchTx) GetTaskForUpdate(ctx context.Context, taskID string) (*domain.StitchTask, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StitchTask), args.Error(1)
}

func (m *MockStitchTx) GetOpenDraft(ctx context.Context, userID string) (*domain.StitchTask, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StitchTask), args.Error(1)
}

func (m *MockStitchTx) CreateDraft(ctx context.Context, task *domain.StitchTask) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockStitchTx) SubmitTask(ctx context.Context, taskID, beforeRef, afterRef string, stitchCount, rewardAmount int) (bool, error) {
	args := m.Called(ctx, taskID, beforeRef, afterRef, stitchCount, rewardAmount)
	return args.Bool(0), args.Error(1)
}

func (m *MockStitchTx) InsertReview(ctx context.Context, review *domain.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockStitchTx) UpdateTaskCounts(ctx context.Context, taskID string, approvals, rejections int) error {
	return m.Called(ctx, taskID, approvals, rejections).Error(0)
}

func (m *MockStitchTx) SettleTask(ctx context.Context, taskID, status string) (bool, error) {
	args := m.Called(ctx, taskID, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockStitchTx) BumpReviewerStats(ctx context.Context, reviewerID string) error {
	return m.Called(ctx, reviewerID).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyTaskSettled(ctx context.Context, taskID, status string) error {
	return m.Called(ctx, taskID, status).Error(0)
}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(string) {}
