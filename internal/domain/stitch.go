package domain

import "time"

// Stitch task status values. The lifecycle is a closed state machine:
// draft -> pending -> approved|rejected. Terminal states have no exits.
const (
	TaskStatusDraft    = "draft"
	TaskStatusPending  = "pending"
	TaskStatusApproved = "approved"
	TaskStatusRejected = "rejected"
)

// taskTransitions is the full transition table. Any transition not listed
// here is rejected with ErrWrongState.
var taskTransitions = map[string][]string{
	TaskStatusDraft:   {TaskStatusPending},
	TaskStatusPending: {TaskStatusApproved, TaskStatusRejected},
}

// CanTransition reports whether a task may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range taskTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TaskTerminal reports whether a status has no outgoing transitions.
func TaskTerminal(status string) bool {
	return status == TaskStatusApproved || status == TaskStatusRejected
}

// StitchTask is one embroidery submission. The code word is issued at draft
// creation as a lightweight anti-fraud proof; photo references point into
// external blob storage, the core never holds the bytes.
type StitchTask struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Status          string    `json:"status"`
	CodeWord        string    `json:"code_word"`
	PhotoBeforeRef  string    `json:"photo_before_ref,omitempty"`
	PhotoAfterRef   string    `json:"photo_after_ref,omitempty"`
	StitchCount     int       `json:"stitch_count"`
	ApprovalsCount  int       `json:"approvals_count"`
	RejectionsCount int       `json:"rejections_count"`
	RewardAmount    int       `json:"reward_amount"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Review is one reviewer's decision on a task. At most one per
// (reviewer, task); the reviewer is never the task owner.
type Review struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	ReviewerID string    `json:"reviewer_id"`
	Approve    bool      `json:"approve"`
	CreatedAt  time.Time `json:"created_at"`
}
