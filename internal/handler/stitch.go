package handler

import (
	"net/http"

	"github.com/plushka/stitchfarm/internal/logger"
	"github.com/plushka/stitchfarm/internal/stitch"
)

// SubmitTaskRequest represents a request to submit a stitch task for review
type SubmitTaskRequest struct {
	TaskID         string `json:"task_id" validate:"required,uuid"`
	PhotoBeforeRef string `json:"photo_before_ref" validate:"required,max=512"`
	PhotoAfterRef  string `json:"photo_after_ref" validate:"required,max=512"`
	StitchCount    int    `json:"stitch_count" validate:"required,gt=0"`
}

// ReviewRequest represents a reviewer's verdict on a pending task
type ReviewRequest struct {
	TaskID  string `json:"task_id" validate:"required,uuid"`
	Approve *bool  `json:"approve" validate:"required"`
}

// StitchHandler handles stitch task HTTP requests
type StitchHandler struct {
	stitchSvc stitch.Service
}

// NewStitchHandler creates a new stitch handler
func NewStitchHandler(stitchSvc stitch.Service) *StitchHandler {
	return &StitchHandler{stitchSvc: stitchSvc}
}

// HandleRequestCodeWord handles the code word endpoint
// @Summary Request a code word
// @Description Open a draft task with a fresh code word for the before photo
// @Tags stitch
// @Produce json
// @Success 201 {object} domain.StitchTask
// @Failure 409 {object} ErrorResponse "Draft already open"
// @Router /stitch/code-word [post]
func (h *StitchHandler) HandleRequestCodeWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	task, err := h.stitchSvc.RequestCodeWord(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Request code word", err)
		return
	}

	logger.FromContext(r.Context()).Info("Code word issued", "userID", userID, "taskID", task.ID)
	respondJSON(w, http.StatusCreated, task)
}

// HandleSubmitTask handles the task submission endpoint
// @Summary Submit a task
// @Description Move an own draft task to pending with photo evidence
// @Tags stitch
// @Accept json
// @Produce json
// @Param request body SubmitTaskRequest true "Submit request"
// @Success 200 {object} domain.StitchTask
// @Failure 403 {object} ErrorResponse "Not the owner"
// @Failure 409 {object} ErrorResponse "Task is not a draft"
// @Router /stitch/submit [post]
func (h *StitchHandler) HandleSubmitTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req SubmitTaskRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Submit task"); err != nil {
		return
	}

	task, err := h.stitchSvc.SubmitTask(r.Context(), userID, req.TaskID,
		req.PhotoBeforeRef, req.PhotoAfterRef, req.StitchCount)
	if err != nil {
		respondServiceError(w, r, "Submit task", err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// HandleCastReview handles the review endpoint
// @Summary Review a task
// @Description Record a verdict on a pending task and settle it on quorum
// @Tags stitch
// @Accept json
// @Produce json
// @Param request body ReviewRequest true "Review request"
// @Success 200 {object} stitch.ReviewResult
// @Failure 403 {object} ErrorResponse "Own task"
// @Failure 409 {object} ErrorResponse "Already reviewed or task settled"
// @Router /stitch/review [post]
func (h *StitchHandler) HandleCastReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Cast review"); err != nil {
		return
	}

	result, err := h.stitchSvc.CastReview(r.Context(), userID, req.TaskID, *req.Approve)
	if err != nil {
		respondServiceError(w, r, "Cast review", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleGetPending handles the pending tasks endpoint
// @Summary List reviewable tasks
// @Description Returns pending tasks by other users the caller has not reviewed
// @Tags stitch
// @Produce json
// @Success 200 {array} domain.StitchTask
// @Router /stitch/pending [get]
func (h *StitchHandler) HandleGetPending(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	tasks, err := h.stitchSvc.PendingTasks(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get pending tasks", err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// HandleGetMine handles the own tasks endpoint
// @Summary List own tasks
// @Tags stitch
// @Produce json
// @Success 200 {array} domain.StitchTask
// @Router /stitch/mine [get]
func (h *StitchHandler) HandleGetMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	tasks, err := h.stitchSvc.MyTasks(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get my tasks", err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}
