package handler

import (
	"net/http"

	"github.com/plushka/stitchfarm/internal/farm"
	"github.com/plushka/stitchfarm/internal/logger"
)

// PlantRequest represents a request to plant a crop or tree
type PlantRequest struct {
	PlotID string `json:"plot_id" validate:"required,uuid"`
	Kind   string `json:"kind" validate:"required,kind"`
}

// PlotActionRequest targets one plot or tree slot by id
type PlotActionRequest struct {
	PlotID string `json:"plot_id" validate:"required,uuid"`
}

// FeedRequest represents a request to feed a pen for products
type FeedRequest struct {
	PenID    string `json:"pen_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// PenActionRequest targets one pen by id
type PenActionRequest struct {
	PenID string `json:"pen_id" validate:"required,uuid"`
}

// PlaceAnimalRequest represents a request to put an animal into a pen
type PlaceAnimalRequest struct {
	PenID string `json:"pen_id" validate:"required,uuid"`
	Kind  string `json:"kind" validate:"required,kind"`
}

// FarmHandler handles farm and shop HTTP requests
type FarmHandler struct {
	farmSvc farm.Service
}

// NewFarmHandler creates a new farm handler
func NewFarmHandler(farmSvc farm.Service) *FarmHandler {
	return &FarmHandler{farmSvc: farmSvc}
}

// HandlePlant handles the plant endpoint
// @Summary Plant a crop
// @Description Buy a seed and plant it on an empty plot
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlantRequest true "Plant request"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 409 {object} ErrorResponse "Plot occupied or not enough coins"
// @Router /farm/plots/plant [post]
func (h *FarmHandler) HandlePlant(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req PlantRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Plant"); err != nil {
		return
	}

	if err := h.farmSvc.Plant(r.Context(), userID, req.PlotID, req.Kind); err != nil {
		respondServiceError(w, r, "Plant", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Planted " + req.Kind})
}

// HandleHarvestPlot handles the plot harvest endpoint
// @Summary Harvest a plot
// @Description Credit the grown yield to the pantry and restart the growth timer
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlotActionRequest true "Harvest request"
// @Success 200 {object} farm.HarvestResult
// @Failure 409 {object} ErrorResponse "Nothing planted or not ready"
// @Router /farm/plots/harvest [post]
func (h *FarmHandler) HandleHarvestPlot(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req PlotActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Harvest plot"); err != nil {
		return
	}

	result, err := h.farmSvc.HarvestPlot(r.Context(), userID, req.PlotID)
	if err != nil {
		respondServiceError(w, r, "Harvest plot", err)
		return
	}

	logger.FromContext(r.Context()).Info("Plot harvested",
		"userID", userID, "item", result.ItemType, "quantity", result.Quantity)
	respondJSON(w, http.StatusOK, result)
}

// HandleClearPlot handles the plot clear endpoint
// @Summary Clear a plot
// @Description Remove whatever is planted without a refund
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlotActionRequest true "Clear request"
// @Success 200 {object} SuccessResponse
// @Router /farm/plots/clear [post]
func (h *FarmHandler) HandleClearPlot(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req PlotActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Clear plot"); err != nil {
		return
	}

	if err := h.farmSvc.ClearPlot(r.Context(), userID, req.PlotID); err != nil {
		respondServiceError(w, r, "Clear plot", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Plot cleared"})
}

// HandlePlantTree handles the tree plant endpoint
// @Summary Plant a tree
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlantRequest true "Plant request"
// @Success 200 {object} SuccessResponse
// @Router /farm/trees/plant [post]
func (h *FarmHandler) HandlePlantTree(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req PlantRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Plant tree"); err != nil {
		return
	}

	if err := h.farmSvc.PlantTree(r.Context(), userID, req.PlotID, req.Kind); err != nil {
		respondServiceError(w, r, "Plant tree", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Planted " + req.Kind + " tree"})
}

// HandleHarvestTree handles the tree harvest endpoint
// @Summary Harvest a tree
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlotActionRequest true "Harvest request"
// @Success 200 {object} farm.HarvestResult
// @Router /farm/trees/harvest [post]
func (h *FarmHandler) HandleHarvestTree(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req PlotActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Harvest tree"); err != nil {
		return
	}

	result, err := h.farmSvc.HarvestTree(r.Context(), userID, req.PlotID)
	if err != nil {
		respondServiceError(w, r, "Harvest tree", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleClearTree handles the tree clear endpoint
// @Summary Clear a tree slot
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlotActionRequest true "Clear request"
// @Success 200 {object} SuccessResponse
// @Router /farm/trees/clear [post]
func (h *FarmHandler) HandleClearTree(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req PlotActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Clear tree"); err != nil {
		return
	}

	if err := h.farmSvc.ClearTree(r.Context(), userID, req.PlotID); err != nil {
		respondServiceError(w, r, "Clear tree", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Tree slot cleared"})
}

// HandleFeed handles the pen feed endpoint
// @Summary Feed a pen
// @Description Exchange feed from the pantry for animal products
// @Tags farm
// @Accept json
// @Produce json
// @Param request body FeedRequest true "Feed request"
// @Success 200 {object} farm.FeedResult
// @Failure 409 {object} ErrorResponse "Not enough feed or wrong pen mode"
// @Router /farm/pens/feed [post]
func (h *FarmHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req FeedRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Feed animal"); err != nil {
		return
	}

	result, err := h.farmSvc.FeedAnimal(r.Context(), userID, req.PenID, req.Quantity)
	if err != nil {
		respondServiceError(w, r, "Feed animal", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleCollect handles the pen collect endpoint
// @Summary Collect animal products
// @Description Collect the product accrued since the last collection
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PenActionRequest true "Collect request"
// @Success 200 {object} farm.CollectResult
// @Router /farm/pens/collect [post]
func (h *FarmHandler) HandleCollect(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req PenActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Collect product"); err != nil {
		return
	}

	result, err := h.farmSvc.CollectProduct(r.Context(), userID, req.PenID)
	if err != nil {
		respondServiceError(w, r, "Collect product", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandlePlaceAnimal handles the place-animal endpoint
// @Summary Place an animal
// @Description Buy an animal and put it into a pen
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlaceAnimalRequest true "Place request"
// @Success 200 {object} domain.Pen
// @Failure 409 {object} ErrorResponse "Pen full or kinds mixed"
// @Router /farm/pens/place-animal [post]
func (h *FarmHandler) HandlePlaceAnimal(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req PlaceAnimalRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Place animal"); err != nil {
		return
	}

	pen, err := h.farmSvc.PlaceAnimal(r.Context(), userID, req.PenID, req.Kind)
	if err != nil {
		respondServiceError(w, r, "Place animal", err)
		return
	}

	respondJSON(w, http.StatusOK, pen)
}

// HandleGetPlots handles the plots listing endpoint
// @Summary List plots
// @Description Returns the caller's plots with evaluated growth timers
// @Tags farm
// @Produce json
// @Success 200 {array} farm.PlotView
// @Router /farm/plots [get]
func (h *FarmHandler) HandleGetPlots(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	plots, err := h.farmSvc.Plots(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get plots", err)
		return
	}

	respondJSON(w, http.StatusOK, plots)
}

// HandleGetTrees handles the trees listing endpoint
// @Summary List tree slots
// @Tags farm
// @Produce json
// @Success 200 {array} farm.TreeView
// @Router /farm/trees [get]
func (h *FarmHandler) HandleGetTrees(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	trees, err := h.farmSvc.Trees(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get trees", err)
		return
	}

	respondJSON(w, http.StatusOK, trees)
}

// HandleGetPens handles the pens listing endpoint
// @Summary List pens
// @Tags farm
// @Produce json
// @Success 200 {array} farm.PenView
// @Router /farm/pens [get]
func (h *FarmHandler) HandleGetPens(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	pens, err := h.farmSvc.Pens(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get pens", err)
		return
	}

	respondJSON(w, http.StatusOK, pens)
}
