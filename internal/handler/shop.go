package handler

import (
	"net/http"

	"github.com/plushka/stitchfarm/internal/farm"
	"github.com/plushka/stitchfarm/internal/logger"
)

// ShopHandler handles farm expansion purchases
type ShopHandler struct {
	farmSvc farm.Service
}

// NewShopHandler creates a new shop handler
func NewShopHandler(farmSvc farm.Service) *ShopHandler {
	return &ShopHandler{farmSvc: farmSvc}
}

// HandleBuyPlot handles the plot purchase endpoint
// @Summary Buy a plot
// @Description Debit the plot price and append a new empty plot
// @Tags shop
// @Produce json
// @Success 201 {object} domain.Plot
// @Failure 409 {object} ErrorResponse "Not enough coins"
// @Router /shop/plot [post]
func (h *ShopHandler) HandleBuyPlot(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	plot, err := h.farmSvc.BuyPlot(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Buy plot", err)
		return
	}

	logger.FromContext(r.Context()).Info("Plot purchased", "userID", userID, "position", plot.Position)
	respondJSON(w, http.StatusCreated, plot)
}

// HandleBuyPen handles the pen purchase endpoint
// @Summary Buy a pen
// @Tags shop
// @Produce json
// @Success 201 {object} domain.Pen
// @Router /shop/pen [post]
func (h *ShopHandler) HandleBuyPen(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	pen, err := h.farmSvc.BuyPen(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Buy pen", err)
		return
	}

	respondJSON(w, http.StatusCreated, pen)
}

// HandleBuyTree handles the tree slot purchase endpoint
// @Summary Buy a tree slot
// @Tags shop
// @Produce json
// @Success 201 {object} domain.Tree
// @Router /shop/tree [post]
func (h *ShopHandler) HandleBuyTree(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	tree, err := h.farmSvc.BuyTreeSlot(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Buy tree slot", err)
		return
	}

	respondJSON(w, http.StatusCreated, tree)
}
