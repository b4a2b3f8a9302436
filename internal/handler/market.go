package handler

import (
	"net/http"

	"github.com/plushka/stitchfarm/internal/logger"
	"github.com/plushka/stitchfarm/internal/market"
)

// SellToSystemRequest represents a request to sell stock at the buyback price
type SellToSystemRequest struct {
	ItemType string `json:"item_type" validate:"required,kind"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// ListForSaleRequest represents a request to open a player listing
type ListForSaleRequest struct {
	ItemType  string `json:"item_type" validate:"required,kind"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	UnitPrice int    `json:"unit_price" validate:"required,gt=0"`
}

// ListingActionRequest targets one listing by id
type ListingActionRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid"`
}

// MarketHandler handles market HTTP requests
type MarketHandler struct {
	marketSvc market.Service
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(marketSvc market.Service) *MarketHandler {
	return &MarketHandler{marketSvc: marketSvc}
}

// HandleSellToSystem handles the system buyback endpoint
// @Summary Sell to the system
// @Description Sell pantry stock at the server-authoritative buyback price
// @Tags market
// @Accept json
// @Produce json
// @Param request body SellToSystemRequest true "Sell request"
// @Success 200 {object} market.SellResult
// @Failure 409 {object} ErrorResponse "Not enough stock"
// @Router /market/sell-to-system [post]
func (h *MarketHandler) HandleSellToSystem(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req SellToSystemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sell to system"); err != nil {
		return
	}

	result, err := h.marketSvc.SellToSystem(r.Context(), userID, req.ItemType, req.Quantity)
	if err != nil {
		respondServiceError(w, r, "Sell to system", err)
		return
	}

	logger.FromContext(r.Context()).Info("Sold to system",
		"userID", userID, "item", result.ItemType, "quantity", result.Quantity, "total", result.Total)
	respondJSON(w, http.StatusOK, result)
}

// HandleListForSale handles the listing creation endpoint
// @Summary List items for sale
// @Description Escrow stock out of the pantry and open an active listing
// @Tags market
// @Accept json
// @Produce json
// @Param request body ListForSaleRequest true "List request"
// @Success 201 {object} domain.MarketListing
// @Failure 409 {object} ErrorResponse "Not enough stock"
// @Router /market/list [post]
func (h *MarketHandler) HandleListForSale(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req ListForSaleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "List for sale"); err != nil {
		return
	}

	listing, err := h.marketSvc.ListForSale(r.Context(), userID, req.ItemType, req.Quantity, req.UnitPrice)
	if err != nil {
		respondServiceError(w, r, "List for sale", err)
		return
	}

	respondJSON(w, http.StatusCreated, listing)
}

// HandleBuyListing handles the listing purchase endpoint
// @Summary Buy a listing
// @Description Pay the seller and move the goods to the buyer's pantry
// @Tags market
// @Accept json
// @Produce json
// @Param request body ListingActionRequest true "Buy request"
// @Success 200 {object} domain.MarketListing
// @Failure 403 {object} ErrorResponse "Own listing"
// @Failure 409 {object} ErrorResponse "Listing settled or not enough coins"
// @Router /market/buy [post]
func (h *MarketHandler) HandleBuyListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req ListingActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy listing"); err != nil {
		return
	}

	listing, err := h.marketSvc.BuyListing(r.Context(), userID, req.ListingID)
	if err != nil {
		respondServiceError(w, r, "Buy listing", err)
		return
	}

	respondJSON(w, http.StatusOK, listing)
}

// HandleCancelListing handles the listing cancel endpoint
// @Summary Cancel a listing
// @Description Withdraw an own active listing and restore the escrowed stock
// @Tags market
// @Accept json
// @Produce json
// @Param request body ListingActionRequest true "Cancel request"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse "Not the seller"
// @Router /market/cancel [post]
func (h *MarketHandler) HandleCancelListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	var req ListingActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Cancel listing"); err != nil {
		return
	}

	if err := h.marketSvc.CancelListing(r.Context(), userID, req.ListingID); err != nil {
		respondServiceError(w, r, "Cancel listing", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Listing cancelled"})
}

// HandleGetListings handles the open listings endpoint
// @Summary Browse open listings
// @Description Returns active listings by other sellers, newest first
// @Tags market
// @Produce json
// @Success 200 {array} domain.MarketListing
// @Router /market/listings [get]
func (h *MarketHandler) HandleGetListings(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	listings, err := h.marketSvc.OpenListings(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get listings", err)
		return
	}

	respondJSON(w, http.StatusOK, listings)
}

// HandleGetMyListings handles the own listings endpoint
// @Summary List own listings
// @Description Returns all of the caller's listings, any status
// @Tags market
// @Produce json
// @Success 200 {array} domain.MarketListing
// @Router /market/my-listings [get]
func (h *MarketHandler) HandleGetMyListings(w http.ResponseWriter, r *http.Request) {
	userID, ok := Principal(w, r)
	if !ok {
		return
	}

	listings, err := h.marketSvc.MyListings(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get my listings", err)
		return
	}

	respondJSON(w, http.StatusOK, listings)
}
