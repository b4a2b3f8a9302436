package domain

import "time"

// Listing status values. A listing is created active with its stock already
// escrowed out of the seller's pantry, and transitions exactly once.
const (
	ListingStatusActive    = "active"
	ListingStatusSold      = "sold"
	ListingStatusCancelled = "cancelled"
)

// MarketListing is an open peer-to-peer sale offer. Quantity and price are
// fixed at creation; the row is never deleted, only transitioned.
type MarketListing struct {
	ID           string    `json:"id"`
	SellerID     string    `json:"seller_id"`
	ItemType     string    `json:"item_type"`
	Quantity     int       `json:"quantity"`
	PricePerUnit int       `json:"price_per_unit"`
	Status       string    `json:"status"`
	BuyerID      string    `json:"buyer_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Total returns the full price of the listing.
func (l *MarketListing) Total() int { return l.Quantity * l.PricePerUnit }
