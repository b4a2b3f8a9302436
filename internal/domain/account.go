package domain

import "time"

// Profile is a player's wallet and reputation row.
// Balances are mutated only inside transaction functions and are never negative.
type Profile struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	DisplayName  string    `json:"display_name"`
	Balance      int       `json:"balance"`
	Stitchcoins  int       `json:"stitchcoins"`
	Reputation   int       `json:"reputation"`
	ReviewsCount int       `json:"reviews_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
