package domain

import "time"

// Plot is one garden tile. PlantType is empty when nothing is planted;
// when planted, PlantedAt records the sowing time and LastHarvestedAt the
// most recent recurring harvest (zero until the first one).
type Plot struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Position        int        `json:"position"`
	PlantType       string     `json:"plant_type,omitempty"`
	PlantedAt       *time.Time `json:"planted_at,omitempty"`
	LastHarvestedAt *time.Time `json:"last_harvested_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Planted reports whether the plot currently holds a crop.
func (p *Plot) Planted() bool { return p.PlantType != "" }

// GrowthStart returns the timestamp the growth timer runs against:
// the last harvest for a recurring crop, otherwise the sowing time.
func (p *Plot) GrowthStart() time.Time {
	if p.LastHarvestedAt != nil {
		return *p.LastHarvestedAt
	}
	if p.PlantedAt != nil {
		return *p.PlantedAt
	}
	return time.Time{}
}

// Tree is one orchard tile, same shape as Plot with a tree kind.
type Tree struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Position        int        `json:"position"`
	TreeType        string     `json:"tree_type,omitempty"`
	PlantedAt       *time.Time `json:"planted_at,omitempty"`
	LastHarvestedAt *time.Time `json:"last_harvested_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (t *Tree) Planted() bool { return t.TreeType != "" }

func (t *Tree) GrowthStart() time.Time {
	if t.LastHarvestedAt != nil {
		return *t.LastHarvestedAt
	}
	if t.PlantedAt != nil {
		return *t.PlantedAt
	}
	return time.Time{}
}

// Pen is one animal enclosure. AnimalCount is bounded by the kind's
// MaxPerPen; LastCollectedAt gates timed product accrual.
type Pen struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Position        int        `json:"position"`
	AnimalType      string     `json:"animal_type,omitempty"`
	AnimalCount     int        `json:"animal_count"`
	LastCollectedAt *time.Time `json:"last_collected_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Stocked reports whether the pen holds at least one animal.
func (p *Pen) Stocked() bool { return p.AnimalType != "" && p.AnimalCount > 0 }

// AccrualStart returns the timestamp the collection timer runs against.
// A pen that has never been collected accrues from its creation.
func (p *Pen) AccrualStart() time.Time {
	if p.LastCollectedAt != nil {
		return *p.LastCollectedAt
	}
	return p.CreatedAt
}

// PantryItem is a per-owner, per-kind inventory counter.
// Rows with quantity zero are deleted rather than kept around.
type PantryItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ItemType  string    `json:"item_type"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}
