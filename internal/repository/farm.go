package repository

import (
	"context"
	"time"

	"github.com/plushka/stitchfarm/internal/domain"
)

// Farm defines persistence operations for plots, trees and pens
type Farm interface {
	GetPlots(ctx context.Context, userID string) ([]domain.Plot, error)
	GetTrees(ctx context.Context, userID string) ([]domain.Tree, error)
	GetPens(ctx context.Context, userID string) ([]domain.Pen, error)

	BeginTx(ctx context.Context) (FarmTx, error)
}

// FarmTx carries the farm mutations that must run inside one transaction
type FarmTx interface {
	Tx
	LedgerTx

	// GetPlotForUpdate locks one plot row owned by userID.
	// Returns domain.ErrPlotNotFound when absent or owned by someone else.
	GetPlotForUpdate(ctx context.Context, userID, plotID string) (*domain.Plot, error)

	// SetPlotPlanted records a crop and its sowing time on an empty plot.
	SetPlotPlanted(ctx context.Context, plotID, plantType string, plantedAt time.Time) error

	// SetPlotHarvested stamps last_harvested_at so the crop regrows from now.
	SetPlotHarvested(ctx context.Context, plotID string, harvestedAt time.Time) error

	// ClearPlot resets a plot to empty.
	ClearPlot(ctx context.Context, plotID string) error

	// InsertPlot appends a new empty plot at the next position.
	InsertPlot(ctx context.Context, userID string) (*domain.Plot, error)

	GetTreeForUpdate(ctx context.Context, userID, treeID string) (*domain.Tree, error)

	// SetTreePlanted records a tree kind and its planting time on an empty slot.
	SetTreePlanted(ctx context.Context, treeID, treeType string, plantedAt time.Time) error

	// SetTreeHarvested stamps last_harvested_at so the tree regrows from now.
	SetTreeHarvested(ctx context.Context, treeID string, harvestedAt time.Time) error

	// ClearTree resets a tree slot to empty.
	ClearTree(ctx context.Context, treeID string) error

	// InsertTreeSlot appends a new empty tree slot at the next position.
	InsertTreeSlot(ctx context.Context, userID string) (*domain.Tree, error)

	GetPenForUpdate(ctx context.Context, userID, penID string) (*domain.Pen, error)

	// SetPenAnimals records the animal kind and head count on a pen.
	SetPenAnimals(ctx context.Context, penID, animalType string, count int) error

	// SetPenCollected stamps last_collected_at so timed accrual restarts.
	SetPenCollected(ctx context.Context, penID string, collectedAt time.Time) error

	// InsertPen appends a new empty pen at the next position.
	InsertPen(ctx context.Context, userID string) (*domain.Pen, error)
}
