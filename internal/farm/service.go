package farm

import (
	"context"
	"fmt"
	"time"

	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/growth"
	"github.com/plushka/stitchfarm/internal/logger"
	"github.com/plushka/stitchfarm/internal/metrics"
	"github.com/plushka/stitchfarm/internal/repository"
)

// Config carries the farm tunables resolved at startup
type Config struct {
	GrowTime    time.Duration
	CollectTime time.Duration
	PlotCost    int
	PenCost     int
	TreeCost    int
}

// Invalidator drops cached profile state after a balance mutation
type Invalidator interface {
	Invalidate(userID string)
}

// HarvestResult reports what a harvest credited to the pantry
type HarvestResult struct {
	ItemType string `json:"item_type"`
	Quantity int    `json:"quantity"`
}

// FeedResult reports a feed-mode conversion
type FeedResult struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	FeedType string `json:"feed_type"`
	FeedUsed int    `json:"feed_used"`
}

// CollectResult reports a timed-mode collection
type CollectResult struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// PlotView is a plot with its evaluated growth timer
type PlotView struct {
	domain.Plot
	Growth *growth.Status `json:"growth,omitempty"`
}

// TreeView is a tree slot with its evaluated growth timer
type TreeView struct {
	domain.Tree
	Growth *growth.Status `json:"growth,omitempty"`
}

// PenView is a pen with its evaluated accrual timer (timed-mode kinds only)
type PenView struct {
	domain.Pen
	Accrual *growth.Status `json:"accrual,omitempty"`
}

// Service defines the interface for farm operations
type Service interface {
	Plant(ctx context.Context, userID, plotID, cropKind string) error
	HarvestPlot(ctx context.Context, userID, plotID string) (*HarvestResult, error)
	ClearPlot(ctx context.Context, userID, plotID string) error

	PlantTree(ctx context.Context, userID, treeID, treeKind string) error
	HarvestTree(ctx context.Context, userID, treeID string) (*HarvestResult, error)
	ClearTree(ctx context.Context, userID, treeID string) error

	FeedAnimal(ctx context.Context, userID, penID string, quantity int) (*FeedResult, error)
	CollectProduct(ctx context.Context, userID, penID string) (*CollectResult, error)
	PlaceAnimal(ctx context.Context, userID, penID, animalKind string) (*domain.Pen, error)

	BuyPlot(ctx context.Context, userID string) (*domain.Plot, error)
	BuyPen(ctx context.Context, userID string) (*domain.Pen, error)
	BuyTreeSlot(ctx context.Context, userID string) (*domain.Tree, error)

	Plots(ctx context.Context, userID string) ([]PlotView, error)
	Trees(ctx context.Context, userID string) ([]TreeView, error)
	Pens(ctx context.Context, userID string) ([]PenView, error)
}

type service struct {
	repo     repository.Farm
	accounts Invalidator
	catalog  *domain.Catalog
	cfg      Config
}

// NewService creates a new farm service
func NewService(repo repository.Farm, accounts Invalidator, catalog *domain.Catalog, cfg Config) Service {
	return &service{
		repo:     repo,
		accounts: accounts,
		catalog:  catalog,
		cfg:      cfg,
	}
}

func (s *service) Plant(ctx context.Context, userID, plotID, cropKind string) error {
	log := logger.FromContext(ctx)
	log.Info("Plant called", "userID", userID, "plotID", plotID, "crop", cropKind)

	kind, ok := s.catalog.Crop(cropKind)
	if !ok {
		return fmt.Errorf("%w: crop %q", domain.ErrUnknownKind, cropKind)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, tx)

	plot, err := tx.GetPlotForUpdate(ctx, userID, plotID)
	if err != nil {
		return err
	}
	if plot.Planted() {
		return fmt.Errorf("%w: plot %d already holds %s", domain.ErrPlotOccupied, plot.Position, plot.PlantType)
	}

	balance, err := tx.GetBalanceForUpdate(ctx, userID)
	if err != nil {
		return err
	}
	if balance < kind.Cost {
		return fmt.Errorf("%w: have %d, seed costs %d", domain.ErrInsufficientFunds, balance, kind.Cost)
	}
	if err := tx.AdjustBalance(ctx, userID, -kind.Cost); err != nil {
		return err
	}
	if err := tx.SetPlotPlanted(ctx, plotID, kind.Type, time.Now().UTC()); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.accounts.Invalidate(userID)
	metrics.CoinsSpent.WithLabelValues("seed").Add(float64(kind.Cost))
	return nil
}

func (s *service) HarvestPlot(ctx context.Context, userID, plotID string) (*HarvestResult, error) {
	log := logger.FromContext(ctx)
	log.Info("HarvestPlot called", "userID", userID, "plotID", plotID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	plot, err := tx.GetPlotForUpdate(ctx, userID, plotID)
	if err != nil {
		return nil, err
	}
	if !plot.Planted() {
		return nil, fmt.Errorf("%w: plot %d", domain.ErrNotPlanted, plot.Position)
	}

	now := time.Now().UTC()
	status := growth.Evaluate(plot.GrowthStart(), s.cfg.GrowTime, now)
	if !status.Ready {
		return nil, fmt.Errorf("%w: ready in %d minutes", domain.ErrNotReady, status.RemainingMinutes)
	}

	kind, ok := s.catalog.Crop(plot.PlantType)
	if !ok {
		return nil, fmt.Errorf("%w: crop %q", domain.ErrUnknownKind, plot.PlantType)
	}

	if err := tx.AddPantry(ctx, userID, kind.Type, kind.Yield); err != nil {
		return nil, err
	}
	if err := tx.SetPlotHarvested(ctx, plotID, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.CropsHarvested.WithLabelValues(kind.Type).Add(float64(kind.Yield))
	return &HarvestResult{ItemType: kind.Type, Quantity: kind.Yield}, nil
}

func (s *service) ClearPlot(ctx context.Context, userID, plotID string) error {
	log := logger.FromContext(ctx)
	log.Info("ClearPlot called", "userID", userID, "plotID", plotID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, tx)

	// Lock establishes ownership. Clearing an empty plot is a no-op, not an error.
	if _, err := tx.GetPlotForUpdate(ctx, userID, plotID); err != nil {
		return err
	}
	if err := tx.ClearPlot(ctx, plotID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *service) PlantTree(ctx context.Context, userID, treeID, treeKind string) error {
	log := logger.FromContext(ctx)
	log.Info("PlantTree called", "userID", userID, "treeID", treeID, "tree", treeKind)

	kind, ok := s.catalog.Tree(treeKind)
	if !ok {
		return fmt.Errorf("%w: tree %q", domain.ErrUnknownKind, treeKind)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, tx)

	tree, err := tx.GetTreeForUpdate(ctx, userID, treeID)
	if err != nil {
		return err
	}
	if tree.Planted() {
		return fmt.Errorf("%w: slot %d already holds %s", domain.ErrPlotOccupied, tree.Position, tree.TreeType)
	}

	balance, err := tx.GetBalanceForUpdate(ctx, userID)
	if err != nil {
		return err
	}
	if balance < kind.Cost {
		return fmt.Errorf("%w: have %d, sapling costs %d", domain.ErrInsufficientFunds, balance, kind.Cost)
	}
	if err := tx.AdjustBalance(ctx, userID, -kind.Cost); err != nil {
		return err
	}
	if err := tx.SetTreePlanted(ctx, treeID, kind.Type, time.Now().UTC()); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.accounts.Invalidate(userID)
	metrics.CoinsSpent.WithLabelValues("sapling").Add(float64(kind.Cost))
	return nil
}

func (s *service) HarvestTree(ctx context.Context, userID, treeID string) (*HarvestResult, error) {
	log := logger.FromContext(ctx)
	log.Info("HarvestTree called", "userID", userID, "treeID", treeID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	tree, err := tx.GetTreeForUpdate(ctx, userID, treeID)
	if err != nil {
		return nil, err
	}
	if !tree.Planted() {
		return nil, fmt.Errorf("%w: slot %d", domain.ErrNotPlanted, tree.Position)
	}

	now := time.Now().UTC()
	status := growth.Evaluate(tree.GrowthStart(), s.cfg.GrowTime, now)
	if !status.Ready {
		return nil, fmt.Errorf("%w: ready in %d minutes", domain.ErrNotReady, status.RemainingMinutes)
	}

	kind, ok := s.catalog.Tree(tree.TreeType)
	if !ok {
		return nil, fmt.Errorf("%w: tree %q", domain.ErrUnknownKind, tree.TreeType)
	}

	if err := tx.AddPantry(ctx, userID, kind.Type, kind.Yield); err != nil {
		return nil, err
	}
	if err := tx.SetTreeHarvested(ctx, treeID, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.CropsHarvested.WithLabelValues(kind.Type).Add(float64(kind.Yield))
	return &HarvestResult{ItemType: kind.Type, Quantity: kind.Yield}, nil
}

func (s *service) ClearTree(ctx context.Context, userID, treeID string) error {
	log := logger.FromContext(ctx)
	log.Info("ClearTree called", "userID", userID, "treeID", treeID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetTreeForUpdate(ctx, userID, treeID); err != nil {
		return err
	}
	if err := tx.ClearTree(ctx, treeID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *service) FeedAnimal(ctx context.Context, userID, penID string, quantity int) (*FeedResult, error) {
	log := logger.FromContext(ctx)
	log.Info("FeedAnimal called", "userID", userID, "penID", penID, "quantity", quantity)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidQuantity)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	pen, err := tx.GetPenForUpdate(ctx, userID, penID)
	if err != nil {
		return nil, err
	}
	if !pen.Stocked() {
		return nil, fmt.Errorf("%w: pen %d", domain.ErrPenEmpty, pen.Position)
	}

	kind, ok := s.catalog.Animal(pen.AnimalType)
	if !ok {
		return nil, fmt.Errorf("%w: animal %q", domain.ErrUnknownKind, pen.AnimalType)
	}
	if kind.Mode != domain.AccrualFeed {
		return nil, fmt.Errorf("%w: %s pens pay out on collection", domain.ErrWrongState, kind.Type)
	}

	feedNeeded := quantity * kind.FeedPerProduct
	stock, err := tx.GetPantryQuantityForUpdate(ctx, userID, kind.FeedType)
	if err != nil {
		return nil, err
	}
	if stock < feedNeeded {
		return nil, fmt.Errorf("%w: have %d %s, need %d", domain.ErrInsufficientFeed, stock, kind.FeedType, feedNeeded)
	}

	if err := tx.RemovePantry(ctx, userID, kind.FeedType, feedNeeded); err != nil {
		return nil, err
	}
	if err := tx.AddPantry(ctx, userID, kind.Product, quantity); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.AnimalsFed.WithLabelValues(kind.Type).Add(float64(quantity))
	return &FeedResult{
		Product:  kind.Product,
		Quantity: quantity,
		FeedType: kind.FeedType,
		FeedUsed: feedNeeded,
	}, nil
}

func (s *service) CollectProduct(ctx context.Context, userID, penID string) (*CollectResult, error) {
	log := logger.FromContext(ctx)
	log.Info("CollectProduct called", "userID", userID, "penID", penID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	pen, err := tx.GetPenForUpdate(ctx, userID, penID)
	if err != nil {
		return nil, err
	}
	if !pen.Stocked() {
		return nil, fmt.Errorf("%w: pen %d", domain.ErrPenEmpty, pen.Position)
	}

	kind, ok := s.catalog.Animal(pen.AnimalType)
	if !ok {
		return nil, fmt.Errorf("%w: animal %q", domain.ErrUnknownKind, pen.AnimalType)
	}
	if kind.Mode != domain.AccrualTimed {
		return nil, fmt.Errorf("%w: %s pens pay out on feeding", domain.ErrWrongState, kind.Type)
	}

	now := time.Now().UTC()
	status := growth.Evaluate(pen.AccrualStart(), s.cfg.CollectTime, now)
	if !status.Ready {
		return nil, fmt.Errorf("%w: ready in %d minutes", domain.ErrNotReady, status.RemainingMinutes)
	}

	if err := tx.AddPantry(ctx, userID, kind.Product, pen.AnimalCount); err != nil {
		return nil, err
	}
	if err := tx.SetPenCollected(ctx, penID, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.ProductsCollected.WithLabelValues(kind.Type).Add(float64(pen.AnimalCount))
	return &CollectResult{Product: kind.Product, Quantity: pen.AnimalCount}, nil
}

// PlaceAnimal stocks a pen with one more animal of a kind. An empty pen
// accepts any kind; a stocked pen only accepts its current kind.
func (s *service) PlaceAnimal(ctx context.Context, userID, penID, animalKind string) (*domain.Pen, error) {
	log := logger.FromContext(ctx)
	log.Info("PlaceAnimal called", "userID", userID, "penID", penID, "animal", animalKind)

	kind, ok := s.catalog.Animal(animalKind)
	if !ok {
		return nil, fmt.Errorf("%w: animal %q", domain.ErrUnknownKind, animalKind)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	pen, err := tx.GetPenForUpdate(ctx, userID, penID)
	if err != nil {
		return nil, err
	}
	if pen.AnimalType != "" && pen.AnimalType != kind.Type {
		return nil, fmt.Errorf("%w: pen %d holds %s", domain.ErrWrongState, pen.Position, pen.AnimalType)
	}
	if pen.AnimalCount >= kind.MaxPerPen {
		return nil, fmt.Errorf("%w: %s pens hold at most %d", domain.ErrPenFull, kind.Type, kind.MaxPerPen)
	}

	balance, err := tx.GetBalanceForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance < kind.Cost {
		return nil, fmt.Errorf("%w: have %d, %s costs %d", domain.ErrInsufficientFunds, balance, kind.Type, kind.Cost)
	}
	if err := tx.AdjustBalance(ctx, userID, -kind.Cost); err != nil {
		return nil, err
	}
	if err := tx.SetPenAnimals(ctx, penID, kind.Type, pen.AnimalCount+1); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.accounts.Invalidate(userID)
	metrics.CoinsSpent.WithLabelValues("animal").Add(float64(kind.Cost))

	pen.AnimalType = kind.Type
	pen.AnimalCount++
	return pen, nil
}

func (s *service) BuyPlot(ctx context.Context, userID string) (*domain.Plot, error) {
	log := logger.FromContext(ctx)
	log.Info("BuyPlot called", "userID", userID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	if err := s.debitExpansion(ctx, tx, userID, s.cfg.PlotCost); err != nil {
		return nil, err
	}
	plot, err := tx.InsertPlot(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.accounts.Invalidate(userID)
	metrics.CoinsSpent.WithLabelValues("expansion").Add(float64(s.cfg.PlotCost))
	return plot, nil
}

func (s *service) BuyPen(ctx context.Context, userID string) (*domain.Pen, error) {
	log := logger.FromContext(ctx)
	log.Info("BuyPen called", "userID", userID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	if err := s.debitExpansion(ctx, tx, userID, s.cfg.PenCost); err != nil {
		return nil, err
	}
	pen, err := tx.InsertPen(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.accounts.Invalidate(userID)
	metrics.CoinsSpent.WithLabelValues("expansion").Add(float64(s.cfg.PenCost))
	return pen, nil
}

func (s *service) BuyTreeSlot(ctx context.Context, userID string) (*domain.Tree, error) {
	log := logger.FromContext(ctx)
	log.Info("BuyTreeSlot called", "userID", userID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	if err := s.debitExpansion(ctx, tx, userID, s.cfg.TreeCost); err != nil {
		return nil, err
	}
	tree, err := tx.InsertTreeSlot(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.accounts.Invalidate(userID)
	metrics.CoinsSpent.WithLabelValues("expansion").Add(float64(s.cfg.TreeCost))
	return tree, nil
}

func (s *service) debitExpansion(ctx context.Context, tx repository.FarmTx, userID string, cost int) error {
	balance, err := tx.GetBalanceForUpdate(ctx, userID)
	if err != nil {
		return err
	}
	if balance < cost {
		return fmt.Errorf("%w: have %d, expansion costs %d", domain.ErrInsufficientFunds, balance, cost)
	}
	return tx.AdjustBalance(ctx, userID, -cost)
}

func (s *service) Plots(ctx context.Context, userID string) ([]PlotView, error) {
	plots, err := s.repo.GetPlots(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	views := make([]PlotView, 0, len(plots))
	for _, plot := range plots {
		view := PlotView{Plot: plot}
		if plot.Planted() {
			status := growth.Evaluate(plot.GrowthStart(), s.cfg.GrowTime, now)
			view.Growth = &status
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *service) Trees(ctx context.Context, userID string) ([]TreeView, error) {
	trees, err := s.repo.GetTrees(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	views := make([]TreeView, 0, len(trees))
	for _, tree := range trees {
		view := TreeView{Tree: tree}
		if tree.Planted() {
			status := growth.Evaluate(tree.GrowthStart(), s.cfg.GrowTime, now)
			view.Growth = &status
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *service) Pens(ctx context.Context, userID string) ([]PenView, error) {
	pens, err := s.repo.GetPens(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	views := make([]PenView, 0, len(pens))
	for _, pen := range pens {
		view := PenView{Pen: pen}
		if kind, ok := s.catalog.Animal(pen.AnimalType); ok && kind.Mode == domain.AccrualTimed && pen.Stocked() {
			status := growth.Evaluate(pen.AccrualStart(), s.cfg.CollectTime, now)
			view.Accrual = &status
		}
		views = append(views, view)
	}
	return views, nil
}
