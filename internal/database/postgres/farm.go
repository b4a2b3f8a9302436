package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/repository"
)

type farmRepository struct {
	db *pgxpool.Pool
}

// NewFarmRepository creates a new PostgreSQL farm repository
func NewFarmRepository(db *pgxpool.Pool) repository.Farm {
	return &farmRepository{db: db}
}

const plotColumns = `id, user_id, position, plant_type, planted_at, last_harvested_at, created_at`
const treeColumns = `id, user_id, position, tree_type, planted_at, last_harvested_at, created_at`
const penColumns = `id, user_id, position, animal_type, animal_count, last_collected_at, created_at`

func scanPlot(row pgx.Row) (*domain.Plot, error) {
	var p domain.Plot
	var plantType *string
	err := row.Scan(&p.ID, &p.UserID, &p.Position, &plantType, &p.PlantedAt, &p.LastHarvestedAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if plantType != nil {
		p.PlantType = *plantType
	}
	return &p, nil
}

func scanTree(row pgx.Row) (*domain.Tree, error) {
	var t domain.Tree
	var treeType *string
	err := row.Scan(&t.ID, &t.UserID, &t.Position, &treeType, &t.PlantedAt, &t.LastHarvestedAt, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if treeType != nil {
		t.TreeType = *treeType
	}
	return &t, nil
}

func scanPen(row pgx.Row) (*domain.Pen, error) {
	var p domain.Pen
	var animalType *string
	err := row.Scan(&p.ID, &p.UserID, &p.Position, &animalType, &p.AnimalCount, &p.LastCollectedAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if animalType != nil {
		p.AnimalType = *animalType
	}
	return &p, nil
}

func (r *farmRepository) GetPlots(ctx context.Context, userID string) ([]domain.Plot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+plotColumns+` FROM farm_plots WHERE user_id = $1 ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plots: %w", err)
	}
	defer rows.Close()

	plots := []domain.Plot{}
	for rows.Next() {
		plot, err := scanPlot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plot: %w", err)
		}
		plots = append(plots, *plot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read plot rows: %w", err)
	}
	return plots, nil
}

func (r *farmRepository) GetTrees(ctx context.Context, userID string) ([]domain.Tree, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+treeColumns+` FROM orchard_trees WHERE user_id = $1 ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trees: %w", err)
	}
	defer rows.Close()

	trees := []domain.Tree{}
	for rows.Next() {
		tree, err := scanTree(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tree: %w", err)
		}
		trees = append(trees, *tree)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tree rows: %w", err)
	}
	return trees, nil
}

func (r *farmRepository) GetPens(ctx context.Context, userID string) ([]domain.Pen, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+penColumns+` FROM animal_pens WHERE user_id = $1 ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pens: %w", err)
	}
	defer rows.Close()

	pens := []domain.Pen{}
	for rows.Next() {
		pen, err := scanPen(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pen: %w", err)
		}
		pens = append(pens, *pen)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pen rows: %w", err)
	}
	return pens, nil
}

func (r *farmRepository) BeginTx(ctx context.Context) (repository.FarmTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &farmTx{txBase{tx: tx}}, nil
}

type farmTx struct {
	txBase
}

func (t *farmTx) GetPlotForUpdate(ctx context.Context, userID, plotID string) (*domain.Plot, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT `+plotColumns+` FROM farm_plots WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		plotID, userID)
	plot, err := scanPlot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPlotNotFound, plotID)
		}
		return nil, fmt.Errorf("failed to lock plot: %w", mapConflictError(err))
	}
	return plot, nil
}

func (t *farmTx) SetPlotPlanted(ctx context.Context, plotID, plantType string, plantedAt time.Time) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE farm_plots SET plant_type = $2, planted_at = $3, last_harvested_at = NULL WHERE id = $1`,
		plotID, plantType, plantedAt)
	if err != nil {
		return fmt.Errorf("failed to plant plot: %w", mapConflictError(err))
	}
	return nil
}

func (t *farmTx) SetPlotHarvested(ctx context.Context, plotID string, harvestedAt time.Time) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE farm_plots SET last_harvested_at = $2 WHERE id = $1`,
		plotID, harvestedAt)
	if err != nil {
		return fmt.Errorf("failed to stamp plot harvest: %w", mapConflictError(err))
	}
	return nil
}

func (t *farmTx) ClearPlot(ctx context.Context, plotID string) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE farm_plots SET plant_type = NULL, planted_at = NULL, last_harvested_at = NULL WHERE id = $1`,
		plotID)
	if err != nil {
		return fmt.Errorf("failed to clear plot: %w", mapConflictError(err))
	}
	return nil
}

func (t *farmTx) InsertPlot(ctx context.Context, userID string) (*domain.Plot, error) {
	row := t.tx.QueryRow(ctx, `
		INSERT INTO farm_plots (user_id, position)
		SELECT $1, COALESCE(MAX(position), 0) + 1 FROM farm_plots WHERE user_id = $1
		RETURNING `+plotColumns,
		userID)
	plot, err := scanPlot(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: concurrent plot purchase", domain.ErrTransientConflict)
		}
		return nil, fmt.Errorf("failed to insert plot: %w", mapConflictError(err))
	}
	return plot, nil
}

func (t *farmTx) GetTreeForUpdate(ctx context.Context, userID, treeID string) (*domain.Tree, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT `+treeColumns+` FROM orchard_trees WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		treeID, userID)
	tree, err := scanTree(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPlotNotFound, treeID)
		}
		return nil, fmt.Errorf("failed to lock tree: %w", mapConflictError(err))
	}
	return tree, nil
}

func (t *farmTx) SetTreePlanted(ctx context.Context, treeID, treeType string, plantedAt time.Time) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE orchard_trees SET tree_type = $2, planted_at = $3, last_harvested_at = NULL WHERE id = $1`,
		treeID, treeType, plantedAt)
	if err != nil {
		return fmt.Errorf("failed to plant tree: %w", mapConflictError(err))
	}
	return nil
}

func (t *farmTx) SetTreeHarvested(ctx context.Context, treeID string, harvestedAt time.Time) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE orchard_trees SET last_harvested_at = $2 WHERE id = $1`,
		treeID, harvestedAt)
	if err != nil {
		return fmt.Errorf("failed to stamp tree harvest: %w", mapConflictError(err))
	}
	return nil
}

func (t *farmTx) ClearTree(ctx context.Context, treeID string) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE orchard_trees SET tree_type = NULL, planted_at = NULL, last_harvested_at = NULL WHERE id = $1`,
		treeID)
	if err != nil {
		return fmt.Errorf("failed to clear tree: %w", mapConflictError(err))
	}
	return nil
}

func (t *farmTx) InsertTreeSlot(ctx context.Context, userID string) (*domain.Tree, error) {
	row := t.tx.QueryRow(ctx, `
		INSERT INTO orchard_trees (user_id, position)
		SELECT $1, COALESCE(MAX(position), 0) + 1 FROM orchard_trees WHERE user_id = $1
		RETURNING `+treeColumns,
		userID)
	tree, err := scanTree(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: concurrent tree slot purchase", domain.ErrTransientConflict)
		}
		return nil, fmt.Errorf("failed to insert tree slot: %w", mapConflictError(err))
	}
	return tree, nil
}

func (t *farmTx) GetPenForUpdate(ctx context.Context, userID, penID string) (*domain.Pen, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT `+penColumns+` FROM animal_pens WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		penID, userID)
	pen, err := scanPen(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPenNotFound, penID)
		}
		return nil, fmt.Errorf("failed to lock pen: %w", mapConflictError(err))
	}
	return pen, nil
}

func (t *farmTx) SetPenAnimals(ctx context.Context, penID, animalType string, count int) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE animal_pens SET animal_type = $2, animal_count = $3 WHERE id = $1`,
		penID, animalType, count)
	if err != nil {
		return fmt.Errorf("failed to set pen animals: %w", mapConflictError(err))
	}
	return nil
}

func (t *farmTx) SetPenCollected(ctx context.Context, penID string, collectedAt time.Time) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE animal_pens SET last_collected_at = $2 WHERE id = $1`,
		penID, collectedAt)
	if err != nil {
		return fmt.Errorf("failed to stamp pen collection: %w", mapConflictError(err))
	}
	return nil
}

func (t *farmTx) InsertPen(ctx context.Context, userID string) (*domain.Pen, error) {
	row := t.tx.QueryRow(ctx, `
		INSERT INTO animal_pens (user_id, position)
		SELECT $1, COALESCE(MAX(position), 0) + 1 FROM animal_pens WHERE user_id = $1
		RETURNING `+penColumns,
		userID)
	pen, err := scanPen(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: concurrent pen purchase", domain.ErrTransientConflict)
		}
		return nil, fmt.Errorf("failed to insert pen: %w", mapConflictError(err))
	}
	return pen, nil
}
