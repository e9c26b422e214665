package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/mealmax/internal/meal"
)

// Battle results accepted by UpdateMealStats.
const (
	ResultWin  = "win"
	ResultLoss = "loss"
)

// CreateMeal inserts a new meal and returns its id.
//
// Price must be strictly positive (zero is legal on a meal.Meal, but not in
// the catalog). Returns ErrDuplicateMeal if a meal with the same name exists,
// including a soft-deleted one.
func (s *Store) CreateMeal(ctx context.Context, name, cuisine string, price float64, difficulty meal.Difficulty) (int64, error) {
	if math.IsNaN(price) || price <= 0 {
		return 0, fmt.Errorf("%w: %v, must be a positive number", ErrInvalidPrice, price)
	}
	m, err := meal.New(0, name, cuisine, price, difficulty)
	if err != nil {
		return 0, fmt.Errorf("create meal: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO meals (meal, cuisine, price, difficulty)
		VALUES (?, ?, ?, ?)
	`, m.Name, m.Cuisine, m.Price, string(m.Difficulty))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateMeal, m.Name)
		}
		return 0, fmt.Errorf("create meal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create meal: last insert id: %w", err)
	}
	return id, nil
}

// DeleteMeal marks a meal as deleted.
// Returns ErrMealNotFound or ErrMealDeleted if there is no live meal with id.
func (s *Store) DeleteMeal(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete meal: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := checkLive(ctx, tx, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "UPDATE meals SET deleted = TRUE WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete meal: commit: %w", err)
	}
	return nil
}

// ClearMeals drops and recreates the meals table, discarding every meal.
func (s *Store) ClearMeals(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("clear meals: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS meals"); err != nil {
		return fmt.Errorf("clear meals: drop: %w", err)
	}
	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("clear meals: recreate: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("clear meals: commit: %w", err)
	}
	return nil
}

// UpdateMealStats records a battle result ("win" or "loss") for a live meal.
// A win increments battles and wins; a loss increments battles only.
func (s *Store) UpdateMealStats(ctx context.Context, id int64, result string) error {
	var query string
	switch result {
	case ResultWin:
		query = "UPDATE meals SET battles = battles + 1, wins = wins + 1 WHERE id = ?"
	case ResultLoss:
		query = "UPDATE meals SET battles = battles + 1 WHERE id = ?"
	default:
		return fmt.Errorf("%w: %q, expected 'win' or 'loss'", ErrInvalidResult, result)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update meal stats: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := checkLive(ctx, tx, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("update meal stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update meal stats: commit: %w", err)
	}
	return nil
}

// RecordWin records a battle win for id.
func (s *Store) RecordWin(ctx context.Context, id int64) error {
	return s.UpdateMealStats(ctx, id, ResultWin)
}

// RecordLoss records a battle loss for id.
func (s *Store) RecordLoss(ctx context.Context, id int64) error {
	return s.UpdateMealStats(ctx, id, ResultLoss)
}

// checkLive returns ErrMealNotFound or ErrMealDeleted unless id is a live meal.
func checkLive(ctx context.Context, tx *sql.Tx, id int64) error {
	var deleted bool
	err := tx.QueryRowContext(ctx, "SELECT deleted FROM meals WHERE id = ?", id).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: id %d", ErrMealNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("check meal %d: %w", id, err)
	}
	if deleted {
		return fmt.Errorf("%w: id %d", ErrMealDeleted, id)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
