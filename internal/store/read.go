package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/roach88/mealmax/internal/meal"
)

// Leaderboard sort orders.
const (
	SortByWins   = "wins"
	SortByWinPct = "win_pct"
)

// LeaderboardEntry is a meal with its battle record.
type LeaderboardEntry struct {
	meal.Meal
	Battles int64   `json:"battles"`
	Wins    int64   `json:"wins"`
	WinPct  float64 `json:"win_pct"` // percentage, one decimal
}

// GetMealByID returns the live meal with the given id.
func (s *Store) GetMealByID(ctx context.Context, id int64) (meal.Meal, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, meal, cuisine, price, difficulty, deleted
		FROM meals WHERE id = ?
	`, id)
	m, err := scanLiveMeal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return meal.Meal{}, fmt.Errorf("%w: id %d", ErrMealNotFound, id)
	}
	if errors.Is(err, ErrMealDeleted) {
		return meal.Meal{}, fmt.Errorf("%w: id %d", ErrMealDeleted, id)
	}
	if err != nil {
		return meal.Meal{}, fmt.Errorf("get meal %d: %w", id, err)
	}
	return m, nil
}

// GetMealByName returns the live meal with the given name.
// The name is NFC-normalized before lookup.
func (s *Store) GetMealByName(ctx context.Context, name string) (meal.Meal, error) {
	name = meal.NormalizeName(name)
	row := s.db.QueryRowContext(ctx, `
		SELECT id, meal, cuisine, price, difficulty, deleted
		FROM meals WHERE meal = ?
	`, name)
	m, err := scanLiveMeal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return meal.Meal{}, fmt.Errorf("%w: name %s", ErrMealNotFound, name)
	}
	if errors.Is(err, ErrMealDeleted) {
		return meal.Meal{}, fmt.Errorf("%w: name %s", ErrMealDeleted, name)
	}
	if err != nil {
		return meal.Meal{}, fmt.Errorf("get meal %q: %w", name, err)
	}
	return m, nil
}

// Leaderboard returns live meals that have fought at least one battle,
// ordered by sortBy (SortByWins or SortByWinPct) descending. Ties are broken
// by id ascending.
//
// Returns empty slice (not nil) if no meal qualifies.
func (s *Store) Leaderboard(ctx context.Context, sortBy string) ([]LeaderboardEntry, error) {
	query := `
		SELECT id, meal, cuisine, price, difficulty, battles, wins, (wins * 1.0 / battles) AS win_pct
		FROM meals WHERE deleted = FALSE AND battles > 0
	`
	switch sortBy {
	case SortByWinPct:
		query += " ORDER BY win_pct DESC, id ASC"
	case SortByWins:
		query += " ORDER BY wins DESC, id ASC"
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidSort, sortBy)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []LeaderboardEntry{}
	for rows.Next() {
		var (
			e          LeaderboardEntry
			difficulty string
			ratio      float64
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Cuisine, &e.Price, &difficulty, &e.Battles, &e.Wins, &ratio); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		e.Difficulty = meal.Difficulty(difficulty)
		e.WinPct = math.Round(ratio*1000) / 10
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}

	return entries, nil
}

// scanLiveMeal scans a meal row and rejects soft-deleted meals.
// Returns sql.ErrNoRows if the row is missing and ErrMealDeleted if deleted.
func scanLiveMeal(row *sql.Row) (meal.Meal, error) {
	var (
		id         int64
		name       string
		cuisine    string
		price      float64
		difficulty string
		deleted    bool
	)
	if err := row.Scan(&id, &name, &cuisine, &price, &difficulty, &deleted); err != nil {
		return meal.Meal{}, err
	}
	if deleted {
		return meal.Meal{}, ErrMealDeleted
	}
	m, err := meal.New(id, name, cuisine, price, meal.Difficulty(difficulty))
	if err != nil {
		return meal.Meal{}, fmt.Errorf("corrupt meal row %d: %w", id, err)
	}
	return m, nil
}
