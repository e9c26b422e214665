package store

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mealmax/internal/meal"
)

func TestCreateMeal(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id, err := s.CreateMeal(ctx, "Pasta", "Italian", 10.0, meal.DifficultyMed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	m, err := s.GetMealByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, meal.Meal{ID: 1, Name: "Pasta", Cuisine: "Italian", Price: 10.0, Difficulty: meal.DifficultyMed}, m)
}

func TestCreateMeal_InvalidPrice(t *testing.T) {
	s := createTestStore(t)

	for _, price := range []float64{0, -5, math.NaN()} {
		_, err := s.CreateMeal(context.Background(), "Pasta", "Italian", price, meal.DifficultyMed)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	}
}

func TestCreateMeal_InvalidDifficulty(t *testing.T) {
	s := createTestStore(t)

	_, err := s.CreateMeal(context.Background(), "Pasta", "Italian", 10, meal.Difficulty("EXTREME"))
	require.Error(t, err)
	assert.ErrorIs(t, err, meal.ErrInvalidMeal)
}

func TestCreateMeal_Duplicate(t *testing.T) {
	s := createTestStore(t)
	createTestMeal(t, s, "Pasta", "Italian", 10, meal.DifficultyMed)

	_, err := s.CreateMeal(context.Background(), "Pasta", "Italian", 12, meal.DifficultyLow)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateMeal)
	assert.Contains(t, err.Error(), "Pasta")
}

func TestCreateMeal_DuplicateOfDeleted(t *testing.T) {
	s := createTestStore(t)
	id := createTestMeal(t, s, "Pasta", "Italian", 10, meal.DifficultyMed)
	require.NoError(t, s.DeleteMeal(context.Background(), id))

	_, err := s.CreateMeal(context.Background(), "Pasta", "Italian", 10, meal.DifficultyMed)
	assert.ErrorIs(t, err, ErrDuplicateMeal, "names stay reserved after soft delete")
}

func TestCreateMeal_InfinitePrice(t *testing.T) {
	s := createTestStore(t)
	id := createTestMeal(t, s, "Ultra Expensive Meal", "Gourmet", math.Inf(1), meal.DifficultyHigh)

	m, err := s.GetMealByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, math.IsInf(m.Price, 1))
}

func TestDeleteMeal(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	id := createTestMeal(t, s, "Pasta", "Italian", 10, meal.DifficultyMed)

	require.NoError(t, s.DeleteMeal(ctx, id))

	var deleted bool
	require.NoError(t, s.db.QueryRow("SELECT deleted FROM meals WHERE id = ?", id).Scan(&deleted))
	assert.True(t, deleted, "row is kept and flagged")

	err := s.DeleteMeal(ctx, id)
	assert.ErrorIs(t, err, ErrMealDeleted)
}

func TestDeleteMeal_NotFound(t *testing.T) {
	s := createTestStore(t)
	err := s.DeleteMeal(context.Background(), 999)
	assert.ErrorIs(t, err, ErrMealNotFound)
}

func TestClearMeals(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestMeal(t, s, "Pasta", "Italian", 10, meal.DifficultyMed)
	createTestMeal(t, s, "Sushi", "Japanese", 15, meal.DifficultyHigh)

	require.NoError(t, s.ClearMeals(ctx))

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM meals").Scan(&count))
	assert.Equal(t, 0, count)

	// Table is usable again and the leaderboard index is back.
	id := createTestMeal(t, s, "Pasta", "Italian", 10, meal.DifficultyMed)
	assert.Equal(t, int64(1), id, "ids restart after the table is recreated")
	require.NoError(t, s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_meals_leaderboard'",
	).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUpdateMealStats(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	id := createTestMeal(t, s, "Pasta", "Italian", 10, meal.DifficultyMed)

	require.NoError(t, s.UpdateMealStats(ctx, id, ResultWin))
	require.NoError(t, s.UpdateMealStats(ctx, id, ResultLoss))
	require.NoError(t, s.UpdateMealStats(ctx, id, ResultWin))

	var battles, wins int
	require.NoError(t, s.db.QueryRow("SELECT battles, wins FROM meals WHERE id = ?", id).Scan(&battles, &wins))
	assert.Equal(t, 3, battles)
	assert.Equal(t, 2, wins)
}

func TestUpdateMealStats_InvalidResult(t *testing.T) {
	s := createTestStore(t)
	id := createTestMeal(t, s, "Pasta", "Italian", 10, meal.DifficultyMed)

	err := s.UpdateMealStats(context.Background(), id, "draw")
	assert.ErrorIs(t, err, ErrInvalidResult)
}

func TestRecordWinLoss_UnknownOrDeleted(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.RecordWin(ctx, 42), ErrMealNotFound)
	assert.ErrorIs(t, s.RecordLoss(ctx, 42), ErrMealNotFound)

	id := createTestMeal(t, s, "Pasta", "Italian", 10, meal.DifficultyMed)
	require.NoError(t, s.DeleteMeal(ctx, id))

	assert.ErrorIs(t, s.RecordWin(ctx, id), ErrMealDeleted)
	assert.ErrorIs(t, s.RecordLoss(ctx, id), ErrMealDeleted)

	var battles int
	require.NoError(t, s.db.QueryRow("SELECT battles FROM meals WHERE id = ?", id).Scan(&battles))
	assert.Equal(t, 0, battles, "deleted meals are not updated")
}
