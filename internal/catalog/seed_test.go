package catalog

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mealmax/internal/meal"
	"github.com/roach88/mealmax/internal/store"
)

const seedYAML = `
meals:
  - meal: Spaghetti
    cuisine: Italian
    price: 12.5
    difficulty: MED
  - meal: Sushi
    cuisine: Japanese
    price: 15
    difficulty: HIGH
`

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadSeed(t *testing.T) {
	meals, err := LoadSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)

	require.Len(t, meals, 2)
	assert.Equal(t, SeedMeal{Meal: "Spaghetti", Cuisine: "Italian", Price: 12.5, Difficulty: "MED"}, meals[0])
	assert.Equal(t, 15.0, meals[1].Price)
}

func TestLoadSeed_Empty(t *testing.T) {
	meals, err := LoadSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, meals)
	assert.Empty(t, meals)
}

func TestLoadSeed_UnknownField(t *testing.T) {
	_, err := LoadSeed(strings.NewReader("meals:\n  - meal: Pasta\n    cusine: Italian\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cusine")
}

func TestLoadSeed_BadDifficulty(t *testing.T) {
	_, err := LoadSeed(strings.NewReader("meals:\n  - meal: Pasta\n    cuisine: Italian\n    price: 3\n    difficulty: EASY\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, meal.ErrInvalidMeal)
	assert.Contains(t, err.Error(), "Pasta")
}

func TestSeed(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	meals, err := LoadSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)

	res, err := Seed(ctx, s, meals, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Spaghetti", "Sushi"}, res.Created)
	assert.Empty(t, res.Skipped)

	m, err := s.GetMealByName(ctx, "Sushi")
	require.NoError(t, err)
	assert.Equal(t, meal.DifficultyHigh, m.Difficulty)

	// Seeding again skips everything
	res, err = Seed(ctx, s, meals, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Created)
	assert.Equal(t, []string{"Spaghetti", "Sushi"}, res.Skipped)
}

func TestSeed_StopsOnInvalidMeal(t *testing.T) {
	s := openStore(t)
	meals := []SeedMeal{
		{Meal: "Soup", Cuisine: "French", Price: 4, Difficulty: "LOW"},
		{Meal: "Free Lunch", Cuisine: "None", Price: 0, Difficulty: "LOW"},
		{Meal: "Pie", Cuisine: "British", Price: 6, Difficulty: "MED"},
	}

	res, err := Seed(context.Background(), s, meals, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidPrice)
	assert.Equal(t, []string{"Soup"}, res.Created)
}
