package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mealmax/internal/meal"
	"github.com/roach88/mealmax/internal/store"
)

// testDBPath returns a database path inside a per-test temp directory.
func testDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

// newTestOptions returns root options pointed at a fresh database with
// .env loading disabled.
func newTestOptions(t *testing.T) *RootOptions {
	t.Helper()
	return &RootOptions{Format: "text", Database: testDBPath(t)}
}

// executeCommand runs cmd with args and returns combined stdout.
// Logs go to a separate buffer so they never pollute asserted output.
func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type testMeal struct {
	name, cuisine string
	price         float64
	difficulty    meal.Difficulty
}

// seedTestMeals creates meals directly in the database at path and returns
// their ids in order.
func seedTestMeals(t *testing.T, path string, meals ...testMeal) []int64 {
	t.Helper()
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	ids := make([]int64, len(meals))
	for i, m := range meals {
		ids[i], err = st.CreateMeal(context.Background(), m.name, m.cuisine, m.price, m.difficulty)
		require.NoError(t, err)
	}
	return ids
}

func withStore(t *testing.T, path string, fn func(st *store.Store)) {
	t.Helper()
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()
	fn(st)
}

var (
	sushi     = testMeal{"Sushi", "Japanese", 12.5, meal.DifficultyMed}
	toast     = testMeal{"Toast", "British", 2, meal.DifficultyLow}
	spaghetti = testMeal{"Spaghetti", "Italian", 9, meal.DifficultyHigh}
)
