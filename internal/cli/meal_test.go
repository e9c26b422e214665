package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mealmax/internal/meal"
	"github.com/roach88/mealmax/internal/store"
)

func TestMealCreate(t *testing.T) {
	opts := newTestOptions(t)

	out, err := executeCommand(NewMealCommand(opts),
		"create", "--name", "Sushi", "--cuisine", "Japanese", "--price", "12.5", "--difficulty", "med")
	require.NoError(t, err)
	assert.Equal(t, "Created meal 1: Sushi\n", out)

	withStore(t, opts.Database, func(st *store.Store) {
		m, err := st.GetMealByName(context.Background(), "Sushi")
		require.NoError(t, err)
		assert.Equal(t, meal.DifficultyMed, m.Difficulty)
		assert.Equal(t, 12.5, m.Price)
	})
}

func TestMealCreate_MissingFlags(t *testing.T) {
	opts := newTestOptions(t)

	_, err := executeCommand(NewMealCommand(opts), "create", "--name", "Sushi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestMealCreate_InvalidDifficulty(t *testing.T) {
	opts := newTestOptions(t)

	_, err := executeCommand(NewMealCommand(opts),
		"create", "--name", "Sushi", "--cuisine", "Japanese", "--price", "12.5", "--difficulty", "EXTREME")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestMealCreate_Duplicate(t *testing.T) {
	opts := newTestOptions(t)
	seedTestMeals(t, opts.Database, sushi)

	out, err := executeCommand(NewMealCommand(opts),
		"create", "--name", "Sushi", "--cuisine", "Japanese", "--price", "3", "--difficulty", "LOW")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, store.ErrDuplicateMeal)
	assert.Contains(t, out, "Error [DUPLICATE]")
}

func TestMealCreate_NonPositivePrice(t *testing.T) {
	opts := newTestOptions(t)
	opts.Format = "json"

	out, err := executeCommand(NewMealCommand(opts),
		"create", "--name", "Air", "--cuisine", "None", "--price", "0", "--difficulty", "LOW")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestMealDelete(t *testing.T) {
	opts := newTestOptions(t)
	ids := seedTestMeals(t, opts.Database, sushi)

	out, err := executeCommand(NewMealCommand(opts), "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "Deleted meal 1\n", out)

	withStore(t, opts.Database, func(st *store.Store) {
		_, err := st.GetMealByID(context.Background(), ids[0])
		assert.ErrorIs(t, err, store.ErrMealDeleted)
	})

	_, err = executeCommand(NewMealCommand(opts), "delete", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrMealDeleted)
}

func TestMealDelete_InvalidID(t *testing.T) {
	for _, arg := range []string{"abc", "0", "-3"} {
		t.Run(arg, func(t *testing.T) {
			opts := newTestOptions(t)
			_, err := executeCommand(NewMealCommand(opts), "delete", "--", arg)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), "invalid meal id")
		})
	}
}

func TestMealGet(t *testing.T) {
	opts := newTestOptions(t)
	seedTestMeals(t, opts.Database, sushi, toast)

	out, err := executeCommand(NewMealCommand(opts), "get", "2")
	require.NoError(t, err)
	assert.Equal(t, "ID:         2\nMeal:       Toast\nCuisine:    British\nPrice:      2.00\nDifficulty: LOW\n", out)
}

func TestMealGet_ByNameJSON(t *testing.T) {
	opts := newTestOptions(t)
	opts.Format = "json"
	seedTestMeals(t, opts.Database, sushi)

	out, err := executeCommand(NewMealCommand(opts), "get", "--by-name", "Sushi")
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   meal.Meal `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(1), resp.Data.ID)
	assert.Equal(t, "Sushi", resp.Data.Name)
	assert.Equal(t, "Japanese", resp.Data.Cuisine)
}

func TestMealGet_NotFound(t *testing.T) {
	opts := newTestOptions(t)

	out, err := executeCommand(NewMealCommand(opts), "get", "9")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, store.ErrMealNotFound)
	assert.Equal(t, "Error [NOT_FOUND]: meal not found: id 9\n", out)
}

func TestMealClear(t *testing.T) {
	opts := newTestOptions(t)
	seedTestMeals(t, opts.Database, sushi, toast)

	out, err := executeCommand(NewMealCommand(opts), "clear")
	require.NoError(t, err)
	assert.Equal(t, "Catalog cleared\n", out)

	withStore(t, opts.Database, func(st *store.Store) {
		_, err := st.GetMealByName(context.Background(), "Sushi")
		assert.ErrorIs(t, err, store.ErrMealNotFound)
	})
}
