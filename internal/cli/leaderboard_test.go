package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mealmax/internal/store"
)

// seedBattle records one win for winner and one loss for loser.
func seedBattle(t *testing.T, path string, winner, loser int64) {
	t.Helper()
	withStore(t, path, func(st *store.Store) {
		require.NoError(t, st.RecordWin(context.Background(), winner))
		require.NoError(t, st.RecordLoss(context.Background(), loser))
	})
}

func TestLeaderboard_TextGolden(t *testing.T) {
	opts := newTestOptions(t)
	ids := seedTestMeals(t, opts.Database, spaghetti, sushi, toast)
	seedBattle(t, opts.Database, ids[1], ids[0])

	out, err := executeCommand(NewLeaderboardCommand(opts))
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "leaderboard_text", []byte(out))
}

func TestLeaderboard_Empty(t *testing.T) {
	opts := newTestOptions(t)
	seedTestMeals(t, opts.Database, sushi)

	out, err := executeCommand(NewLeaderboardCommand(opts))
	require.NoError(t, err)
	assert.Equal(t, "No battles fought yet.\n", out)
}

func TestLeaderboard_JSONByWinPct(t *testing.T) {
	opts := newTestOptions(t)
	opts.Format = "json"
	ids := seedTestMeals(t, opts.Database, sushi, toast, spaghetti)
	seedBattle(t, opts.Database, ids[0], ids[1])
	seedBattle(t, opts.Database, ids[0], ids[2])
	seedBattle(t, opts.Database, ids[2], ids[0])

	out, err := executeCommand(NewLeaderboardCommand(opts), "--sort", "win_pct")
	require.NoError(t, err)

	var resp struct {
		Status string                   `json:"status"`
		Data   []store.LeaderboardEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "Sushi", resp.Data[0].Name)
	assert.Equal(t, 66.7, resp.Data[0].WinPct)
	assert.Equal(t, "Spaghetti", resp.Data[1].Name)
	assert.Equal(t, 50.0, resp.Data[1].WinPct)
	assert.Equal(t, "Toast", resp.Data[2].Name)
	assert.Equal(t, 0.0, resp.Data[2].WinPct)
}

func TestLeaderboard_InvalidSort(t *testing.T) {
	opts := newTestOptions(t)

	out, err := executeCommand(NewLeaderboardCommand(opts), "--sort", "price")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidSort)
	assert.Contains(t, out, "Error [INVALID_INPUT]")
}
