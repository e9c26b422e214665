package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func battleScenario(assertions ...Assertion) *Scenario {
	return &Scenario{
		Name:        "assertions",
		Description: "x",
		Meals:       sushiAndToast(),
		Draws:       []float64{0.2},
		Flow: []FlowStep{
			{Action: ActionStage, Meal: "Sushi"},
			{Action: ActionStage, Meal: "Toast"},
			{Action: ActionResolve},
		},
		Assertions: assertions,
	}
}

func TestAssertions_Pass(t *testing.T) {
	result, err := Run(battleScenario(
		Assertion{Type: AssertRoster, Meals: []string{"Sushi"}},
		Assertion{Type: AssertMealStats, Meal: "Sushi", Battles: 1, Wins: 1},
		Assertion{Type: AssertMealStats, Meal: "Toast", Battles: 1, Wins: 0},
		Assertion{Type: AssertLeaderboard, Meals: []string{"Sushi", "Toast"}},
		Assertion{Type: AssertLeaderboard, Sort: "win_pct", Meals: []string{"Sushi", "Toast"}},
		Assertion{Type: AssertTraceCount, Action: ActionStage, Count: 2},
	))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestAssertions_Fail(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		want      string
	}{
		{
			name:      "roster",
			assertion: Assertion{Type: AssertRoster, Meals: []string{"Toast"}},
			want:      "Expected: [Toast]",
		},
		{
			name:      "empty roster",
			assertion: Assertion{Type: AssertRoster},
			want:      "Actual: [Sushi]",
		},
		{
			name:      "meal_stats",
			assertion: Assertion{Type: AssertMealStats, Meal: "Toast", Battles: 1, Wins: 1},
			want:      "Actual: Toast: 1 battles, 0 wins",
		},
		{
			name:      "meal_stats unknown meal counts zero",
			assertion: Assertion{Type: AssertMealStats, Meal: "Ramen", Battles: 1},
			want:      "Actual: Ramen: 0 battles, 0 wins",
		},
		{
			name:      "leaderboard",
			assertion: Assertion{Type: AssertLeaderboard, Meals: []string{"Toast", "Sushi"}},
			want:      "Actual: wins order [Sushi Toast]",
		},
		{
			name:      "trace_count",
			assertion: Assertion{Type: AssertTraceCount, Action: ActionResolve, Count: 2},
			want:      "Actual: resolve appears 1 times",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Run(battleScenario(tt.assertion))
			require.NoError(t, err)
			assert.False(t, result.Pass)
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], "assertions[0]")
			assert.Contains(t, result.Errors[0], tt.want)
			assert.Contains(t, result.Errors[0], "[3] resolve -> winner: Sushi")
		})
	}
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertRoster,
		Expected: "[A]",
		Actual:   "[]",
		Trace: []TraceEvent{
			{Seq: 1, Action: ActionStage, Meal: "A", Error: "meal not found: name A"},
			{Seq: 2, Action: ActionClear},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: roster")
	assert.Contains(t, msg, "  Expected: [A]")
	assert.Contains(t, msg, "  Actual: []")
	assert.Contains(t, msg, "  [1] stage A -> error: meal not found: name A")
	assert.Contains(t, msg, "  [2] clear\n")
}
