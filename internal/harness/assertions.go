package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/mealmax/internal/battle"
	"github.com/roach88/mealmax/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s", event.Seq, event.Action)
		if event.Meal != "" {
			fmt.Fprintf(&buf, " %s", event.Meal)
		}
		if event.Error != "" {
			fmt.Fprintf(&buf, " -> error: %s", event.Error)
		} else if event.Outcome != nil {
			fmt.Fprintf(&buf, " -> winner: %s", event.Outcome.Winner)
		}
		fmt.Fprintln(&buf)
	}

	return buf.String()
}

// AssertionContext provides what assertions need beyond the trace.
type AssertionContext struct {
	Ctx    context.Context
	Store  *store.Store
	Engine *battle.Engine
}

// assertRoster checks the staged meals, in order.
func assertRoster(trace []TraceEvent, assertion Assertion, eng *battle.Engine) error {
	actual := rosterNames(eng.Staged())
	expected := assertion.Meals
	if expected == nil {
		expected = []string{}
	}
	if slices.Equal(actual, expected) {
		return nil
	}
	return &AssertionError{
		Type:     AssertRoster,
		Expected: fmt.Sprintf("%v", expected),
		Actual:   fmt.Sprintf("%v", actual),
		Trace:    trace,
	}
}

// assertMealStats checks one meal's battle counters. Meals that never fought
// are absent from the leaderboard and count as zero.
func assertMealStats(trace []TraceEvent, assertion Assertion, actx *AssertionContext) error {
	entries, err := actx.Store.Leaderboard(actx.Ctx, store.SortByWins)
	if err != nil {
		return fmt.Errorf("meal_stats: %w", err)
	}

	var battles, wins int64
	for _, e := range entries {
		if e.Name == assertion.Meal {
			battles, wins = e.Battles, e.Wins
			break
		}
	}

	if battles == assertion.Battles && wins == assertion.Wins {
		return nil
	}
	return &AssertionError{
		Type:     AssertMealStats,
		Expected: fmt.Sprintf("%s: %d battles, %d wins", assertion.Meal, assertion.Battles, assertion.Wins),
		Actual:   fmt.Sprintf("%s: %d battles, %d wins", assertion.Meal, battles, wins),
		Trace:    trace,
	}
}

// assertLeaderboard checks the leaderboard meal order.
func assertLeaderboard(trace []TraceEvent, assertion Assertion, actx *AssertionContext) error {
	sortBy := assertion.Sort
	if sortBy == "" {
		sortBy = store.SortByWins
	}
	entries, err := actx.Store.Leaderboard(actx.Ctx, sortBy)
	if err != nil {
		return fmt.Errorf("leaderboard: %w", err)
	}

	actual := make([]string, len(entries))
	for i, e := range entries {
		actual[i] = e.Name
	}
	expected := assertion.Meals
	if expected == nil {
		expected = []string{}
	}
	if slices.Equal(actual, expected) {
		return nil
	}
	return &AssertionError{
		Type:     AssertLeaderboard,
		Expected: fmt.Sprintf("%s order %v", sortBy, expected),
		Actual:   fmt.Sprintf("%s order %v", sortBy, actual),
		Trace:    trace,
	}
}

// assertTraceCount checks that an action appears exactly N times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Action == assertion.Action {
			count++
		}
	}

	if count == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceCount,
		Expected: fmt.Sprintf("%s appears %d times", assertion.Action, assertion.Count),
		Actual:   fmt.Sprintf("%s appears %d times", assertion.Action, count),
		Trace:    trace,
	}
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertRoster:
			err = assertRoster(result.Trace, a, actx.Engine)
		case AssertMealStats:
			err = assertMealStats(result.Trace, a, actx)
		case AssertLeaderboard:
			err = assertLeaderboard(result.Trace, a, actx)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}
