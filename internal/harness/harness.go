package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/roach88/mealmax/internal/battle"
	"github.com/roach88/mealmax/internal/catalog"
	"github.com/roach88/mealmax/internal/meal"
	"github.com/roach88/mealmax/internal/random"
	"github.com/roach88/mealmax/internal/store"
	"github.com/roach88/mealmax/internal/testutil"
)

// Harness executes scenario steps against a catalog and an engine.
type Harness struct {
	store  *store.Store
	engine *battle.Engine
	logger *slog.Logger
	seq    int64
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Execution flow:
// 1. Create fresh in-memory database and seed the scenario meals
// 2. Build an engine on the scripted draws and a fixed battle id
// 3. Execute flow steps with expect validation
// 4. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in scenarios

	if _, err := catalog.Seed(ctx, st, scenario.Meals, logger); err != nil {
		return nil, fmt.Errorf("failed to seed meals: %w", err)
	}

	eng := battle.New(random.NewFixed(scenario.Draws...), st,
		battle.WithLogger(logger),
		battle.WithIDGenerator(testutil.NewFixedIDGenerator(scenario.BattleID)),
	)

	h := &Harness{
		store:  st,
		engine: eng,
		logger: logger,
	}

	result := NewResult()
	for i, step := range scenario.Flow {
		h.executeStep(ctx, i, step, result)
	}

	actx := &AssertionContext{
		Ctx:    ctx,
		Store:  st,
		Engine: eng,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeStep runs one flow step, records it in the trace and checks its
// expect clause.
func (h *Harness) executeStep(ctx context.Context, index int, step FlowStep, result *Result) {
	h.seq++
	event := TraceEvent{
		Seq:    h.seq,
		Action: step.Action,
		Meal:   step.Meal,
	}

	var (
		outcome battle.Outcome
		err     error
	)
	switch step.Action {
	case ActionStage:
		var m meal.Meal
		if m, err = h.store.GetMealByName(ctx, step.Meal); err == nil {
			err = h.engine.Stage(m)
		}
	case ActionResolve:
		if outcome, err = h.engine.ResolveDetailed(ctx); err == nil {
			event.Outcome = traceOutcome(outcome)
		}
	case ActionClear:
		h.engine.Clear()
	case ActionDelete:
		var m meal.Meal
		if m, err = h.store.GetMealByName(ctx, step.Meal); err == nil {
			err = h.store.DeleteMeal(ctx, m.ID)
		}
	}

	if err != nil {
		event.Error = err.Error()
	}
	event.Roster = rosterNames(h.engine.Staged())
	result.AddTrace(event)

	h.logger.Debug("scenario step executed", "step", index, "action", step.Action, "error", err)

	if msg := checkExpect(index, step, outcome, err); msg != "" {
		result.AddError(msg)
	}
}

// checkExpect compares a step's outcome with its expect clause.
// Returns an empty string when they match.
func checkExpect(index int, step FlowStep, outcome battle.Outcome, err error) string {
	prefix := fmt.Sprintf("flow[%d] %s", index, step.Action)
	expect := step.Expect
	switch {
	case expect == nil || (expect.Error == "" && expect.Winner == ""):
		if err != nil {
			return fmt.Sprintf("%s: unexpected error: %v", prefix, err)
		}
	case expect.Error != "":
		if err == nil {
			return fmt.Sprintf("%s: expected error %s, got success", prefix, expect.Error)
		}
		if !errors.Is(err, ErrorCases[expect.Error]) {
			return fmt.Sprintf("%s: expected error %s, got: %v", prefix, expect.Error, err)
		}
	default:
		if err != nil {
			return fmt.Sprintf("%s: expected winner %s, got error: %v", prefix, expect.Winner, err)
		}
		if outcome.Winner.Name != expect.Winner {
			return fmt.Sprintf("%s: expected winner %s, got %s", prefix, expect.Winner, outcome.Winner.Name)
		}
	}
	return ""
}

func rosterNames(roster []meal.Meal) []string {
	names := make([]string, len(roster))
	for i, m := range roster {
		names[i] = m.Name
	}
	return names
}

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
