package harness

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/mealmax/internal/battle"
	"github.com/roach88/mealmax/internal/catalog"
	"github.com/roach88/mealmax/internal/random"
	"github.com/roach88/mealmax/internal/store"
)

// Scenario defines a scripted battle run.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// BattleID is the fixed id given to every battle.
	// If empty, defaults to "test-battle-default".
	BattleID string `yaml:"battle_id,omitempty"`

	// Meals are created in the catalog before the flow runs.
	Meals []catalog.SeedMeal `yaml:"meals"`

	// Draws are returned by the random source in order; the last one repeats.
	Draws []float64 `yaml:"draws,omitempty"`

	// Flow contains the steps to execute.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final roster, catalog and trace.
	Assertions []Assertion `yaml:"assertions"`
}

// FlowStep is one engine or catalog operation.
type FlowStep struct {
	// Action is one of stage, resolve, clear, delete.
	Action string `yaml:"action"`

	// Meal names the meal for stage and delete.
	Meal string `yaml:"meal,omitempty"`

	// Expect specifies the expected outcome.
	// If nil, the step must succeed.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a step.
// At most one of Winner and Error is set.
type ExpectClause struct {
	// Winner is the expected winner of a resolve step.
	Winner string `yaml:"winner,omitempty"`

	// Error is the expected failure, a key of ErrorCases.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates state after the flow.
type Assertion struct {
	// Type specifies the assertion type:
	// - "roster": staged meal names equal Meals, in order
	// - "meal_stats": Meal has Battles battles and Wins wins
	// - "leaderboard": leaderboard for Sort lists Meals, in order
	// - "trace_count": Action appears exactly Count times
	Type string `yaml:"type"`

	// Meal names the meal (used by meal_stats).
	Meal string `yaml:"meal,omitempty"`

	// Meals is the expected ordered list (used by roster, leaderboard).
	Meals []string `yaml:"meals,omitempty"`

	// Battles and Wins are the expected counters (used by meal_stats).
	Battles int64 `yaml:"battles,omitempty"`
	Wins    int64 `yaml:"wins,omitempty"`

	// Sort is the leaderboard sort key (used by leaderboard). Default: wins.
	Sort string `yaml:"sort,omitempty"`

	// Action and Count are used by trace_count.
	Action string `yaml:"action,omitempty"`
	Count  int    `yaml:"count,omitempty"`
}

// Flow action constants.
const (
	ActionStage   = "stage"
	ActionResolve = "resolve"
	ActionClear   = "clear"
	ActionDelete  = "delete"
)

// Assertion type constants.
const (
	AssertRoster      = "roster"
	AssertMealStats   = "meal_stats"
	AssertLeaderboard = "leaderboard"
	AssertTraceCount  = "trace_count"
)

// ErrorCases maps the error names usable in expect clauses to the errors
// they match with errors.Is.
var ErrorCases = map[string]error{
	"ROSTER_FULL":           battle.ErrRosterFull,
	"NOT_ENOUGH_COMBATANTS": battle.ErrNotEnoughCombatants,
	"UNKNOWN_DIFFICULTY":    battle.ErrUnknownDifficulty,
	"NOT_FOUND":             store.ErrMealNotFound,
	"DELETED":               store.ErrMealDeleted,
	"RANDOM_UNAVAILABLE":    random.ErrUnavailable,
	"RANDOM_MALFORMED":      random.ErrMalformed,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	// Reject unknown fields (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return errors.New("name is required")
	}

	if s.Description == "" {
		return errors.New("description is required")
	}

	if len(s.Flow) == 0 {
		return errors.New("flow list is required and must be non-empty")
	}

	for i, d := range s.Draws {
		if math.IsNaN(d) || d < 0 || d > 1 {
			return fmt.Errorf("draws[%d]: %v is outside [0,1]", i, d)
		}
	}

	for i, step := range s.Flow {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, step *FlowStep) error {
	switch step.Action {
	case ActionStage, ActionDelete:
		if step.Meal == "" {
			return fmt.Errorf("flow[%d]: meal is required for %s", index, step.Action)
		}
	case ActionResolve, ActionClear:
	case "":
		return fmt.Errorf("flow[%d]: action is required", index)
	default:
		return fmt.Errorf("flow[%d]: unknown action %q", index, step.Action)
	}

	if step.Expect == nil {
		return nil
	}
	if step.Expect.Winner != "" && step.Expect.Error != "" {
		return fmt.Errorf("flow[%d].expect: winner and error are mutually exclusive", index)
	}
	if step.Expect.Winner != "" && step.Action != ActionResolve {
		return fmt.Errorf("flow[%d].expect: winner is only valid for resolve", index)
	}
	if step.Expect.Error != "" {
		if _, ok := ErrorCases[step.Expect.Error]; !ok {
			return fmt.Errorf("flow[%d].expect: unknown error %q", index, step.Expect.Error)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertRoster:
	case AssertMealStats:
		if a.Meal == "" {
			return fmt.Errorf("assertions[%d]: meal is required for meal_stats", index)
		}
		if a.Wins > a.Battles {
			return fmt.Errorf("assertions[%d]: wins cannot exceed battles", index)
		}
	case AssertLeaderboard:
		if a.Sort != "" && a.Sort != store.SortByWins && a.Sort != store.SortByWinPct {
			return fmt.Errorf("assertions[%d]: unknown sort %q", index, a.Sort)
		}
	case AssertTraceCount:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
