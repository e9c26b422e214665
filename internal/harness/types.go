package harness

import "github.com/roach88/mealmax/internal/battle"

// TraceEvent records one executed flow step.
type TraceEvent struct {
	Seq     int64         `json:"seq"`
	Action  string        `json:"action"`
	Meal    string        `json:"meal,omitempty"`
	Outcome *TraceOutcome `json:"outcome,omitempty"`
	Error   string        `json:"error,omitempty"`
	Roster  []string      `json:"roster"` // staged meals after the step
}

// TraceOutcome is the trace form of a resolved battle.
// Normalized is rounded to four decimals so traces are stable across
// platforms.
type TraceOutcome struct {
	BattleID    string  `json:"battle_id"`
	Winner      string  `json:"winner"`
	Loser       string  `json:"loser"`
	WinnerScore float64 `json:"winner_score"`
	LoserScore  float64 `json:"loser_score"`
	Normalized  float64 `json:"normalized"`
	Draw        float64 `json:"draw"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success.
	// True if every expect clause and assertion matched.
	Pass bool `json:"pass"`

	// Trace contains every executed step in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}

func traceOutcome(o battle.Outcome) *TraceOutcome {
	return &TraceOutcome{
		BattleID:    o.BattleID,
		Winner:      o.Winner.Name,
		Loser:       o.Loser.Name,
		WinnerScore: o.WinnerScore,
		LoserScore:  o.LoserScore,
		Normalized:  round4(o.Normalized),
		Draw:        o.Draw,
	}
}
