package battle

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/roach88/mealmax/internal/meal"
	"github.com/roach88/mealmax/internal/random"
)

// RosterSize is the number of combatants a battle needs.
const RosterSize = 2

// StatsRecorder persists battle outcomes.
// Both methods fail if the meal is unknown or deleted.
type StatsRecorder interface {
	RecordWin(ctx context.Context, id int64) error
	RecordLoss(ctx context.Context, id int64) error
}

// Outcome describes a resolved battle.
type Outcome struct {
	BattleID    string    `json:"battle_id"`
	Winner      meal.Meal `json:"winner"`
	Loser       meal.Meal `json:"loser"`
	WinnerScore float64   `json:"winner_score"`
	LoserScore  float64   `json:"loser_score"`
	Normalized  float64   `json:"normalized"`
	Draw        float64   `json:"draw"`
}

// Engine holds the staged combatants and resolves battles between them.
type Engine struct {
	mu     sync.Mutex
	roster []meal.Meal

	random random.Source
	stats  StatsRecorder
	ids    IDGenerator
	logger *slog.Logger
	tracer trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithTracer sets the tracer used for Resolve spans.
// Default: the global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// WithIDGenerator sets the battle id generator. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) {
		e.ids = g
	}
}

// New creates an empty engine drawing from src and recording results in stats.
func New(src random.Source, stats StatsRecorder, opts ...Option) *Engine {
	e := &Engine{
		roster: make([]meal.Meal, 0, RosterSize),
		random: src,
		stats:  stats,
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
		tracer: otel.Tracer("github.com/roach88/mealmax/internal/battle"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stage appends m to the roster.
// Returns ErrRosterFull if two combatants are already staged.
func (e *Engine) Stage(m meal.Meal) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.roster) >= RosterSize {
		e.logger.Error("attempted to add combatant but combatants list is full", "meal", m.Name)
		return ErrRosterFull
	}

	e.logger.Info("adding combatant to combatants list", "meal", m.Name, "id", m.ID)
	e.roster = append(e.roster, m)
	if len(e.roster) == RosterSize {
		e.logger.Info("two combatants prepped for battle",
			"first", e.roster[0].Name, "second", e.roster[1].Name)
	}
	return nil
}

// Staged returns a copy of the roster in staging order.
func (e *Engine) Staged() []meal.Meal {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]meal.Meal, len(e.roster))
	copy(out, e.roster)
	return out
}

// Len returns the number of staged combatants.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.roster)
}

// Clear empties the roster.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.logger.Info("clearing the combatants list", "count", len(e.roster))
	e.roster = e.roster[:0]
}

// Resolve runs a battle between the two staged combatants and returns the
// winner's name. See ResolveDetailed.
func (e *Engine) Resolve(ctx context.Context) (string, error) {
	out, err := e.ResolveDetailed(ctx)
	if err != nil {
		return "", err
	}
	return out.Winner.Name, nil
}

// ResolveDetailed runs a battle between the two staged combatants.
//
// The winner is recorded as a win and the loser as a loss. Both writes are
// attempted even if the first fails. The loser is evicted only after both
// writes succeed; on any error the roster is left untouched.
func (e *Engine) ResolveDetailed(ctx context.Context) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.roster) < RosterSize {
		e.logger.Error("not enough combatants to start a battle", "staged", len(e.roster))
		return Outcome{}, ErrNotEnoughCombatants
	}

	battleID := e.ids.Generate()
	ctx, span := e.tracer.Start(ctx, "battle.resolve",
		trace.WithAttributes(attribute.String("battle.id", battleID)))
	defer span.End()

	log := e.logger.With("battle_id", battleID)
	first, second := e.roster[0], e.roster[1]
	log.Info("battle started", "first", first.Name, "second", second.Name)

	s1, err := Score(first)
	if err != nil {
		return Outcome{}, fail(span, err)
	}
	s2, err := Score(second)
	if err != nil {
		return Outcome{}, fail(span, err)
	}
	log.Info("scores computed", "first", first.Name, "first_score", s1, "second", second.Name, "second_score", s2)

	normalized := Normalize(s1, s2)
	log.Info("normalized delta", "value", normalized)

	draw, err := e.random.Next(ctx)
	if err != nil {
		log.Error("failed to draw random number", "error", err)
		return Outcome{}, fail(span, err)
	}
	log.Info("random number drawn", "value", draw)

	winnerIdx := pick(s1, s2, normalized, draw)
	scores := [RosterSize]float64{s1, s2}
	winner, loser := e.roster[winnerIdx], e.roster[1-winnerIdx]

	winErr := e.stats.RecordWin(ctx, winner.ID)
	lossErr := e.stats.RecordLoss(ctx, loser.ID)
	if err := errors.Join(winErr, lossErr); err != nil {
		log.Error("failed to record battle result", "winner", winner.Name, "loser", loser.Name, "error", err)
		return Outcome{}, fail(span, err)
	}

	e.roster = append(e.roster[:0], winner)
	log.Info("the winner is", "winner", winner.Name, "loser", loser.Name)

	span.SetAttributes(
		attribute.Float64("battle.normalized", normalized),
		attribute.Float64("battle.draw", draw),
		attribute.Float64("battle.winner_score", scores[winnerIdx]),
		attribute.Float64("battle.loser_score", scores[1-winnerIdx]),
		attribute.Int64("battle.winner_id", winner.ID),
		attribute.Int64("battle.loser_id", loser.ID),
	)

	return Outcome{
		BattleID:    battleID,
		Winner:      winner,
		Loser:       loser,
		WinnerScore: scores[winnerIdx],
		LoserScore:  scores[1-winnerIdx],
		Normalized:  normalized,
		Draw:        draw,
	}, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
