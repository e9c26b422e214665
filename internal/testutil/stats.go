package testutil

import (
	"context"
	"sync"
)

// StatsCall records one call made to a StatsRecorder.
type StatsCall struct {
	Result string // "win" or "loss"
	ID     int64
}

// StatsRecorder is an in-memory battle.StatsRecorder for tests.
//
// WinErr and LossErr, when set, are returned from every RecordWin and
// RecordLoss call respectively. Calls are recorded even when they fail.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StatsRecorder struct {
	mu      sync.Mutex
	calls   []StatsCall
	WinErr  error
	LossErr error
}

// NewStatsRecorder creates an empty recorder.
func NewStatsRecorder() *StatsRecorder {
	return &StatsRecorder{}
}

// RecordWin records a win for id.
func (r *StatsRecorder) RecordWin(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, StatsCall{Result: "win", ID: id})
	return r.WinErr
}

// RecordLoss records a loss for id.
func (r *StatsRecorder) RecordLoss(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, StatsCall{Result: "loss", ID: id})
	return r.LossErr
}

// Calls returns a copy of the recorded calls in order.
func (r *StatsRecorder) Calls() []StatsCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]StatsCall, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset forgets all recorded calls. Configured errors are kept.
func (r *StatsRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
