package random

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

var (
	// ErrUnavailable indicates the source could not be reached.
	ErrUnavailable = errors.New("random source unavailable")

	// ErrMalformed indicates the source returned something other than a float in [0,1].
	ErrMalformed = errors.New("random source returned malformed value")
)

// Source yields one draw in [0,1] per call.
type Source interface {
	Next(ctx context.Context) (float64, error)
}

// Parse converts a raw payload into a draw.
// Surrounding whitespace is ignored. NaN and values outside [0,1] are malformed.
func Parse(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid response %q", ErrMalformed, s)
	}
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, fmt.Errorf("%w: %v is outside [0,1]", ErrMalformed, v)
	}
	return v, nil
}

// Fixed returns a scripted sequence of draws.
//
// Once the sequence is exhausted the last value repeats. An empty Fixed
// reports ErrUnavailable, which makes it usable as a "source is down" stub.
//
// Thread-safety: Fixed is safe for concurrent use via internal mutex.
type Fixed struct {
	mu     sync.Mutex
	values []float64
	idx    int
	calls  int
}

// NewFixed creates a Fixed source returning values in order.
func NewFixed(values ...float64) *Fixed {
	return &Fixed{values: values}
}

// Next returns the next scripted value.
func (f *Fixed) Next(ctx context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(f.values) == 0 {
		return 0, fmt.Errorf("%w: no values scripted", ErrUnavailable)
	}
	v := f.values[f.idx]
	if f.idx < len(f.values)-1 {
		f.idx++
	}
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, fmt.Errorf("%w: %v is outside [0,1]", ErrMalformed, v)
	}
	return v, nil
}

// Calls returns how many times Next has been called.
func (f *Fixed) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Local draws from math/rand/v2. It never fails.
type Local struct{}

// Next returns a uniformly distributed value in [0,1).
func (Local) Next(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	//nolint:gosec // Battle draws are not security sensitive.
	return rand.Float64(), nil
}
