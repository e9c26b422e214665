package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/mealmax/internal/meal"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestMeal inserts a meal and returns its id.
func createTestMeal(t *testing.T, s *Store, name, cuisine string, price float64, d meal.Difficulty) int64 {
	t.Helper()
	id, err := s.CreateMeal(context.Background(), name, cuisine, price, d)
	if err != nil {
		t.Fatalf("CreateMeal(%q) failed: %v", name, err)
	}
	return id
}

// recordResults applies wins and losses to a meal.
func recordResults(t *testing.T, s *Store, id int64, wins, losses int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < wins; i++ {
		if err := s.RecordWin(ctx, id); err != nil {
			t.Fatalf("RecordWin(%d) failed: %v", id, err)
		}
	}
	for i := 0; i < losses; i++ {
		if err := s.RecordLoss(ctx, id); err != nil {
			t.Fatalf("RecordLoss(%d) failed: %v", id, err)
		}
	}
}
