// Package catalog loads meals into the store in bulk from YAML seed files.
//
// A seed file looks like:
//
//	meals:
//	  - meal: Spaghetti
//	    cuisine: Italian
//	    price: 12.5
//	    difficulty: MED
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/roach88/mealmax/internal/meal"
	"github.com/roach88/mealmax/internal/store"
)

// SeedMeal is one entry of a seed file.
type SeedMeal struct {
	Meal       string  `yaml:"meal"`
	Cuisine    string  `yaml:"cuisine"`
	Price      float64 `yaml:"price"`
	Difficulty string  `yaml:"difficulty"`
}

// SeedFile is the top-level seed document.
type SeedFile struct {
	Meals []SeedMeal `yaml:"meals"`
}

// Creator is the subset of *store.Store used for seeding.
type Creator interface {
	CreateMeal(ctx context.Context, name, cuisine string, price float64, difficulty meal.Difficulty) (int64, error)
}

// SeedResult summarizes a Seed call.
type SeedResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

// LoadSeed parses a seed document. Unknown keys are rejected so that typos
// like "cusine" fail loudly instead of producing empty fields.
func LoadSeed(r io.Reader) ([]SeedMeal, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f SeedFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return []SeedMeal{}, nil
		}
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	for i, m := range f.Meals {
		if _, err := meal.ParseDifficulty(m.Difficulty); err != nil {
			return nil, fmt.Errorf("seed entry %d (%s): %w", i, m.Meal, err)
		}
	}

	if f.Meals == nil {
		f.Meals = []SeedMeal{}
	}
	return f.Meals, nil
}

// Seed creates every meal, skipping names that already exist.
// Any other error aborts seeding; meals created before the error are kept.
func Seed(ctx context.Context, c Creator, meals []SeedMeal, logger *slog.Logger) (SeedResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	res := SeedResult{Created: []string{}, Skipped: []string{}}
	for _, m := range meals {
		_, err := c.CreateMeal(ctx, m.Meal, m.Cuisine, m.Price, meal.Difficulty(m.Difficulty))
		switch {
		case err == nil:
			logger.Info("meal seeded", "meal", m.Meal)
			res.Created = append(res.Created, m.Meal)
		case errors.Is(err, store.ErrDuplicateMeal):
			logger.Info("meal already exists, skipping", "meal", m.Meal)
			res.Skipped = append(res.Skipped, m.Meal)
		default:
			return res, fmt.Errorf("seed %q: %w", m.Meal, err)
		}
	}
	return res, nil
}
