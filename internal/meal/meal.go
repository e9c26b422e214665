package meal

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidMeal is returned when a Meal fails construction-time validation.
var ErrInvalidMeal = errors.New("invalid meal")

// Difficulty is the preparation difficulty of a meal.
type Difficulty string

const (
	DifficultyLow  Difficulty = "LOW"
	DifficultyMed  Difficulty = "MED"
	DifficultyHigh Difficulty = "HIGH"
)

// Difficulties lists the legal difficulty values in ascending order.
var Difficulties = []Difficulty{DifficultyLow, DifficultyMed, DifficultyHigh}

// Valid reports whether d is one of LOW, MED, HIGH.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyLow, DifficultyMed, DifficultyHigh:
		return true
	}
	return false
}

func (d Difficulty) String() string {
	return string(d)
}

// ParseDifficulty converts s into a Difficulty.
// Matching is exact; "low" is not accepted.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: difficulty must be 'LOW', 'MED', or 'HIGH', got %q", ErrInvalidMeal, s)
	}
	return d, nil
}

// Meal is a catalog entry and, once staged, a battle combatant.
type Meal struct {
	ID         int64      `json:"id"`
	Name       string     `json:"meal"`
	Cuisine    string     `json:"cuisine"`
	Price      float64    `json:"price"`
	Difficulty Difficulty `json:"difficulty"`
}

// New builds a validated Meal.
func New(id int64, name, cuisine string, price float64, difficulty Difficulty) (Meal, error) {
	m := Meal{
		ID:         id,
		Name:       norm.NFC.String(name),
		Cuisine:    norm.NFC.String(cuisine),
		Price:      price,
		Difficulty: difficulty,
	}
	if err := m.Validate(); err != nil {
		return Meal{}, err
	}
	return m, nil
}

// Validate checks the record invariants.
func (m Meal) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidMeal)
	}
	if m.Cuisine == "" {
		return fmt.Errorf("%w: cuisine must not be empty", ErrInvalidMeal)
	}
	if math.IsNaN(m.Price) || m.Price < 0 {
		return fmt.Errorf("%w: price must be a positive value", ErrInvalidMeal)
	}
	if !m.Difficulty.Valid() {
		return fmt.Errorf("%w: difficulty must be 'LOW', 'MED', or 'HIGH', got %q", ErrInvalidMeal, string(m.Difficulty))
	}
	return nil
}

// CuisineLength returns the number of characters (runes) in the cuisine.
func (m Meal) CuisineLength() int {
	return utf8.RuneCountInString(m.Cuisine)
}

// NormalizeName applies the same normalization New applies to names.
// Lookups by name must use it so that composed and decomposed spellings match.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}
