package battle

import (
	"fmt"
	"math"

	"github.com/roach88/mealmax/internal/meal"
)

var difficultyPenalty = map[meal.Difficulty]float64{
	meal.DifficultyLow:  3,
	meal.DifficultyMed:  2,
	meal.DifficultyHigh: 1,
}

// Score computes a meal's fighting score:
//
//	price * runes(cuisine) - penalty(difficulty)
//
// with penalty LOW=3, MED=2, HIGH=1. Score depends only on m.
func Score(m meal.Meal) (float64, error) {
	penalty, ok := difficultyPenalty[m.Difficulty]
	if !ok {
		return 0, &Error{
			Code:    CodeUnknownDifficulty,
			Message: fmt.Sprintf("unknown difficulty %q for meal %q", string(m.Difficulty), m.Name),
		}
	}
	return m.Price*float64(m.CuisineLength()) - penalty, nil
}

// Normalize maps the gap between two scores onto [0.5, 1) with a logistic
// curve. It is symmetric in its arguments.
func Normalize(s1, s2 float64) float64 {
	delta := math.Abs(s1-s2) / 100
	return 1 / (1 + math.Exp(-delta))
}

// pick returns the roster index of the winner.
// Index 0 counts as the higher scorer when s1 == s2.
func pick(s1, s2, normalized, draw float64) int {
	higher, lower := 0, 1
	if s2 > s1 {
		higher, lower = 1, 0
	}
	if draw < normalized {
		return higher
	}
	return lower
}
