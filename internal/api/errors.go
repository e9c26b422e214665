package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roach88/mealmax/internal/battle"
	"github.com/roach88/mealmax/internal/meal"
	"github.com/roach88/mealmax/internal/random"
	"github.com/roach88/mealmax/internal/store"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, meal.ErrInvalidMeal),
		errors.Is(err, store.ErrInvalidPrice),
		errors.Is(err, store.ErrInvalidSort),
		errors.Is(err, battle.ErrNotEnoughCombatants):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrMealNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrMealDeleted):
		return http.StatusGone
	case errors.Is(err, store.ErrDuplicateMeal),
		errors.Is(err, battle.ErrRosterFull):
		return http.StatusConflict
	case errors.Is(err, random.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, random.ErrMalformed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.FullPath(), "error", err, "request_id", c.GetString(requestIDKey))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
