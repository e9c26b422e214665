// Package api exposes the catalog and the battle engine over HTTP.
package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/roach88/mealmax/internal/battle"
	"github.com/roach88/mealmax/internal/meal"
	"github.com/roach88/mealmax/internal/store"
)

// Catalog is the subset of *store.Store the API needs.
type Catalog interface {
	Ping(ctx context.Context) error
	CheckTableExists(ctx context.Context, name string) error
	CreateMeal(ctx context.Context, name, cuisine string, price float64, difficulty meal.Difficulty) (int64, error)
	DeleteMeal(ctx context.Context, id int64) error
	ClearMeals(ctx context.Context) error
	GetMealByID(ctx context.Context, id int64) (meal.Meal, error)
	GetMealByName(ctx context.Context, name string) (meal.Meal, error)
	Leaderboard(ctx context.Context, sortBy string) ([]store.LeaderboardEntry, error)
}

// Options configures the router.
type Options struct {
	Logger      *slog.Logger
	CORSOrigins []string
}

// NewRouter wires every route onto a new gin engine.
func NewRouter(catalog Catalog, engine *battle.Engine, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(logger))

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", RequestIDHeader},
			ExposeHeaders:    []string{RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	h := NewHandler(catalog, engine, logger)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Catalog
		api.POST("/create-meal", h.CreateMeal)
		api.DELETE("/delete-meal/:id", h.DeleteMeal)
		api.GET("/get-meal-by-id/:id", h.GetMealByID)
		api.GET("/get-meal-by-name/:name", h.GetMealByName)
		api.DELETE("/clear-meals", h.ClearMeals)

		// Battle
		api.POST("/prep-combatant", h.PrepCombatant)
		api.GET("/get-combatants", h.GetCombatants)
		api.POST("/clear-combatants", h.ClearCombatants)
		api.GET("/battle", h.Battle)

		api.GET("/leaderboard", h.Leaderboard)
	}

	return r
}
