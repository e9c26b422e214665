package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/roach88/mealmax/internal/battle"
	"github.com/roach88/mealmax/internal/meal"
	"github.com/roach88/mealmax/internal/store"
)

type Handler struct {
	catalog Catalog
	engine  *battle.Engine
	logger  *slog.Logger
}

func NewHandler(catalog Catalog, engine *battle.Engine, logger *slog.Logger) *Handler {
	return &Handler{catalog: catalog, engine: engine, logger: logger}
}

type createMealRequest struct {
	Meal       string  `json:"meal" binding:"required"`
	Cuisine    string  `json:"cuisine" binding:"required"`
	Price      float64 `json:"price"`
	Difficulty string  `json:"difficulty" binding:"required"`
}

type prepCombatantRequest struct {
	Meal string `json:"meal" binding:"required"`
}

// --------------------------------------------------
// Health
// --------------------------------------------------

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) DBCheck(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.catalog.Ping(ctx); err != nil {
		h.fail(c, err)
		return
	}
	if err := h.catalog.CheckTableExists(ctx, "meals"); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"database_status": "healthy"})
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (h *Handler) CreateMeal(c *gin.Context) {
	var req createMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: meal, cuisine, price and difficulty are required"})
		return
	}

	id, err := h.catalog.CreateMeal(c.Request.Context(), req.Meal, req.Cuisine, req.Price, meal.Difficulty(req.Difficulty))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "meal": req.Meal, "id": id})
}

func (h *Handler) DeleteMeal(c *gin.Context) {
	id, ok := mealID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteMeal(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) GetMealByID(c *gin.Context) {
	id, ok := mealID(c)
	if !ok {
		return
	}
	m, err := h.catalog.GetMealByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "meal": m})
}

func (h *Handler) GetMealByName(c *gin.Context) {
	m, err := h.catalog.GetMealByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "meal": m})
}

func (h *Handler) ClearMeals(c *gin.Context) {
	if err := h.catalog.ClearMeals(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// --------------------------------------------------
// Battle
// --------------------------------------------------

func (h *Handler) PrepCombatant(c *gin.Context) {
	var req prepCombatantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "you must name a combatant"})
		return
	}

	m, err := h.catalog.GetMealByName(c.Request.Context(), req.Meal)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.engine.Stage(m); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "combatants": h.engine.Staged()})
}

func (h *Handler) GetCombatants(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "combatants": h.engine.Staged()})
}

func (h *Handler) ClearCombatants(c *gin.Context) {
	h.engine.Clear()
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) Battle(c *gin.Context) {
	out, err := h.engine.ResolveDetailed(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"winner":    out.Winner.Name,
		"battle_id": out.BattleID,
	})
}

func (h *Handler) Leaderboard(c *gin.Context) {
	sortBy := c.DefaultQuery("sort", store.SortByWins)
	board, err := h.catalog.Leaderboard(c.Request.Context(), sortBy)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "leaderboard": board})
}

// mealID parses the :id path parameter, writing a 400 on failure.
func mealID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid meal id %q", c.Param("id"))})
		return 0, false
	}
	return id, true
}
