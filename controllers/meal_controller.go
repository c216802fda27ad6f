package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/services"
)

type MealController struct {
	Svc *services.MealService
}

func NewMealController(svc *services.MealService) *MealController {
	return &MealController{Svc: svc}
}

type mealBody struct {
	Type  string                   `json:"type" binding:"required,oneof=breakfast lunch dinner snack"`
	AteAt time.Time                `json:"ate_at"`
	Items []services.FoodItemInput `json:"items"`
}

func (h *MealController) LogMeal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body mealBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.Svc.AddMeal(userID, body.Type, body.AteAt, body.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *MealController) ListMeals(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	from, to, ok := dateRangeParams(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)

	meals, err := h.Svc.ListMeals(userID, from, to, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (h *MealController) GetMeal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	mealID, ok := idParam(c, "id")
	if !ok {
		return
	}

	meal, err := h.Svc.GetMeal(userID, mealID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealController) UpdateMeal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	mealID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var body mealBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.Svc.UpdateMeal(userID, mealID, body.Type, body.AteAt, body.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealController) DeleteMeal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	mealID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.Svc.DeleteMeal(userID, mealID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
