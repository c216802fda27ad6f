package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/services"
)

type NutritionController struct {
	Svc *services.NutritionService
}

func NewNutritionController(svc *services.NutritionService) *NutritionController {
	return &NutritionController{Svc: svc}
}

func dayParam(c *gin.Context) (time.Time, bool) {
	v := c.Query("date")
	if v == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.Now().Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date. Use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

func (h *NutritionController) SetDailyGoals(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	date, ok := dayParam(c)
	if !ok {
		return
	}

	var body services.DailyGoalsInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, err := h.Svc.UpsertDay(userID, date, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

type waterBody struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Unit   string  `json:"unit" binding:"omitempty,oneof=ml l liters cup cups fl-oz fl_oz"`
}

func (h *NutritionController) LogWater(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	date, ok := dayParam(c)
	if !ok {
		return
	}

	var body waterBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Unit == "" {
		body.Unit = "ml"
	}

	day, err := h.Svc.LogWater(userID, date, body.Amount, body.Unit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *NutritionController) DayProgress(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	date, ok := dayParam(c)
	if !ok {
		return
	}

	progress, err := h.Svc.GetDayProgress(userID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *NutritionController) Recommend(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := services.FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	rec, err := h.Svc.Recommend(*user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}
