package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/services"
)

type AnalyticsController struct {
	Svc *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Svc: svc}
}

// rangeParams reads from/to query dates, defaulting to the current month.
func rangeParams(c *gin.Context) (from, to time.Time, ok bool) {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)

	fromStr := c.DefaultQuery("from", first.Format("2006-01-02"))
	toStr := c.DefaultQuery("to", last.Format("2006-01-02"))

	from, err := time.ParseInLocation("2006-01-02", fromStr, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return from, to, false
	}
	to, err = time.ParseInLocation("2006-01-02", toStr, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return from, to, false
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "`to` must be on/after `from`"})
		return from, to, false
	}
	return from, to, true
}

func (h *AnalyticsController) WeightTrend(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	from, to, ok := rangeParams(c)
	if !ok {
		return
	}

	out, err := h.Svc.WeightTrend(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AnalyticsController) WorkoutStats(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	from, to, ok := rangeParams(c)
	if !ok {
		return
	}

	out, err := h.Svc.WorkoutStats(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AnalyticsController) NutritionSummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	from, to, ok := rangeParams(c)
	if !ok {
		return
	}

	out, err := h.Svc.NutritionSummary(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
