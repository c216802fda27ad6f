package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/config"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/services"
)

// ListAlerts returns the user's most recent alerts, newest first.
func ListAlerts(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	alerts, err := services.ListAlerts(config.DB, userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// MarkAlertRead flags a single alert as seen.
func MarkAlertRead(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	alertID, ok := idParam(c, "id")
	if !ok {
		return
	}

	res := config.DB.Model(&models.Alert{}).
		Where("id = ? AND user_id = ?", alertID, userID).
		Update("read", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "alert marked read"})
}

type toggleBody struct {
	Enabled bool `json:"enabled"`
}

// ToggleNotifications flips push delivery for every device the user owns.
func ToggleNotifications(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body toggleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := config.DB.Model(&models.UserDevice{}).
		Where("user_id = ?", userID).
		Update("enabled", body.Enabled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notifications updated", "enabled": body.Enabled})
}
