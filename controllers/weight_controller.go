package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/services"
)

type WeightController struct {
	Svc *services.WeightService
}

func NewWeightController(svc *services.WeightService) *WeightController {
	return &WeightController{Svc: svc}
}

func (h *WeightController) LogEntry(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input services.WeightEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.Svc.LogEntry(userID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *WeightController) ListEntries(c *gin.Context) {
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

	entries, err := h.Svc.ListEntries(userID, from, to, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetEntry returns the entry with its derived fields (BMI, lean/fat mass,
// progress vs the previous reading).
func (h *WeightController) GetEntry(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	entryID, ok := idParam(c, "id")
	if !ok {
		return
	}

	user, err := services.FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	detail, err := h.Svc.GetEntryDetail(userID, entryID, user.HeightCm)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *WeightController) UpdateEntry(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	entryID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input services.WeightEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.Svc.UpdateEntry(userID, entryID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *WeightController) DeleteEntry(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	entryID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.Svc.DeleteEntry(userID, entryID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
