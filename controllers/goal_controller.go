package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/services"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/utils"
)

type GoalController struct {
	Svc *services.GoalService
}

func NewGoalController(svc *services.GoalService) *GoalController {
	return &GoalController{Svc: svc}
}

func (h *GoalController) Create(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body services.GoalInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.Svc.CreateGoal(userID, body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (h *GoalController) List(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	page, limit := pageParams(c)

	goals, err := h.Svc.ListGoals(userID, c.Query("status"), c.Query("type"), c.Query("category"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *GoalController) Get(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	goalID, ok := idParam(c, "id")
	if !ok {
		return
	}

	goal, err := h.Svc.GetGoal(userID, goalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalController) Update(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	goalID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var body services.GoalUpdateInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.Svc.UpdateGoal(userID, goalID, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

type progressBody struct {
	Value      float64   `json:"value"`
	Note       string    `json:"note"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (h *GoalController) AddProgress(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	goalID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var body progressBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.RecordedAt.IsZero() {
		body.RecordedAt = time.Now()
	}

	goal, err := h.Svc.AddProgress(userID, goalID, body.Value, body.Note, body.RecordedAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

type statusBody struct {
	Status string `json:"status" binding:"required,oneof=draft active paused completed abandoned expired"`
}

func (h *GoalController) UpdateStatus(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	goalID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var body statusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.Svc.UpdateStatus(userID, goalID, body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// Sync pulls the goal's current value from logged data (weight entries or
// completed workouts) instead of a manual progress update.
func (h *GoalController) Sync(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	goalID, ok := idParam(c, "id")
	if !ok {
		return
	}

	goal, err := h.Svc.SyncGoal(userID, goalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalController) Delete(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	goalID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.Svc.DeleteGoal(userID, goalID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Remind emails the goal's coaching recommendations to the owner.
func (h *GoalController) Remind(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	goalID, ok := idParam(c, "id")
	if !ok {
		return
	}

	goal, err := h.Svc.GetGoal(userID, goalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	user, err := services.FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	recs := goal.Recommendations
	if len(recs) == 0 {
		recs = []string{"Keep logging progress to stay on track."}
	}
	if err := utils.SendGoalReminderEmail(user.Email, goal.Title, recs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send reminder"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reminder sent"})
}
