package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/services"
)

type WorkoutController struct {
	Svc *services.WorkoutService
}

func NewWorkoutController(svc *services.WorkoutService) *WorkoutController {
	return &WorkoutController{Svc: svc}
}

func (h *WorkoutController) CreateWorkout(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input services.WorkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.Svc.CreateWorkout(userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *WorkoutController) ListWorkouts(c *gin.Context) {
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

	workouts, err := h.Svc.ListWorkouts(userID, c.Query("status"), c.Query("type"), from, to, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

func (h *WorkoutController) GetWorkout(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	workoutID, ok := idParam(c, "id")
	if !ok {
		return
	}

	w, err := h.Svc.GetWorkout(userID, workoutID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WorkoutController) UpdateWorkout(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	workoutID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input services.WorkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.Svc.UpdateWorkout(userID, workoutID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WorkoutController) DeleteWorkout(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	workoutID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.Svc.DeleteWorkout(userID, workoutID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkoutController) StartWorkout(c *gin.Context) {
	h.transition(c, h.Svc.StartWorkout)
}

func (h *WorkoutController) CompleteWorkout(c *gin.Context) {
	h.transition(c, h.Svc.CompleteWorkout)
}

func (h *WorkoutController) SkipWorkout(c *gin.Context) {
	h.transition(c, h.Svc.SkipWorkout)
}

func (h *WorkoutController) AddExercise(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	workoutID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input services.WorkoutExerciseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.Svc.AddExercise(userID, workoutID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *WorkoutController) AddSet(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	workoutID, ok := idParam(c, "id")
	if !ok {
		return
	}
	exerciseID, ok := idParam(c, "exerciseId")
	if !ok {
		return
	}

	var input services.WorkoutSetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.Svc.AddSet(userID, workoutID, exerciseID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *WorkoutController) transition(c *gin.Context, fn func(userID, workoutID uint) (*models.Workout, error)) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	workoutID, ok := idParam(c, "id")
	if !ok {
		return
	}

	w, err := fn(userID, workoutID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}
