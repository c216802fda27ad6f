package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/controllers"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/middlewares"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/services"
)

func SetupRouter(db *gorm.DB, hub *services.RealtimeHub, push *services.PushService) *gin.Engine {
	r := gin.Default()

	meals := services.NewMealService(db)

	weightCtl := controllers.NewWeightController(services.NewWeightService(db))
	workoutCtl := controllers.NewWorkoutController(services.NewWorkoutService(db))
	mealCtl := controllers.NewMealController(meals)
	nutritionCtl := controllers.NewNutritionController(services.NewNutritionService(db, meals))
	goalCtl := controllers.NewGoalController(services.NewGoalService(db))
	analyticsCtl := controllers.NewAnalyticsController(services.NewAnalyticsService(db))
	realtimeCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.DELETE("/profile", controllers.DeleteAccount)
		user.POST("/notifications/toggle", controllers.ToggleNotifications)
	}

	weight := r.Group("/weight")
	weight.Use(middlewares.AuthMiddleware())
	{
		weight.POST("/entries", weightCtl.LogEntry)
		weight.GET("/entries", weightCtl.ListEntries)
		weight.GET("/entries/:id", weightCtl.GetEntry)
		weight.PUT("/entries/:id", weightCtl.UpdateEntry)
		weight.DELETE("/entries/:id", weightCtl.DeleteEntry)
	}

	workouts := r.Group("/workouts")
	workouts.Use(middlewares.AuthMiddleware())
	{
		workouts.POST("", workoutCtl.CreateWorkout)
		workouts.GET("", workoutCtl.ListWorkouts)
		workouts.GET("/:id", workoutCtl.GetWorkout)
		workouts.PUT("/:id", workoutCtl.UpdateWorkout)
		workouts.DELETE("/:id", workoutCtl.DeleteWorkout)
		workouts.POST("/:id/start", workoutCtl.StartWorkout)
		workouts.POST("/:id/complete", workoutCtl.CompleteWorkout)
		workouts.POST("/:id/skip", workoutCtl.SkipWorkout)
		workouts.POST("/:id/exercises", workoutCtl.AddExercise)
		workouts.POST("/:id/exercises/:exerciseId/sets", workoutCtl.AddSet)
	}

	meal := r.Group("/meals")
	meal.Use(middlewares.AuthMiddleware())
	{
		meal.POST("", mealCtl.LogMeal)
		meal.GET("", mealCtl.ListMeals)
		meal.GET("/:id", mealCtl.GetMeal)
		meal.PUT("/:id", mealCtl.UpdateMeal)
		meal.DELETE("/:id", mealCtl.DeleteMeal)
	}

	nutrition := r.Group("/nutrition")
	nutrition.Use(middlewares.AuthMiddleware())
	{
		nutrition.PUT("/day", nutritionCtl.SetDailyGoals)
		nutrition.POST("/water", nutritionCtl.LogWater)
		nutrition.GET("/progress", nutritionCtl.DayProgress)
		nutrition.GET("/recommendation", nutritionCtl.Recommend)
	}

	goals := r.Group("/goals")
	goals.Use(middlewares.AuthMiddleware())
	{
		goals.POST("", goalCtl.Create)
		goals.GET("", goalCtl.List)
		goals.GET("/:id", goalCtl.Get)
		goals.PUT("/:id", goalCtl.Update)
		goals.DELETE("/:id", goalCtl.Delete)
		goals.POST("/:id/progress", goalCtl.AddProgress)
		goals.PUT("/:id/status", goalCtl.UpdateStatus)
		goals.POST("/:id/sync", goalCtl.Sync)
		goals.POST("/:id/remind", goalCtl.Remind)
	}

	analytics := r.Group("/analytics")
	analytics.Use(middlewares.AuthMiddleware())
	{
		analytics.GET("/weight", analyticsCtl.WeightTrend)
		analytics.GET("/workouts", analyticsCtl.WorkoutStats)
		analytics.GET("/nutrition", analyticsCtl.NutritionSummary)
	}

	alerts := r.Group("/alerts")
	alerts.Use(middlewares.AuthMiddleware())
	{
		alerts.GET("", controllers.ListAlerts)
		alerts.POST("/:id/read", controllers.MarkAlertRead)
	}

	if push != nil {
		deviceCtl := controllers.NewDeviceController(push)
		devices := r.Group("/devices")
		devices.Use(middlewares.AuthMiddleware())
		devices.POST("/register", deviceCtl.Register)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	ws.GET("/alerts", realtimeCtl.AlertsWS)

	return r
}
