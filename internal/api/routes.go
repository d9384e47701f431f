package api

import (
	"net/http"

	"alcyxob/wellness-coach/internal/repository"
	"alcyxob/wellness-coach/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	activityService service.ActivityService,
	workoutService service.WorkoutService,
	planService service.PlanService,
	coachService service.CoachService,
	planDayRepo repository.PlanDayRepository,
	pdeRepo repository.PlanDayExerciseRepository,
	exerciseRepo repository.ExerciseRepository,
	mesocycleRepo repository.MesocycleRepository,
) {

	authHandler := NewAuthHandler(authService)
	activityHandler := NewActivityHandler(activityService)
	workoutHandler := NewWorkoutHandler(workoutService)
	planHandler := NewPlanHandler(planService, planDayRepo, pdeRepo, exerciseRepo, mesocycleRepo)
	coachHandler := NewCoachHandler(coachService)
	exerciseHandler := NewExerciseHandler(exerciseRepo)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
		})
		protected.PUT("/me/profile", authHandler.UpdateProfile)

		// --- Cycling: activities and derived metrics ---
		activityGroup := protected.Group("/activities")
		{
			activityGroup.POST("", activityHandler.IngestActivity)
			activityGroup.GET("", activityHandler.GetActivities)
			activityGroup.POST("/streams", activityHandler.AnalyzeStreams)
		}
		protected.GET("/metrics/training-load", activityHandler.GetTrainingLoad)

		// --- Coach: dashboard snapshot and daily recommendation ---
		coachGroup := protected.Group("/coach")
		{
			coachGroup.GET("/context", coachHandler.GetContext)
			coachGroup.GET("/next-session", coachHandler.GetNextSession)
			coachGroup.GET("/recommendation", coachHandler.GetRecommendation)
		}

		// --- Lifting: workouts and set lifecycle ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("/:workoutId", workoutHandler.GetWorkout)
			workoutGroup.POST("/:workoutId/exercises/:exerciseId/sets", workoutHandler.AddSet)
			workoutGroup.DELETE("/:workoutId/exercises/:exerciseId/sets", workoutHandler.RemoveSet)
		}
		setGroup := protected.Group("/sets")
		{
			setGroup.POST("/:setId/log", workoutHandler.LogSet)
			setGroup.POST("/:setId/skip", workoutHandler.SkipSet)
			setGroup.POST("/:setId/unlog", workoutHandler.UnlogSet)
		}

		// --- Lifting: plan day templates and propagation ---
		planGroup := protected.Group("/plan-days")
		{
			planGroup.GET("", planHandler.ListPlanDays)
			planGroup.GET("/:planDayId/exercises", planHandler.GetPlanDayExercises)
			planGroup.PUT("/:planDayId/exercises", planHandler.UpdatePlanDay)
		}

		// --- Exercise library ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetExercise)
		}
	}
}
