package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/wellness-coach/internal/api"
	"alcyxob/wellness-coach/internal/config"
	"alcyxob/wellness-coach/internal/progression"
	"alcyxob/wellness-coach/internal/recommend"
	"alcyxob/wellness-coach/internal/repository/mongo"
	"alcyxob/wellness-coach/internal/service"
	"alcyxob/wellness-coach/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Wellness Coach Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() { // Run index creation in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureActivityIndexes(ctx, appDB.Collection("activities"))
		mongo.EnsureWeeklyPlanIndexes(ctx, appDB.Collection("weekly_plans"))
		mongo.EnsureMesocycleIndexes(ctx, appDB.Collection("mesocycles"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		mongo.EnsureWorkoutSetIndexes(ctx, appDB.Collection("workout_sets"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	activityRepo := mongo.NewMongoActivityRepository(appDB)
	weeklyPlanRepo := mongo.NewMongoWeeklyPlanRepository(appDB)
	mesocycleRepo := mongo.NewMongoMesocycleRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	workoutSetRepo := mongo.NewMongoWorkoutSetRepository(appDB)
	planDayRepo := mongo.NewMongoPlanDayRepository(appDB)
	pdeRepo := mongo.NewMongoPlanDayExerciseRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)

	// --- Recommendation Engine ---
	var engine recommend.Engine
	if cfg.OpenAI.APIKey != "" {
		engine = recommend.NewOpenAIEngine(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		log.Println("OpenAI recommendation engine enabled.")
	} else {
		log.Println("No OpenAI API key configured; recommendations are rule-based.")
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	activityService := service.NewActivityService(activityRepo, userRepo, fileStorage)
	workoutService := service.NewWorkoutService(workoutRepo, workoutSetRepo)
	planService := service.NewPlanService(workoutRepo, workoutSetRepo, progression.NewCalculator())
	coachService := service.NewCoachService(userRepo, activityRepo, weeklyPlanRepo, mesocycleRepo, engine)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, activityService, workoutService, planService, coachService,
		planDayRepo, pdeRepo, exerciseRepo, mesocycleRepo)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
