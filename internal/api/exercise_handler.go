package api

import (
	"errors"
	"fmt"
	"net/http"

	"alcyxob/wellness-coach/internal/domain"
	"alcyxob/wellness-coach/internal/repository"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves the exercise library.
type ExerciseHandler struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseRepo repository.ExerciseRepository) *ExerciseHandler {
	return &ExerciseHandler{exerciseRepo: exerciseRepo}
}

// --- Request/Response Structs ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	Name            string  `json:"name" binding:"required"`
	WeightIncrement float64 `json:"weightIncrement" binding:"required,gt=0"`
}

// --- Handler Methods ---

// CreateExercise adds a custom exercise to the library.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise := &domain.Exercise{
		Name:            req.Name,
		WeightIncrement: req.WeightIncrement,
		IsCustom:        true,
	}
	if _, err := h.exerciseRepo.Create(c.Request.Context(), exercise); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create exercise")
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

// ListExercises returns the whole exercise library.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseRepo.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises")
		return
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, exercises)
}

// GetExercise returns a single exercise by ID.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	exercise, err := h.exerciseRepo.GetByID(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "Exercise not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercise")
		return
	}
	c.JSON(http.StatusOK, exercise)
}
