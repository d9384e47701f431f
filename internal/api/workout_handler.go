package api

import (
	"errors"
	"fmt"
	"net/http"

	"alcyxob/wellness-coach/internal/domain"
	"alcyxob/wellness-coach/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request/Response Structs ---

type LogSetRequest struct {
	ActualReps   int     `json:"actualReps"`
	ActualWeight float64 `json:"actualWeight"`
}

type WorkoutResponse struct {
	Workout *domain.Workout     `json:"workout"`
	Sets    []domain.WorkoutSet `json:"sets"`
}

// --- Handler Methods ---

// GetWorkout returns a workout together with all its sets.
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	workoutID, ok := pathObjectID(c, "workoutId")
	if !ok {
		return
	}

	workout, sets, err := h.workoutService.GetWorkout(c.Request.Context(), workoutID)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout")
		return
	}
	if sets == nil {
		sets = []domain.WorkoutSet{}
	}
	c.JSON(http.StatusOK, WorkoutResponse{Workout: workout, Sets: sets})
}

// LogSet records actual reps and weight against a set. Logging the first set
// of a pending workout starts it.
func (h *WorkoutHandler) LogSet(c *gin.Context) {
	setID, ok := pathObjectID(c, "setId")
	if !ok {
		return
	}

	var req LogSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	set, err := h.workoutService.LogSet(c.Request.Context(), setID, req.ActualReps, req.ActualWeight)
	if err != nil {
		h.writeSetError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// SkipSet marks a set as skipped without recording actuals.
func (h *WorkoutHandler) SkipSet(c *gin.Context) {
	setID, ok := pathObjectID(c, "setId")
	if !ok {
		return
	}

	set, err := h.workoutService.SkipSet(c.Request.Context(), setID)
	if err != nil {
		h.writeSetError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// UnlogSet reverts a completed set back to pending.
func (h *WorkoutHandler) UnlogSet(c *gin.Context) {
	setID, ok := pathObjectID(c, "setId")
	if !ok {
		return
	}

	set, err := h.workoutService.UnlogSet(c.Request.Context(), setID)
	if err != nil {
		h.writeSetError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// AddSet appends a set to an exercise in this workout and propagates the
// addition to future pending workouts sharing the plan day.
func (h *WorkoutHandler) AddSet(c *gin.Context) {
	workoutID, ok := pathObjectID(c, "workoutId")
	if !ok {
		return
	}
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	result, err := h.workoutService.AddSetToExercise(c.Request.Context(), workoutID, exerciseID)
	if err != nil {
		h.writeSetError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// RemoveSet removes the highest pending set of an exercise in this workout
// and propagates the removal to future pending workouts sharing the plan day.
func (h *WorkoutHandler) RemoveSet(c *gin.Context) {
	workoutID, ok := pathObjectID(c, "workoutId")
	if !ok {
		return
	}
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	result, err := h.workoutService.RemoveSetFromExercise(c.Request.Context(), workoutID, exerciseID)
	if err != nil {
		h.writeSetError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// writeSetError maps set lifecycle errors onto HTTP statuses: missing
// entities are 404, invalid input is 400, state-machine violations are 409.
func (h *WorkoutHandler) writeSetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound), errors.Is(err, service.ErrSetNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNegativeActuals):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrWorkoutNotEditable),
		errors.Is(err, service.ErrSetNotUnloggable),
		errors.Is(err, service.ErrNoSetsForExercise),
		errors.Is(err, service.ErrLastSet),
		errors.Is(err, service.ErrNoPendingSets):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Workout operation failed")
	}
}

// pathObjectID parses an ObjectID path parameter, writing the error response
// itself on failure.
func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s format", name))
		return primitive.NilObjectID, false
	}
	return id, true
}
