package api

import (
	"errors"
	"fmt"
	"net/http"

	"alcyxob/wellness-coach/internal/domain"
	"alcyxob/wellness-coach/internal/repository"
	"alcyxob/wellness-coach/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler edits plan day templates and propagates the changes into the
// future pending workouts of the athlete's current mesocycle.
type PlanHandler struct {
	planService   service.PlanService
	planDayRepo   repository.PlanDayRepository
	pdeRepo       repository.PlanDayExerciseRepository
	exerciseRepo  repository.ExerciseRepository
	mesocycleRepo repository.MesocycleRepository
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(
	planService service.PlanService,
	planDayRepo repository.PlanDayRepository,
	pdeRepo repository.PlanDayExerciseRepository,
	exerciseRepo repository.ExerciseRepository,
	mesocycleRepo repository.MesocycleRepository,
) *PlanHandler {
	return &PlanHandler{
		planService:   planService,
		planDayRepo:   planDayRepo,
		pdeRepo:       pdeRepo,
		exerciseRepo:  exerciseRepo,
		mesocycleRepo: mesocycleRepo,
	}
}

// --- Request/Response Structs ---

// PlanDayExerciseRequest is one prescription row of an edited plan day.
type PlanDayExerciseRequest struct {
	ExerciseID  string  `json:"exerciseId" binding:"required"`
	Sets        int     `json:"sets" binding:"required,min=1"`
	Reps        int     `json:"reps" binding:"required,min=1"`
	Weight      float64 `json:"weight" binding:"min=0"`
	RestSeconds int     `json:"restSeconds" binding:"min=0"`
	SortOrder   int     `json:"sortOrder"`
	MinReps     int     `json:"minReps" binding:"min=0"`
	MaxReps     int     `json:"maxReps" binding:"min=0"`
}

type UpdatePlanDayRequest struct {
	Exercises []PlanDayExerciseRequest `json:"exercises" binding:"required"`
}

// UpdatePlanDayResponse pairs the computed diff with its propagation effect.
type UpdatePlanDayResponse struct {
	Diff        service.PlanDiff           `json:"diff"`
	Propagation *service.PropagationResult `json:"propagation"`
}

// --- Handler Methods ---

// ListPlanDays returns the athlete's plan day templates.
func (h *PlanHandler) ListPlanDays(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	days, err := h.planDayRepo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plan days")
		return
	}
	if days == nil {
		days = []domain.PlanDay{}
	}
	c.JSON(http.StatusOK, days)
}

// GetPlanDayExercises returns the current prescriptions of a plan day.
func (h *PlanHandler) GetPlanDayExercises(c *gin.Context) {
	planDay, ok := h.ownedPlanDay(c)
	if !ok {
		return
	}

	prescriptions, err := h.pdeRepo.GetByPlanDayID(c.Request.Context(), planDay.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve prescriptions")
		return
	}
	if prescriptions == nil {
		prescriptions = []domain.PlanDayExercise{}
	}
	c.JSON(http.StatusOK, prescriptions)
}

// UpdatePlanDay replaces the prescription list of a plan day, diffs it
// against the stored version, persists the template change and propagates it
// into the future pending workouts of the athlete's latest mesocycle.
func (h *PlanHandler) UpdatePlanDay(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}
	planDay, ok := h.ownedPlanDay(c)
	if !ok {
		return
	}

	var req UpdatePlanDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ctx := c.Request.Context()
	oldExercises, err := h.pdeRepo.GetByPlanDayID(ctx, planDay.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load current prescriptions")
		return
	}

	newExercises := make([]domain.PlanDayExercise, 0, len(req.Exercises))
	exerciseLookup := make(map[primitive.ObjectID]domain.Exercise, len(req.Exercises))
	for _, row := range req.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(row.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid exercise ID %q", row.ExerciseID))
			return
		}
		exercise, err := h.exerciseRepo.GetByID(ctx, exerciseID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Unknown exercise %q", row.ExerciseID))
				return
			}
			abortWithError(c, http.StatusInternalServerError, "Failed to load exercise library")
			return
		}
		exerciseLookup[exerciseID] = *exercise
		newExercises = append(newExercises, domain.PlanDayExercise{
			PlanDayID:   planDay.ID,
			ExerciseID:  exerciseID,
			Sets:        row.Sets,
			Reps:        row.Reps,
			Weight:      row.Weight,
			RestSeconds: row.RestSeconds,
			SortOrder:   row.SortOrder,
			MinReps:     row.MinReps,
			MaxReps:     row.MaxReps,
		})
	}

	diff := h.planService.DiffPlanDayExercises(oldExercises, newExercises)

	if err := h.persistTemplate(c, oldExercises, newExercises, diff); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to persist plan day changes")
		return
	}

	// Propagate into the latest block, if one exists.
	var propagation *service.PropagationResult
	mesocycle, err := h.mesocycleRepo.GetLatestByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		abortWithError(c, http.StatusInternalServerError, "Failed to load mesocycle")
		return
	}
	if mesocycle != nil {
		propagation, err = h.planService.SyncPlanToMesocycle(ctx, mesocycle.ID, planDay.ID, newExercises, exerciseLookup)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to propagate plan changes")
			return
		}
	} else {
		propagation = &service.PropagationResult{}
	}

	c.JSON(http.StatusOK, UpdatePlanDayResponse{Diff: diff, Propagation: propagation})
}

// persistTemplate applies the diff to the stored plan day template.
func (h *PlanHandler) persistTemplate(c *gin.Context, oldExercises, newExercises []domain.PlanDayExercise, diff service.PlanDiff) error {
	ctx := c.Request.Context()

	oldByExercise := make(map[primitive.ObjectID]domain.PlanDayExercise, len(oldExercises))
	for _, pde := range oldExercises {
		oldByExercise[pde.ExerciseID] = pde
	}

	for _, pde := range diff.RemovedExercises {
		if err := h.pdeRepo.Delete(ctx, pde.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}
	for i := range newExercises {
		old, exists := oldByExercise[newExercises[i].ExerciseID]
		if !exists {
			if _, err := h.pdeRepo.Create(ctx, &newExercises[i]); err != nil {
				return err
			}
			continue
		}
		newExercises[i].ID = old.ID
		if err := h.pdeRepo.Update(ctx, &newExercises[i]); err != nil {
			return err
		}
	}
	return nil
}

// ownedPlanDay loads the :planDayId path parameter and verifies it belongs
// to the authenticated athlete.
func (h *PlanHandler) ownedPlanDay(c *gin.Context) (*domain.PlanDay, bool) {
	userID, ok := userObjectID(c)
	if !ok {
		return nil, false
	}
	planDayID, ok := pathObjectID(c, "planDayId")
	if !ok {
		return nil, false
	}

	planDay, err := h.planDayRepo.GetByID(c.Request.Context(), planDayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "Plan day not found")
			return nil, false
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load plan day")
		return nil, false
	}
	if planDay.UserID != userID {
		abortWithError(c, http.StatusForbidden, "Plan day does not belong to this user")
		return nil, false
	}
	return planDay, true
}
