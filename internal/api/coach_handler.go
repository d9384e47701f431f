package api

import (
	"errors"
	"net/http"

	"alcyxob/wellness-coach/internal/service"

	"github.com/gin-gonic/gin"
)

// CoachHandler holds the coach service dependency.
type CoachHandler struct {
	coachService service.CoachService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// GetContext returns the athlete snapshot (training load, next session,
// efficiency and fitness estimates). Served as the dashboard payload.
func (h *CoachHandler) GetContext(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	rc, err := h.coachService.BuildContext(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to build coach context")
		return
	}
	c.JSON(http.StatusOK, rc)
}

// GetNextSession returns the first unmatched session of this week's plan.
func (h *CoachHandler) GetNextSession(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	next, err := h.coachService.NextSession(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to determine next session")
		return
	}
	if next == nil {
		// Plan complete or no plan for this week.
		c.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": next})
}

// GetRecommendation returns today's recommended session.
func (h *CoachHandler) GetRecommendation(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	rec, err := h.coachService.GetRecommendation(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to produce recommendation")
		return
	}
	c.JSON(http.StatusOK, rec)
}
