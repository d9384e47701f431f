package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"alcyxob/wellness-coach/internal/domain"
	"alcyxob/wellness-coach/internal/service"
	"alcyxob/wellness-coach/internal/trainingload"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityHandler holds the activity service dependency.
type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// IngestActivity accepts a raw activity record, derives its metrics and
// stores it. The untouched request body is archived alongside.
func (h *ActivityHandler) IngestActivity(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Could not read request body")
		return
	}

	var raw service.RawActivity
	if err := json.Unmarshal(body, &raw); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid activity payload: "+err.Error())
		return
	}
	if raw.DurationSeconds <= 0 || raw.StartDate.IsZero() {
		abortWithError(c, http.StatusBadRequest, "Activity requires a start date and a positive duration")
		return
	}
	raw.Payload = body

	activity, err := h.activityService.ProcessActivity(c.Request.Context(), userID, raw)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to process activity")
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// GetActivities lists the athlete's activities within an optional date range
// (default: trailing 60 days).
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -trainingload.DefaultLookbackDays)
	to := now
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD")
			return
		}
		// Inclusive end of day.
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	activities, err := h.activityService.GetActivities(c.Request.Context(), userID, from, to)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve activities")
		return
	}
	if activities == nil {
		// Return empty array, not null
		c.JSON(http.StatusOK, []domain.Activity{})
		return
	}
	c.JSON(http.StatusOK, activities)
}

// GetTrainingLoad returns ATL/CTL/TSB over the trailing lookback window.
func (h *ActivityHandler) GetTrainingLoad(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	days := trainingload.DefaultLookbackDays
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			abortWithError(c, http.StatusBadRequest, "Invalid 'days' parameter")
			return
		}
		days = parsed
	}

	load, err := h.activityService.GetTrainingLoad(c.Request.Context(), userID, days)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute training load")
		return
	}
	c.JSON(http.StatusOK, load)
}

// AnalyzeStreams derives peak powers and heart-rate completeness from raw
// power/time/heart-rate streams without storing anything.
func (h *ActivityHandler) AnalyzeStreams(c *gin.Context) {
	var raw service.RawActivity
	if err := c.ShouldBindJSON(&raw); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid streams payload: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, h.activityService.ComputeStreamSummary(raw))
}

// userObjectID extracts the authenticated user's ObjectID from the request
// context, writing the error response itself on failure.
func userObjectID(c *gin.Context) (primitive.ObjectID, bool) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token")
		return primitive.NilObjectID, false
	}
	return id, true
}
