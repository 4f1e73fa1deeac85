package handlers

import (
	"net/http"
	"strconv"

	"strava-whatsapp-bot/internal/models"
	"strava-whatsapp-bot/internal/services"

	"github.com/gin-gonic/gin"
)

type AthleteHandler struct {
	athleteSvc  *services.AthleteService
	activitySvc *services.ActivityService
}

func NewAthleteHandler(athleteSvc *services.AthleteService, activitySvc *services.ActivityService) *AthleteHandler {
	return &AthleteHandler{athleteSvc: athleteSvc, activitySvc: activitySvc}
}

// ListAthletes godoc
// @Summary      List registered athletes
// @Description  Tokens are never included in the response.
// @Tags         athletes
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} ErrorResponse
// @Router       /athletes [get]
func (h *AthleteHandler) ListAthletes(c *gin.Context) {
	athletes, err := h.athleteSvc.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if athletes == nil {
		athletes = []models.Athlete{}
	}

	c.JSON(http.StatusOK, gin.H{"athletes": athletes})
}

// ListActivities godoc
// @Summary      List recent activities
// @Tags         athletes
// @Produce      json
// @Param        limit query int false "Max results (default 10)"
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} ErrorResponse
// @Router       /activities [get]
func (h *AthleteHandler) ListActivities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	activities, err := h.activitySvc.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if activities == nil {
		activities = []models.Activity{}
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// GetStats godoc
// @Summary      Aggregate statistics across all recorded runs
// @Tags         athletes
// @Produce      json
// @Success      200 {object} services.Stats
// @Failure      500 {object} ErrorResponse
// @Router       /stats [get]
func (h *AthleteHandler) GetStats(c *gin.Context) {
	stats, err := h.activitySvc.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
