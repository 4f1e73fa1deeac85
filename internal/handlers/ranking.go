package handlers

import (
	"net/http"
	"time"

	"strava-whatsapp-bot/internal/rankings"
	"strava-whatsapp-bot/internal/services"

	"github.com/gin-gonic/gin"
)

type RankingHandler struct {
	activitySvc *services.ActivityService
	calc        *rankings.Calculator
}

func NewRankingHandler(activitySvc *services.ActivityService, calc *rankings.Calculator) *RankingHandler {
	return &RankingHandler{activitySvc: activitySvc, calc: calc}
}

// Weekly godoc
// @Summary      Current week's distance ranking
// @Tags         ranking
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} ErrorResponse
// @Router       /ranking/weekly [get]
func (h *RankingHandler) Weekly(c *gin.Context) {
	start, end := h.calc.WeekRange(time.Now())
	h.respond(c, start, end, "semanal")
}

// Monthly godoc
// @Summary      Current month's distance ranking
// @Tags         ranking
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} ErrorResponse
// @Router       /ranking/monthly [get]
func (h *RankingHandler) Monthly(c *gin.Context) {
	start, end := h.calc.MonthRange(time.Now())
	h.respond(c, start, end, "mensal")
}

func (h *RankingHandler) respond(c *gin.Context, start, end time.Time, period string) {
	activities, err := h.activitySvc.GetByPeriod(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	ranking := h.calc.CalculateRanking(activities)
	message := h.calc.FormatRankingMessage(ranking, period)

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"ranking": ranking,
	})
}
