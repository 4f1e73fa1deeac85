package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Health godoc
// @Summary      Service health check
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       / [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "running",
		"service": "Strava WhatsApp Bot",
	})
}
