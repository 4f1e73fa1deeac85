package handlers

import (
	"net/http"

	"strava-whatsapp-bot/internal/services"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	webhookSvc  *services.WebhookService
	verifyToken string
}

func NewWebhookHandler(webhookSvc *services.WebhookService, verifyToken string) *WebhookHandler {
	return &WebhookHandler{webhookSvc: webhookSvc, verifyToken: verifyToken}
}

// Verify godoc
// @Summary      Strava webhook subscription verification
// @Tags         webhook
// @Produce      json
// @Param        hub.mode query string true "Subscription mode"
// @Param        hub.challenge query string true "Challenge to echo"
// @Param        hub.verify_token query string true "Configured verify token"
// @Success      200 {object} map[string]string
// @Failure      403 {object} ErrorResponse
// @Router       /webhook [get]
func (h *WebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	challenge := c.Query("hub.challenge")
	token := c.Query("hub.verify_token")

	if mode == "subscribe" && token == h.verifyToken {
		c.JSON(http.StatusOK, gin.H{"hub.challenge": challenge})
		return
	}

	c.JSON(http.StatusForbidden, ErrorResponse{Error: "verification failed"})
}

// HandleEvent godoc
// @Summary      Strava webhook event delivery
// @Description  Always answers 200 with a status field; Strava redelivers on error statuses per its own policy.
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Success      200 {object} services.ProcessResult
// @Router       /webhook [post]
func (h *WebhookHandler) HandleEvent(c *gin.Context) {
	var event services.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusOK, services.ProcessResult{
			Status:  services.StatusError,
			Message: err.Error(),
		})
		return
	}

	result := h.webhookSvc.Process(c.Request.Context(), event)
	c.JSON(http.StatusOK, result)
}
