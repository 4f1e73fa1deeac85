package handlers

import (
	"net/http"

	"strava-whatsapp-bot/internal/whatsapp"

	"github.com/gin-gonic/gin"
)

type WhatsAppHandler struct {
	client *whatsapp.Client
}

func NewWhatsAppHandler(client *whatsapp.Client) *WhatsAppHandler {
	return &WhatsAppHandler{client: client}
}

// Health godoc
// @Summary      WhatsApp bot readiness
// @Tags         whatsapp
// @Produce      json
// @Success      200 {object} map[string]bool
// @Router       /whatsapp/health [get]
func (h *WhatsAppHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ready": h.client.IsReady(c.Request.Context())})
}

// Groups godoc
// @Summary      List WhatsApp groups available to the bot
// @Tags         whatsapp
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} ErrorResponse
// @Router       /whatsapp/groups [get]
func (h *WhatsAppHandler) Groups(c *gin.Context) {
	groups, err := h.client.Groups(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if groups == nil {
		groups = []whatsapp.Group{}
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}
