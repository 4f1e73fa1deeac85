package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"strava-whatsapp-bot/internal/services"
	"strava-whatsapp-bot/internal/strava"

	"github.com/gin-gonic/gin"
)

type StravaHandler struct {
	stravaClient *strava.Client
	athleteSvc   *services.AthleteService
	webhookURL   string
}

func NewStravaHandler(stravaClient *strava.Client, athleteSvc *services.AthleteService, webhookURL string) *StravaHandler {
	return &StravaHandler{
		stravaClient: stravaClient,
		athleteSvc:   athleteSvc,
		webhookURL:   webhookURL,
	}
}

// AuthURL godoc
// @Summary      Strava authorization URL for athlete registration
// @Tags         strava
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /strava/auth [get]
func (h *StravaHandler) AuthURL(c *gin.Context) {
	redirectURI := h.webhookURL + "/strava/callback"
	c.JSON(http.StatusOK, gin.H{"auth_url": h.stravaClient.AuthorizationURL(redirectURI)})
}

// Callback godoc
// @Summary      Strava OAuth callback
// @Description  Exchanges the authorization code, fetches the athlete profile and upserts the registration.
// @Tags         strava
// @Produce      json
// @Param        code query string true "Authorization code"
// @Param        scope query string false "Granted scopes"
// @Success      200 {object} map[string]string
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /strava/callback [get]
func (h *StravaHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "code is required"})
		return
	}

	token, err := h.stravaClient.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	athleteData, err := h.stravaClient.GetAthlete(c.Request.Context(), token.AccessToken)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to get athlete info"})
		return
	}

	name := fmt.Sprintf("%s %s", athleteData.FirstName, athleteData.LastName)
	expiry := token.Expiry
	_, err = h.athleteSvc.Upsert(athleteData.ID, name, "", token.AccessToken, token.RefreshToken, &expiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Athlete %s registered successfully!", name),
	})
}

// Subscribe godoc
// @Summary      Create a Strava webhook subscription
// @Tags         strava
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} ErrorResponse
// @Router       /strava/webhook/subscribe [post]
func (h *StravaHandler) Subscribe(c *gin.Context) {
	callbackURL := h.webhookURL + "/webhook"
	subscriptionID, err := h.stravaClient.SubscribeWebhook(c.Request.Context(), callbackURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"subscription_id": subscriptionID,
	})
}

// ListSubscriptions godoc
// @Summary      List active Strava webhook subscriptions
// @Tags         strava
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} ErrorResponse
// @Router       /strava/webhook/subscriptions [get]
func (h *StravaHandler) ListSubscriptions(c *gin.Context) {
	subscriptions, err := h.stravaClient.Subscriptions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if subscriptions == nil {
		subscriptions = []strava.Subscription{}
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": subscriptions})
}

// DeleteSubscription godoc
// @Summary      Delete a Strava webhook subscription
// @Tags         strava
// @Produce      json
// @Param        id path int true "Subscription ID"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /strava/webhook/subscriptions/{id} [delete]
func (h *StravaHandler) DeleteSubscription(c *gin.Context) {
	subscriptionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid subscription id"})
		return
	}

	if err := h.stravaClient.DeleteSubscription(c.Request.Context(), subscriptionID); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("subscription %d deleted", subscriptionID)})
}
