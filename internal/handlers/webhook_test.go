package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"strava-whatsapp-bot/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newVerifyRouter(verifyToken string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewWebhookHandler(nil, verifyToken)
	r.GET("/webhook", h.Verify)
	return r
}

func TestVerifyEchoesChallenge(t *testing.T) {
	r := newVerifyRouter("secret")

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=secret&hub.challenge=abc123", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"hub.challenge":"abc123"}`, w.Body.String())
}

func TestVerifyRejectsBadToken(t *testing.T) {
	r := newVerifyRouter("secret")

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=abc123", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "abc123")
}

func TestVerifyRejectsBadMode(t *testing.T) {
	r := newVerifyRouter("secret")

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=unsubscribe&hub.verify_token=secret&hub.challenge=abc123", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandleEventMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewWebhookHandler(nil, "secret")
	r.POST("/webhook", h.HandleEvent)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "domain rejections never surface as server errors")
	assert.Contains(t, w.Body.String(), `"status":"`+services.StatusError+`"`)
}
