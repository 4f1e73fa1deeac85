package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Group describes one group chat the bot participates in.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type sendMessageRequest struct {
	Message string `json:"message"`
	GroupID string `json:"groupId"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type groupsResponse struct {
	Groups []Group `json:"groups"`
}

// Client talks to the WhatsApp bot's local HTTP API.
type Client struct {
	apiURL         string
	defaultGroupID string
	httpClient     *http.Client
}

func NewClient(apiURL, defaultGroupID string) *Client {
	return &Client{
		apiURL:         apiURL,
		defaultGroupID: defaultGroupID,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts a message to a WhatsApp group. An empty groupID falls back to
// the configured default group.
func (c *Client) Send(ctx context.Context, message, groupID string) error {
	if groupID == "" {
		groupID = c.defaultGroupID
	}
	if groupID == "" {
		return fmt.Errorf("no WhatsApp group ID configured")
	}

	body, err := json.Marshal(sendMessageRequest{Message: message, GroupID: groupID})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/send-message", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("send message: %s", resp.Status)
	}
	return nil
}

// IsReady reports whether the WhatsApp bot is connected and ready to send.
func (c *Client) IsReady(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return false
	}
	return health.Status == "ready"
}

// Groups lists the group chats available to the bot.
func (c *Client) Groups(ctx context.Context) ([]Group, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/groups", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get groups: %s", resp.Status)
	}

	var groups groupsResponse
	if err := json.NewDecoder(resp.Body).Decode(&groups); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return groups.Groups, nil
}
