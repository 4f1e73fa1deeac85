package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const baseURL = "https://www.strava.com/api/v3"

var oauthEndpoint = oauth2.Endpoint{
	AuthURL:  "https://www.strava.com/oauth/authorize",
	TokenURL: "https://www.strava.com/oauth/token",
}

// Client talks to the Strava API: OAuth, activity/athlete lookups and webhook
// subscription management.
type Client struct {
	clientID     string
	clientSecret string
	verifyToken  string
	httpClient   *http.Client
	baseURL      string
}

func NewClient(clientID, clientSecret, verifyToken string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		verifyToken:  verifyToken,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		baseURL:      baseURL,
	}
}

func (c *Client) oauthConfig(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		Endpoint:     oauthEndpoint,
		RedirectURL:  redirectURI,
		// Strava wants a single comma-separated scope value.
		Scopes: []string{"activity:read_all,profile:read_all"},
	}
}

// AuthorizationURL builds the URL an athlete visits to authorize the bot.
func (c *Client) AuthorizationURL(redirectURI string) string {
	return c.oauthConfig(redirectURI).AuthCodeURL("", oauth2.SetAuthURLParam("approval_prompt", "auto"))
}

// ExchangeCode trades an authorization code for an access/refresh token pair.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.oauthConfig("").Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	return token, nil
}

// RefreshToken obtains a fresh access token from a stored refresh token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	source := c.oauthConfig("").TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	return token, nil
}

func (c *Client) get(ctx context.Context, path, accessToken string, params url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("strava: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// GetActivity fetches full detail for one activity.
func (c *Client) GetActivity(ctx context.Context, activityID int64, accessToken string) (*Activity, error) {
	var raw activityResponse
	if err := c.get(ctx, fmt.Sprintf("/activities/%d", activityID), accessToken, nil, &raw); err != nil {
		return nil, fmt.Errorf("get activity %d: %w", activityID, err)
	}
	activity := raw.toActivity()
	return &activity, nil
}

// GetAthlete fetches the profile of the token's owner.
func (c *Client) GetAthlete(ctx context.Context, accessToken string) (*Athlete, error) {
	var athlete Athlete
	if err := c.get(ctx, "/athlete", accessToken, nil, &athlete); err != nil {
		return nil, fmt.Errorf("get athlete: %w", err)
	}
	return &athlete, nil
}

// GetAthleteActivities lists the athlete's recent running activities.
func (c *Client) GetAthleteActivities(ctx context.Context, accessToken string, after, before time.Time, limit int) ([]Activity, error) {
	params := url.Values{}
	if !after.IsZero() {
		params.Set("after", strconv.FormatInt(after.Unix(), 10))
	}
	if !before.IsZero() {
		params.Set("before", strconv.FormatInt(before.Unix(), 10))
	}
	if limit > 0 {
		params.Set("per_page", strconv.Itoa(limit))
	}

	var raw []activityResponse
	if err := c.get(ctx, "/athlete/activities", accessToken, params, &raw); err != nil {
		return nil, fmt.Errorf("get activities: %w", err)
	}

	var activities []Activity
	for _, r := range raw {
		if r.Type != "Run" {
			continue
		}
		activities = append(activities, r.toActivity())
	}
	return activities, nil
}

// SubscribeWebhook registers callbackURL for push events and returns the
// subscription id.
func (c *Client) SubscribeWebhook(ctx context.Context, callbackURL string) (int64, error) {
	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"callback_url":  {callbackURL},
		"verify_token":  {c.verifyToken},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/push_subscriptions", strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("subscribe: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var sub Subscription
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}
	return sub.ID, nil
}

// Subscriptions lists the application's active webhook subscriptions.
func (c *Client) Subscriptions(ctx context.Context) ([]Subscription, error) {
	params := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	var subs []Subscription
	if err := c.get(ctx, "/push_subscriptions", "", params, &subs); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

// DeleteSubscription removes a webhook subscription.
func (c *Client) DeleteSubscription(ctx context.Context, subscriptionID int64) error {
	params := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	u := fmt.Sprintf("%s/push_subscriptions/%d?%s", c.baseURL, subscriptionID, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("delete subscription %d: %s", subscriptionID, resp.Status)
	}
	return nil
}
