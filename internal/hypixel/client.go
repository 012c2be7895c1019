package hypixel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	BaseURL       = "https://api.hypixel.net/v2"
	MojangBaseURL = "https://api.mojang.com"
)

// ErrNotFound is returned when the API has no record of the requested player, guild or profile
var ErrNotFound = errors.New("not found")

// APIError is a failed HTTP exchange with the Hypixel or Mojang API
type APIError struct {
	StatusCode int
	Cause      string
}

func (e *APIError) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("API error: %s (HTTP %d)", e.Cause, e.StatusCode)
	}
	return fmt.Sprintf("API error: HTTP %d", e.StatusCode)
}

// Client is a Hypixel API client with request pacing
type Client struct {
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter

	baseURL   string
	mojangURL string
}

// NewClient creates a new Hypixel API client allowing at most
// requestsPerSecond outgoing requests
func NewClient(apiKey string, requestsPerSecond float64) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		baseURL:   BaseURL,
		mojangURL: MojangBaseURL,
	}
}

// envelope carries the fields every Hypixel response shares
type envelope struct {
	Success bool   `json:"success"`
	Cause   string `json:"cause"`
}

// doRequest performs an HTTP request once the limiter allows it
func (c *Client) doRequest(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}

// getRaw performs a GET request and returns the body of a 200 response.
// A 404 or 204 is reported as ErrNotFound.
func (c *Client) getRaw(ctx context.Context, url string, authenticated bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if authenticated {
		req.Header.Set("API-Key", c.apiKey)
	}

	resp, err := c.doRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusNoContent:
		return nil, ErrNotFound
	default:
		return nil, parseError(resp.StatusCode, body)
	}
}

// getHypixel performs an authenticated Hypixel request, checks the success flag
// and returns the raw body
func (c *Client) getHypixel(ctx context.Context, url string) ([]byte, error) {
	body, err := c.getRaw(ctx, url, true)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !env.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Cause: env.Cause}
	}
	return body, nil
}

// parseError builds an APIError from an error response body
func parseError(statusCode int, body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Cause != "" {
		return &APIError{StatusCode: statusCode, Cause: env.Cause}
	}

	var mojang struct {
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &mojang); err == nil && mojang.ErrorMessage != "" {
		return &APIError{StatusCode: statusCode, Cause: mojang.ErrorMessage}
	}

	return &APIError{StatusCode: statusCode}
}
