// Package payments talks to the hosted checkout function that creates
// payment sessions for listing subscriptions.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

type CheckoutSessionRequest struct {
	PriceID    string `json:"price_id"`
	Mode       string `json:"mode"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

type CheckoutSessionResponse struct {
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

// NewClient targets a create-checkout endpoint. apiKey is sent as the
// apikey header expected by hosted functions and may be empty.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateCheckoutSession forwards the caller's bearer token and returns the
// redirect URL of the new session.
func (c *Client) CreateCheckoutSession(ctx context.Context, accessToken string, in CheckoutSessionRequest) (string, error) {
	jsonData, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to create checkout session: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result CheckoutSessionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}
	if result.URL == "" {
		return "", fmt.Errorf("checkout url is empty in response, body: %s", string(body))
	}

	return result.URL, nil
}
