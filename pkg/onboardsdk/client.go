// Package onboardsdk is the client SDK for the onboarding wizard. It speaks
// to the draft endpoints, mirrors the server's step rules so a browser (or
// TUI) can gate navigation without a round trip, and debounces auto-saves.
package onboardsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is an authenticated client for the onboarding API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

// NewClient creates a client that sends the bearer token on every request.
func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		token: accessToken,
	}
}

// SetToken swaps the bearer token, e.g. after a refresh.
func (c *Client) SetToken(accessToken string) { c.token = accessToken }

// GetDraft fetches the caller's current draft. A never-saved wizard yields
// an empty draft, not an error.
func (c *Client) GetDraft(ctx context.Context) (*Draft, error) {
	var env draftEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/onboarding/draft", nil, &env, http.StatusOK); err != nil {
		return nil, err
	}
	return env.Draft, nil
}

// SaveDraft overwrites the stored draft with the given step data.
func (c *Client) SaveDraft(ctx context.Context, data map[string]any) (*Draft, error) {
	var env draftEnvelope
	body := map[string]any{"data": data}
	if err := c.do(ctx, http.MethodPut, "/api/onboarding/draft", body, &env, http.StatusOK); err != nil {
		return nil, err
	}
	return env.Draft, nil
}

// Complete runs the terminal transition: publish for owners, finalize for
// tenants. Validation rejections come back as an APIError with Issues.
func (c *Client) Complete(ctx context.Context, data map[string]any) (*CompleteResult, error) {
	var res CompleteResult
	body := map[string]any{"data": data}
	if err := c.do(ctx, http.MethodPost, "/api/onboarding/complete", body, &res, http.StatusOK); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, target any, expected int) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != expected {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		_ = json.Unmarshal(raw, apiErr)
		return apiErr
	}
	if target != nil {
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
