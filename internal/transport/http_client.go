// Package transport is the wrist-side client for the companion service. It
// stands in for the point-to-point pairing channel: pushes are best effort
// and the caller never retries.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"focusband/companion/internal/replicate"
)

// Client pushes daily-summary messages to a paired companion service.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send transmits one snapshot. Any non-2xx response is an error; the
// replicator logs and drops it.
func (c *Client) Send(ctx context.Context, snap replicate.Snapshot) error {
	payload, err := json.Marshal(replicate.NewMessage(snap))
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/summary", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build summary request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send summary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("send summary: companion responded %s", resp.Status)
	}
	return nil
}

// Register creates a device record on the companion service and returns its ID.
func Register(ctx context.Context, baseURL, name, secret string) (string, error) {
	var resp struct {
		Device struct {
			ID string `json:"id"`
		} `json:"device"`
	}
	err := postJSON(ctx, baseURL, "/api/devices/register", map[string]string{
		"name":   name,
		"secret": secret,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Device.ID, nil
}

// Pair exchanges a device's credentials for a bearer token.
func Pair(ctx context.Context, baseURL, deviceID, secret string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := postJSON(ctx, baseURL, "/api/devices/pair", map[string]string{
		"deviceId": deviceID,
		"secret":   secret,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func postJSON(ctx context.Context, baseURL, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(baseURL, "/")+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("post %s: companion responded %s", path, resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
