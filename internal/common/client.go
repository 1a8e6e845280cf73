package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dtnitsch/readmoo-summary/models"
	"github.com/dtnitsch/readmoo-summary/pkg/protocol"
)

// Client talks to a running serve process.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	cleaned, err := ValidateURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimSuffix(cleaned, "/"),
		http:    &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

// Send posts cmd to /v1/commands.
func (c *Client) Send(ctx context.Context, cmd protocol.Command) (protocol.Response, error) {
	var resp protocol.Response
	if err := c.post(ctx, "/v1/commands", cmd, &resp); err != nil {
		return protocol.Response{}, err
	}
	return resp, nil
}

// Observe posts obs to /v1/observations and reports whether it was recorded.
func (c *Client) Observe(ctx context.Context, obs models.Observation) (bool, error) {
	var out struct {
		Recorded bool `json:"recorded"`
	}
	if err := c.post(ctx, "/v1/observations", obs, &out); err != nil {
		return false, err
	}
	return out.Recorded, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ResponseError turns a failed protocol response into an error.
func ResponseError(resp protocol.Response) error {
	if resp.Success {
		return nil
	}
	if resp.Error == nil {
		return fmt.Errorf("command failed")
	}
	return fmt.Errorf("%s: %s", resp.Error.Type, resp.Error.Message)
}
