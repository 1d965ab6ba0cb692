package askapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client handles communication with the answer service
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a new answer-service client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Answer sends a question to the answer service and returns its answer
// together with the raw citation payload
func (c *Client) Answer(ctx context.Context, question, model string) (Answer, error) {
	reqBody := AskRequest{
		Question: question,
		Model:    model,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return Answer{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/ask", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return Answer{}, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Answer{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return Answer{}, fmt.Errorf("answer service returned status %d: %s", resp.StatusCode, string(body))
	}

	// Decode with a pointer so an absent answer field is distinguishable
	// from an empty answer string
	var decoded struct {
		Answer    *string         `json:"answer"`
		Citations json.RawMessage `json:"citations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Answer{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if decoded.Answer == nil {
		return Answer{}, fmt.Errorf("response missing answer field")
	}

	return Answer{
		Answer:    *decoded.Answer,
		Citations: decoded.Citations,
	}, nil
}

// HealthCheck verifies that the answer service is accessible
func (c *Client) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("answer service is unreachable at %s: %w (is the backend running?)", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("answer service returned server error: %d", resp.StatusCode)
	}

	return nil
}
