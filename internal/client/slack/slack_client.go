package slack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type SlackClient struct {
	webhookUrl string
	httpClient *http.Client
}

func NewSlackClient(webhookUrl string) *SlackClient {
	return &SlackClient{
		webhookUrl: webhookUrl,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *SlackClient) Name() string {
	return "slack"
}

// Notify posts a message to the incoming webhook. Slack answers a literal
// "ok" body on success; anything else counts as failure.
func (c *SlackClient) Notify(message string) error {
	body, err := json.Marshal(webhookPayload{Text: message})
	if err != nil {
		return fmt.Errorf("marshal payload (slack): %w", err)
	}

	req, err := http.NewRequest("POST", c.webhookUrl, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("build request (slack): %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send notification (slack): %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body (slack): %w", err)
	}

	if resp.StatusCode != http.StatusOK || string(respBody) != "ok" {
		return fmt.Errorf("webhook error (slack): status %d, body %q", resp.StatusCode, respBody)
	}

	return nil
}
