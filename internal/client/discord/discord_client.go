package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type DiscordClient struct {
	webhookUrl string
	httpClient *http.Client
}

func NewDiscordClient(webhookUrl string) *DiscordClient {
	return &DiscordClient{
		webhookUrl: webhookUrl,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *DiscordClient) Name() string {
	return "discord"
}

// Notify posts a message to the webhook. Discord answers 204 No Content on
// success, so any 2xx status is accepted.
func (c *DiscordClient) Notify(message string) error {
	body, err := json.Marshal(webhookPayload{Content: message})
	if err != nil {
		return fmt.Errorf("marshal payload (discord): %w", err)
	}

	req, err := http.NewRequest("POST", c.webhookUrl, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("build request (discord): %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send notification (discord): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook error (discord): status %d, body %q", resp.StatusCode, errorBody)
	}

	return nil
}
