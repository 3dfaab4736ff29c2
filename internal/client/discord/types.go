package discord

type webhookPayload struct {
	Content string `json:"content"`
}
