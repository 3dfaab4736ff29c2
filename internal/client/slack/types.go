package slack

type webhookPayload struct {
	Text string `json:"text"`
}
