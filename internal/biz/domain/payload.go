package domain

// ForwardPayload is the backend-agnostic message handed to forwarders.
// It is the only shape a forwarder may depend on.
type ForwardPayload struct {
	ChatTitle string `json:"chat_title"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	ChatID    int64  `json:"chat_id"`
	MessageID int    `json:"message_id"`
}
