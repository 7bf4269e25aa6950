package assistant

// Role identifies the author of a transcript message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry of a chat transcript
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserMessage represents an incoming message from the widget
type UserMessage struct {
	Content   string `json:"content"`
	MessageID string `json:"message_id,omitempty"`
}

// AssistantResponse represents a frame sent back to the widget
type AssistantResponse struct {
	RequestID string   `json:"request_id"`
	MessageID string   `json:"message_id,omitempty"`
	Role      Role     `json:"role,omitempty"`
	Category  Category `json:"category,omitempty"`
	Content   string   `json:"content,omitempty"`
	Status    string   `json:"status"` // "typing", "complete", or "error"
}

// ResponseStatus defines the possible states of an assistant response
const (
	StatusTyping   = "typing"
	StatusComplete = "complete"
	StatusError    = "error"
)
