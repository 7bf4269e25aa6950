package models

import (
	"github.com/ppdsupport/companion/internal/assistant"
)

// SubmitRequest is the body of the plain-text submit endpoint
type SubmitRequest struct {
	Messages []assistant.Message `json:"messages"`
}

// ChatReply represents the assistant's answer to a transcript
type ChatReply struct {
	ID       string             `json:"id"`
	Created  int64              `json:"created"`
	Category assistant.Category `json:"category"`
	Message  assistant.Message  `json:"message"`
}

// CompletionMessage is a chat message on the OpenAI-compatible endpoint
type CompletionMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content"`
}

// CompletionRequest is the subset of an OpenAI chat completion request the
// companion understands. Sampling fields are accepted and ignored.
type CompletionRequest struct {
	Model       string              `json:"model,omitempty" validate:"omitempty,max=64"`
	Messages    []CompletionMessage `json:"messages" validate:"required,min=1,dive"`
	Temperature float32             `json:"temperature,omitempty"`
	MaxTokens   int                 `json:"max_tokens,omitempty" validate:"gte=0"`
	User        string              `json:"user,omitempty"`
	Stream      bool                `json:"stream,omitempty"`
}
