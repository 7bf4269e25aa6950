package chat

import (
	"context"

	"github.com/ppdsupport/companion/internal/assistant"
	"github.com/ppdsupport/companion/internal/services/chat/models"
	"github.com/sashabaranov/go-openai"
)

// Service defines the interface for chat operations
type Service interface {
	// ProcessChat answers the last user message of a transcript
	ProcessChat(ctx context.Context, transcript []assistant.Message) (*models.ChatReply, error)

	// ProcessCompletion answers an OpenAI-shaped chat completion request
	ProcessCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, assistant.Category, error)
}
