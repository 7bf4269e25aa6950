package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ppdsupport/companion/internal/assistant"
	"github.com/ppdsupport/companion/internal/services/chat/models"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// ModelName is reported as the model of every completion
const ModelName = "companion-rules-v1"

type Implementation struct {
	responder *assistant.Responder
}

func NewService(responder *assistant.Responder) (*Implementation, error) {
	if responder == nil {
		return nil, fmt.Errorf("responder is required")
	}

	return &Implementation{
		responder: responder,
	}, nil
}

func (s *Implementation) ProcessChat(ctx context.Context, transcript []assistant.Message) (*models.ChatReply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reply := s.responder.RespondToTranscript(transcript)

	log.Debug().
		Int("message_count", len(transcript)).
		Str("category", string(reply.Category)).
		Msg("Classified chat message")

	return &models.ChatReply{
		ID:       newID(),
		Created:  time.Now().Unix(),
		Category: reply.Category,
		Message: assistant.Message{
			Role:    assistant.RoleAssistant,
			Content: reply.Text,
		},
	}, nil
}

func (s *Implementation) ProcessCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, assistant.Category, error) {
	transcript := make([]assistant.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		transcript = append(transcript, assistant.Message{
			Role:    assistant.Role(m.Role),
			Content: m.Content,
		})
	}

	reply, err := s.ProcessChat(ctx, transcript)
	if err != nil {
		return nil, "", err
	}

	return &openai.ChatCompletionResponse{
		ID:      reply.ID,
		Object:  "chat.completion",
		Created: reply.Created,
		Model:   ModelName,
		Choices: []openai.ChatCompletionChoice{{
			Index: 0,
			Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: reply.Message.Content,
			},
			FinishReason: openai.FinishReasonStop,
		}},
	}, reply.Category, nil
}

func newID() string {
	return fmt.Sprintf("companion-%s", uuid.New().String()[:8])
}
