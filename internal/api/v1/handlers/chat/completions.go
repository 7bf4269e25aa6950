package chat

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ppdsupport/companion/internal/services/chat"
	"github.com/ppdsupport/companion/internal/services/chat/models"
	"github.com/ppdsupport/companion/pkg/httpext"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// CategoryHeader carries the category the reply was drawn from
const CategoryHeader = "X-Companion-Category"

// use a single instance of Validate, it caches struct info
var validate = validator.New(validator.WithRequiredStructEnabled())

// HandleChatCompletions answers OpenAI-shaped chat completion requests with a
// canned reply, so OpenAI client libraries can talk to the companion
func HandleChatCompletions(chatService chat.Service, w http.ResponseWriter, r *http.Request) {
	// Parse request
	var req models.CompletionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	// Validate request against model constraints
	if err := validate.Struct(req); err != nil {
		log.Warn().Err(err).Msg("Request validation failed")
		httpext.JsonError(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	if req.Stream {
		httpext.JsonError(w, "Streaming is not supported", http.StatusBadRequest)
		return
	}

	// trace level log of the JSON request body pretty printed
	if log.Trace().Enabled() {
		prettyJSON, err := json.MarshalIndent(req, "", "    ")
		if err == nil {
			log.Trace().RawJSON("request_body", prettyJSON).Msg("Incoming completions request")
		}
	}

	log.Info().
		Int("message_count", len(req.Messages)).
		Str("client_ip", r.RemoteAddr).
		Msg("Received chat completions request")

	openaiReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		User:        req.User,
	}
	for _, m := range req.Messages {
		openaiReq.Messages = append(openaiReq.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	// Process chat
	resp, category, err := chatService.ProcessCompletion(r.Context(), openaiReq)
	if err != nil {
		log.Error().Err(err).Int("message_count", len(req.Messages)).Msg("Failed to process chat")
		httpext.JsonError(w, "Failed to process chat", http.StatusInternalServerError)
		return
	}

	// Send response
	w.Header().Set(CategoryHeader, string(category))
	httpext.JsonResponse(w, http.StatusOK, resp)

	log.Info().
		Str("client_ip", r.RemoteAddr).
		Str("category", string(category)).
		Int("status", http.StatusOK).
		Msg("Chat completions request processed successfully")
}
