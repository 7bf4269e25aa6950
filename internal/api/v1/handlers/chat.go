package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ppdsupport/companion/internal/assistant"
	"github.com/ppdsupport/companion/internal/services/chat"
	"github.com/ppdsupport/companion/internal/services/chat/models"
	"github.com/ppdsupport/companion/internal/services/transcript"
	"github.com/ppdsupport/companion/pkg/httpext"
	"github.com/rs/zerolog/log"
)

// HandleSubmit answers the last user message of a posted transcript with a
// plain text body. A body that cannot be parsed yields a 500 with a generic
// message; a missing transcript is answered as an empty message.
func HandleSubmit(chatService chat.Service, recorder *transcript.Recorder, w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Str("client_ip", r.RemoteAddr).Msg("Failed to parse chat transcript")
		httpext.PlainError(w, assistant.ServerErrorMessage, http.StatusInternalServerError)
		return
	}

	reply, err := chatService.ProcessChat(r.Context(), req.Messages)
	if err != nil {
		log.Error().Err(err).Int("message_count", len(req.Messages)).Msg("Failed to process chat")
		httpext.PlainError(w, assistant.ServerErrorMessage, http.StatusInternalServerError)
		return
	}

	recorder.Record(r,
		assistant.Message{Role: assistant.RoleUser, Content: assistant.LastUserMessage(req.Messages)},
		reply.Message,
	)

	log.Info().
		Int("message_count", len(req.Messages)).
		Str("category", string(reply.Category)).
		Msg("Chat message answered")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(reply.Message.Content)); err != nil {
		log.Error().Err(err).Msg("Failed to write chat response")
	}
}
