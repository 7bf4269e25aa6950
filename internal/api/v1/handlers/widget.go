package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ppdsupport/companion/internal/assistant"
	"github.com/ppdsupport/companion/internal/services/session"
	"github.com/rs/zerolog/log"
)

// WidgetConfig is handed to the browser widget as window.COMPANION_WIDGET
type WidgetConfig struct {
	Welcome            string   `json:"welcome"`
	SuggestedQuestions []string `json:"suggestedQuestions"`
	TypingDelayMs      int64    `json:"typingDelayMs"`
	Apology            string   `json:"apology"`
	SubmitURL          string   `json:"submitUrl"`
	SocketURL          string   `json:"socketUrl"`
	TranscriptURL      string   `json:"transcriptUrl"`
}

func HandleWidgetJS(sessionService *session.Service, typingDelay time.Duration, w http.ResponseWriter, r *http.Request) {
	log.Info().
		Str("client_ip", r.RemoteAddr).
		Str("user_agent", r.UserAgent()).
		Msg("Widget.js requested")

	// Reuse a live session, otherwise start an anonymous one
	claims, err := sessionService.ValidateSession(r)
	if err != nil {
		log.Debug().Err(err).Msg("Discarding invalid session cookie")
	}
	if claims == nil {
		sessionID, err := sessionService.CreateSession(r.Context(), w)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create session for widget")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		log.Info().
			Str("client_ip", r.RemoteAddr).
			Str("session_id", sessionID).
			Msg("Anonymous session created for widget")
	}

	cfg := WidgetConfig{
		Welcome:            assistant.WelcomeMessage,
		SuggestedQuestions: assistant.SuggestedQuestions(),
		TypingDelayMs:      typingDelay.Milliseconds(),
		Apology:            assistant.ApologyMessage,
		SubmitURL:          "/api/chat",
		SocketURL:          "/v1/ws",
		TranscriptURL:      "/v1/transcript",
	}

	payload, err := json.Marshal(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode widget config")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Set appropriate headers
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	js := fmt.Sprintf("window.COMPANION_WIDGET = %s;\n", payload)

	if _, err := w.Write([]byte(js)); err != nil {
		return
	}

	log.Info().
		Str("client_ip", r.RemoteAddr).
		Int("content_length", len(js)).
		Msg("Widget.js served successfully")
}
