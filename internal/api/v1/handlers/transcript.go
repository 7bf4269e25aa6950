package handlers

import (
	"net/http"

	"github.com/ppdsupport/companion/internal/assistant"
	"github.com/ppdsupport/companion/internal/services/session"
	"github.com/ppdsupport/companion/internal/services/transcript"
	"github.com/ppdsupport/companion/pkg/httpext"
	"github.com/rs/zerolog/log"
)

type TranscriptResponse struct {
	Messages []assistant.Message `json:"messages"`
}

// HandleGetTranscript returns the caller's session transcript
func HandleGetTranscript(recorder *transcript.Recorder, w http.ResponseWriter, r *http.Request) {
	messages, err := recorder.Load(r)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load transcript")
		httpext.JsonError(w, "Failed to load transcript", http.StatusInternalServerError)
		return
	}

	httpext.JsonResponse(w, http.StatusOK, TranscriptResponse{Messages: messages})
}

// HandleClearTranscript forgets the caller's transcript and ends the session
func HandleClearTranscript(sessionService *session.Service, recorder *transcript.Recorder, w http.ResponseWriter, r *http.Request) {
	if err := recorder.Clear(r); err != nil {
		log.Error().Err(err).Msg("Failed to clear transcript")
		httpext.JsonError(w, "Failed to clear transcript", http.StatusInternalServerError)
		return
	}

	sessionService.ClearSession(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// HandleHealth reports liveness
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	httpext.JsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
