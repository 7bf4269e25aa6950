package transcript

import (
	"context"
	"net/http"

	"github.com/ppdsupport/companion/internal/assistant"
	"github.com/ppdsupport/companion/internal/services/session"
	"github.com/rs/zerolog/log"
)

// SessionValidator resolves the widget session of a request
type SessionValidator interface {
	ValidateSession(r *http.Request) (*session.SessionClaims, error)
}

// Recorder appends chat exchanges to the transcript of the caller's session.
// Requests without a session are not recorded, and store failures never
// surface to the chat reply.
type Recorder struct {
	sessions SessionValidator
	store    Store
}

func NewRecorder(sessions SessionValidator, store Store) *Recorder {
	return &Recorder{sessions: sessions, store: store}
}

// SessionID returns the session of r, or an empty string
func (rec *Recorder) SessionID(r *http.Request) string {
	if rec == nil || rec.sessions == nil {
		return ""
	}

	claims, err := rec.sessions.ValidateSession(r)
	if err != nil {
		log.Debug().Err(err).Msg("Ignoring invalid session cookie")
		return ""
	}
	if claims == nil {
		return ""
	}
	return claims.SessionID
}

// Record appends messages to the transcript of the session attached to r
func (rec *Recorder) Record(r *http.Request, messages ...assistant.Message) {
	rec.RecordSession(r.Context(), rec.SessionID(r), messages...)
}

// RecordSession appends messages to a known session's transcript
func (rec *Recorder) RecordSession(ctx context.Context, sessionID string, messages ...assistant.Message) {
	if rec == nil || rec.store == nil || sessionID == "" {
		return
	}

	if err := rec.store.Append(ctx, sessionID, messages...); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to record transcript")
	}
}

// Load returns the transcript of the session attached to r. Requests
// without a session get an empty transcript.
func (rec *Recorder) Load(r *http.Request) ([]assistant.Message, error) {
	sessionID := rec.SessionID(r)
	if sessionID == "" || rec.store == nil {
		return []assistant.Message{}, nil
	}
	return rec.store.Load(r.Context(), sessionID)
}

// Clear drops the transcript of the session attached to r
func (rec *Recorder) Clear(r *http.Request) error {
	sessionID := rec.SessionID(r)
	if sessionID == "" || rec.store == nil {
		return nil
	}
	return rec.store.Clear(r.Context(), sessionID)
}
