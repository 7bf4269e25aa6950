package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	v1chat "github.com/ppdsupport/companion/internal/api/v1/handlers/chat"
	v1ws "github.com/ppdsupport/companion/internal/api/v1/handlers/websocket"
	v1mware "github.com/ppdsupport/companion/internal/api/v1/middleware"
	"github.com/ppdsupport/companion/internal/connections"
	"github.com/ppdsupport/companion/internal/services"
	"github.com/ppdsupport/companion/internal/services/transcript"
)

// Options tune the transport without touching classification
type Options struct {
	TypingDelay    time.Duration
	AllowedOrigins []string
	Timeouts       connections.TimeoutConfig
}

func RegisterRoutes(router *mux.Router, services *services.Services, opts Options) {
	router.Use(v1mware.RequestLogger)

	recorder := transcript.NewRecorder(services.GetSessionService(), services.GetTranscriptService())

	router.HandleFunc("/healthz", HandleHealth).Methods("GET")

	// Submit endpoint used by the widget
	router.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		HandleSubmit(services.GetChatService(), recorder, w, r)
	}).Methods("POST")

	// v1 routes
	v1 := router.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/widget.js", func(w http.ResponseWriter, r *http.Request) {
		HandleWidgetJS(services.GetSessionService(), opts.TypingDelay, w, r)
	}).Methods("GET")

	v1.HandleFunc("/transcript", func(w http.ResponseWriter, r *http.Request) {
		HandleGetTranscript(recorder, w, r)
	}).Methods("GET")
	v1.HandleFunc("/transcript", func(w http.ResponseWriter, r *http.Request) {
		HandleClearTranscript(services.GetSessionService(), recorder, w, r)
	}).Methods("DELETE")

	timeouts := opts.Timeouts
	if timeouts == (connections.TimeoutConfig{}) {
		timeouts = connections.DefaultTimeouts
	}
	wsHandler := v1ws.NewHandler(
		services.GetChatService(),
		recorder,
		connections.NewManager(timeouts),
		opts.TypingDelay,
		opts.AllowedOrigins,
	)
	v1.Handle("/ws", wsHandler).Methods("GET")

	// v1 chat routes
	v1chatRouter := v1.PathPrefix("/chat").Subrouter()
	v1chatRouter.HandleFunc("/completions", func(w http.ResponseWriter, r *http.Request) {
		v1chat.HandleChatCompletions(services.GetChatService(), w, r)
	}).Methods("POST")
}
