package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ppdsupport/companion/internal/assistant"
	"github.com/ppdsupport/companion/internal/connections"
	"github.com/ppdsupport/companion/internal/services/chat"
	"github.com/ppdsupport/companion/internal/services/transcript"
	"github.com/rs/zerolog/log"
)

// BusyMessage is sent when a message arrives while a reply is still pending
const BusyMessage = "Please wait for the current reply before sending another message."

// Handler serves the widget chat channel
type Handler struct {
	chatService chat.Service
	recorder    *transcript.Recorder
	manager     *connections.Manager
	typingDelay time.Duration
	upgrader    websocket.Upgrader
}

// NewHandler creates the chat channel. An empty allowedOrigins accepts any origin.
func NewHandler(chatService chat.Service, recorder *transcript.Recorder, manager *connections.Manager, typingDelay time.Duration, allowedOrigins []string) *Handler {
	return &Handler{
		chatService: chatService,
		recorder:    recorder,
		manager:     manager,
		typingDelay: typingDelay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}

		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		for _, a := range allowed {
			if strings.EqualFold(a, origin) || strings.EqualFold(a, u.Host) {
				return true
			}
		}

		log.Warn().Str("origin", origin).Msg("Rejected websocket origin")
		return false
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := h.recorder.SessionID(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("client_ip", r.RemoteAddr).Msg("Websocket upgrade failed")
		return
	}

	h.manager.AddConnection(conn, sessionID)
	defer func() {
		if h.manager.Replying(conn) {
			log.Debug().Str("client_ip", r.RemoteAddr).Msg("Dropping pending reply for closed websocket")
		}
		h.manager.RemoveConnection(conn)
		conn.Close()
	}()

	log.Info().
		Str("client_ip", r.RemoteAddr).
		Bool("has_session", sessionID != "").
		Int("connections", h.manager.GetConnectionCount()).
		Msg("Chat websocket opened")

	// Hijacked connections do not cancel the request context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	timeouts := h.manager.GetTimeouts()

	// Set up ping/pong handlers
	conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))
	})

	go h.keepAlive(ctx, conn, timeouts)

	welcome := assistant.AssistantResponse{
		RequestID: uuid.New().String(),
		Role:      assistant.RoleAssistant,
		Content:   assistant.WelcomeMessage,
		Status:    assistant.StatusComplete,
	}
	if err := h.manager.WriteJSON(conn, welcome); err != nil {
		return
	}

	// Message handling loop
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("Unexpected websocket closure")
			}
			break
		}
		conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))

		if err := h.handleMessage(ctx, conn, data); err != nil {
			break
		}
	}

	log.Info().Str("client_ip", r.RemoteAddr).Msg("Chat websocket closed")
}

func (h *Handler) keepAlive(ctx context.Context, conn *websocket.Conn, timeouts connections.TimeoutConfig) {
	ticker := time.NewTicker(timeouts.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(timeouts.WriteWait)
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, deadline); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// handleMessage processes one client frame. Only write failures are returned.
func (h *Handler) handleMessage(ctx context.Context, conn *websocket.Conn, data []byte) error {
	var msg assistant.UserMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return h.sendError(conn, "", "Invalid message format")
	}

	// Mirrors the widget form, which ignores blank input
	if strings.TrimSpace(msg.Content) == "" {
		return nil
	}

	if !h.manager.BeginReply(conn) {
		return h.sendError(conn, msg.MessageID, BusyMessage)
	}

	requestID := uuid.New().String()
	typing := assistant.AssistantResponse{
		RequestID: requestID,
		MessageID: msg.MessageID,
		Role:      assistant.RoleAssistant,
		Status:    assistant.StatusTyping,
	}
	if err := h.manager.WriteJSON(conn, typing); err != nil {
		h.manager.EndReply(conn)
		return err
	}

	go h.reply(ctx, conn, requestID, msg)
	return nil
}

// reply delivers the answer after the typing delay, unless the connection closes first
func (h *Handler) reply(ctx context.Context, conn *websocket.Conn, requestID string, msg assistant.UserMessage) {
	defer h.manager.EndReply(conn)

	if h.typingDelay > 0 {
		timer := time.NewTimer(h.typingDelay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return
		}
	}

	if !h.manager.HasConnection(conn) {
		return
	}

	userMessage := assistant.Message{Role: assistant.RoleUser, Content: msg.Content}
	result, err := h.chatService.ProcessChat(ctx, []assistant.Message{userMessage})
	if err != nil {
		log.Error().Err(err).Str("request_id", requestID).Msg("Failed to process chat")
		h.sendError(conn, msg.MessageID, assistant.ApologyMessage)
		return
	}

	h.recorder.RecordSession(ctx, h.manager.SessionID(conn), userMessage, result.Message)

	response := assistant.AssistantResponse{
		RequestID: requestID,
		MessageID: msg.MessageID,
		Role:      assistant.RoleAssistant,
		Category:  result.Category,
		Content:   result.Message.Content,
		Status:    assistant.StatusComplete,
	}
	if err := h.manager.WriteJSON(conn, response); err != nil {
		log.Debug().Err(err).Str("request_id", requestID).Msg("Failed to deliver reply")
		return
	}

	log.Info().
		Str("request_id", requestID).
		Str("category", string(result.Category)).
		Msg("Chat reply delivered")
}

func (h *Handler) sendError(conn *websocket.Conn, messageID, errMsg string) error {
	response := assistant.AssistantResponse{
		RequestID: uuid.New().String(),
		MessageID: messageID,
		Content:   errMsg,
		Status:    assistant.StatusError,
	}
	return h.manager.WriteJSON(conn, response)
}
