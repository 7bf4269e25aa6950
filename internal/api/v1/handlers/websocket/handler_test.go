package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ppdsupport/companion/internal/assistant"
	"github.com/ppdsupport/companion/internal/connections"
	"github.com/ppdsupport/companion/internal/services/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firstPicker struct{}

func (firstPicker) Intn(int) int { return 0 }

func newTestServer(t *testing.T, typingDelay time.Duration, allowedOrigins []string) *httptest.Server {
	t.Helper()

	chatService, err := chat.NewService(assistant.NewResponder(firstPicker{}))
	require.NoError(t, err)

	handler := NewHandler(chatService, nil, connections.NewManager(connections.DefaultTimeouts), typingDelay, allowedOrigins)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) assistant.AssistantResponse {
	t.Helper()

	var frame assistant.AssistantResponse
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestWelcomeFrame(t *testing.T) {
	server := newTestServer(t, 0, nil)
	conn := dial(t, server, nil)

	welcome := readFrame(t, conn)
	assert.Equal(t, assistant.StatusComplete, welcome.Status)
	assert.Equal(t, assistant.RoleAssistant, welcome.Role)
	assert.Equal(t, assistant.WelcomeMessage, welcome.Content)
}

func TestTypingThenComplete(t *testing.T) {
	server := newTestServer(t, 50*time.Millisecond, nil)
	conn := dial(t, server, nil)
	readFrame(t, conn)

	require.NoError(t, conn.WriteJSON(assistant.UserMessage{Content: "hello", MessageID: "m1"}))

	typing := readFrame(t, conn)
	assert.Equal(t, assistant.StatusTyping, typing.Status)
	assert.Equal(t, "m1", typing.MessageID)
	assert.Empty(t, typing.Content)

	complete := readFrame(t, conn)
	assert.Equal(t, assistant.StatusComplete, complete.Status)
	assert.Equal(t, typing.RequestID, complete.RequestID)
	assert.Equal(t, "m1", complete.MessageID)
	assert.Equal(t, assistant.CategoryGreeting, complete.Category)
	assert.Equal(t, assistant.Responses(assistant.CategoryGreeting)[0], complete.Content)
}

func TestDisclaimerOverChannel(t *testing.T) {
	server := newTestServer(t, 0, nil)
	conn := dial(t, server, nil)
	readFrame(t, conn)

	require.NoError(t, conn.WriteJSON(assistant.UserMessage{Content: "Do I need therapy?"}))
	readFrame(t, conn)

	complete := readFrame(t, conn)
	assert.Equal(t, assistant.CategoryTreatment, complete.Category)
	assert.Equal(t, assistant.Responses(assistant.CategoryTreatment)[0]+assistant.Disclaimer, complete.Content)
}

func TestBusyWhileReplying(t *testing.T) {
	server := newTestServer(t, 300*time.Millisecond, nil)
	conn := dial(t, server, nil)
	readFrame(t, conn)

	require.NoError(t, conn.WriteJSON(assistant.UserMessage{Content: "hello", MessageID: "first"}))
	require.NoError(t, conn.WriteJSON(assistant.UserMessage{Content: "hotline?", MessageID: "second"}))

	typing := readFrame(t, conn)
	assert.Equal(t, assistant.StatusTyping, typing.Status)
	assert.Equal(t, "first", typing.MessageID)

	busy := readFrame(t, conn)
	assert.Equal(t, assistant.StatusError, busy.Status)
	assert.Equal(t, "second", busy.MessageID)
	assert.Equal(t, BusyMessage, busy.Content)

	complete := readFrame(t, conn)
	assert.Equal(t, assistant.StatusComplete, complete.Status)
	assert.Equal(t, "first", complete.MessageID)

	t.Run("accepts a new message once the reply is delivered", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(assistant.UserMessage{Content: "hotline?", MessageID: "third"}))
		assert.Equal(t, assistant.StatusTyping, readFrame(t, conn).Status)

		next := readFrame(t, conn)
		assert.Equal(t, "third", next.MessageID)
		assert.Equal(t, assistant.CategoryResources, next.Category)
	})
}

func TestInvalidAndBlankMessages(t *testing.T) {
	server := newTestServer(t, 0, nil)
	conn := dial(t, server, nil)
	readFrame(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	invalid := readFrame(t, conn)
	assert.Equal(t, assistant.StatusError, invalid.Status)
	assert.Equal(t, "Invalid message format", invalid.Content)

	// Blank content produces no frame, so the next frame answers the follow-up
	require.NoError(t, conn.WriteJSON(assistant.UserMessage{Content: "   ", MessageID: "blank"}))
	require.NoError(t, conn.WriteJSON(assistant.UserMessage{Content: "thanks", MessageID: "real"}))

	typing := readFrame(t, conn)
	assert.Equal(t, "real", typing.MessageID)
	complete := readFrame(t, conn)
	assert.Equal(t, assistant.CategoryGeneral, complete.Category)
}

func TestCheckOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{name: "no allow list", allowed: nil, origin: "https://evil.example", want: true},
		{name: "no origin header", allowed: []string{"example.org"}, origin: "", want: true},
		{name: "host match", allowed: []string{"example.org"}, origin: "https://example.org", want: true},
		{name: "full origin match", allowed: []string{"https://example.org"}, origin: "https://example.org", want: true},
		{name: "case insensitive", allowed: []string{"Example.org"}, origin: "https://example.org", want: true},
		{name: "rejected", allowed: []string{"example.org"}, origin: "https://evil.example", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/v1/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, checkOrigin(tt.allowed)(r))
		})
	}
}

func TestRejectedOriginCannotUpgrade(t *testing.T) {
	server := newTestServer(t, 0, []string{"example.org"})

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
