package connections

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// TimeoutConfig holds the various timeout settings for WebSocket connections
type TimeoutConfig struct {
	PongWait   time.Duration
	PingPeriod time.Duration
	WriteWait  time.Duration
}

// connState is the per-connection bookkeeping
type connState struct {
	sessionID string
	replying  atomic.Bool
	writeMu   sync.Mutex
}

// Manager handles WebSocket connection lifecycle
type Manager struct {
	connections sync.Map
	timeouts    TimeoutConfig
}

// DefaultTimeouts provides sensible default timeout values
var DefaultTimeouts = TimeoutConfig{
	PongWait:   30 * time.Second,
	PingPeriod: 27 * time.Second, // (PongWait * 9) / 10
	WriteWait:  10 * time.Second,
}

// NewManager creates a new connection manager with the specified timeouts
func NewManager(timeouts TimeoutConfig) *Manager {
	return &Manager{
		timeouts: timeouts,
	}
}

// AddConnection registers a new WebSocket connection and the widget session it belongs to
func (m *Manager) AddConnection(conn *websocket.Conn, sessionID string) {
	m.connections.Store(conn, &connState{sessionID: sessionID})
}

// RemoveConnection removes a WebSocket connection
func (m *Manager) RemoveConnection(conn *websocket.Conn) {
	m.connections.Delete(conn)
}

// GetConnectionCount returns the current number of active connections
func (m *Manager) GetConnectionCount() int {
	count := 0
	m.connections.Range(func(key, value interface{}) bool {
		count++
		return true
	})
	return count
}

// HasConnection checks if a specific connection exists
func (m *Manager) HasConnection(conn *websocket.Conn) bool {
	_, exists := m.connections.Load(conn)
	return exists
}

// SessionID returns the widget session bound to a connection, if any
func (m *Manager) SessionID(conn *websocket.Conn) string {
	if state := m.state(conn); state != nil {
		return state.sessionID
	}
	return ""
}

// BeginReply marks a reply as in flight on conn. It returns false when a
// reply is already pending or the connection is unknown.
func (m *Manager) BeginReply(conn *websocket.Conn) bool {
	state := m.state(conn)
	if state == nil {
		return false
	}
	return state.replying.CompareAndSwap(false, true)
}

// EndReply clears the in-flight marker set by BeginReply
func (m *Manager) EndReply(conn *websocket.Conn) {
	if state := m.state(conn); state != nil {
		state.replying.Store(false)
	}
}

// Replying reports whether conn has a reply in flight
func (m *Manager) Replying(conn *websocket.Conn) bool {
	if state := m.state(conn); state != nil {
		return state.replying.Load()
	}
	return false
}

// WriteJSON serializes writes to conn, which allows one concurrent writer only
func (m *Manager) WriteJSON(conn *websocket.Conn, v interface{}) error {
	state := m.state(conn)
	if state == nil {
		return websocket.ErrCloseSent
	}

	state.writeMu.Lock()
	defer state.writeMu.Unlock()

	if err := conn.SetWriteDeadline(time.Now().Add(m.GetTimeouts().WriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

// GetTimeouts returns the timeout configuration
func (m *Manager) GetTimeouts() TimeoutConfig {
	return m.timeouts
}

func (m *Manager) state(conn *websocket.Conn) *connState {
	v, ok := m.connections.Load(conn)
	if !ok {
		return nil
	}
	return v.(*connState)
}
