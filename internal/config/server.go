package config

import (
	"time"
)

// DefaultTypingDelay is the pause before an assistant reply is delivered
const DefaultTypingDelay = 1 * time.Second

func GetPort() string {
	return GetEnvOrDefault("PORT", "8080")
}

// GetTypingDelay returns the simulated typing delay; zero disables it
func GetTypingDelay() time.Duration {
	return parseEnvDuration("TYPING_DELAY", DefaultTypingDelay)
}

// GetAllowedOrigins returns the origins allowed to open the chat websocket.
// An empty list allows any origin.
func GetAllowedOrigins() []string {
	return parseEnvList("WS_ALLOWED_ORIGINS")
}
