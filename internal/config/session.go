package config

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultSessionSecret = "companion-development-secret"

var (
	sessionMu sync.RWMutex

	// Test overrides; nil means read the environment
	cookieNameOverride *string
	secretOverride     []byte
)

// SessionLifetime bounds how long a widget session and its transcript live
const SessionLifetime = 1 * time.Hour

// GetSessionCookieName returns the session cookie name from SESSION_COOKIE_NAME,
// default "companion_session"
func GetSessionCookieName() string {
	sessionMu.RLock()
	defer sessionMu.RUnlock()
	if cookieNameOverride != nil {
		return *cookieNameOverride
	}
	return GetEnvOrDefault("SESSION_COOKIE_NAME", "companion_session")
}

// SetSessionCookieName temporarily changes the session cookie name and returns a function to restore it
// This is primarily used for testing
func SetSessionCookieName(name string) func() {
	sessionMu.Lock()
	previous := cookieNameOverride
	cookieNameOverride = &name
	sessionMu.Unlock()

	return func() {
		sessionMu.Lock()
		cookieNameOverride = previous
		sessionMu.Unlock()
	}
}

// GetSessionSecret returns the cookie signing secret. The environment is read
// on every call so values loaded from .env after startup apply.
func GetSessionSecret() []byte {
	sessionMu.RLock()
	defer sessionMu.RUnlock()
	if secretOverride != nil {
		return secretOverride
	}
	return []byte(GetEnvOrDefault("SESSION_SECRET", defaultSessionSecret))
}

// SetSessionSecret temporarily changes the signing secret and returns a function to restore it
// This is primarily used for testing
func SetSessionSecret(secret []byte) func() {
	sessionMu.Lock()
	previous := secretOverride
	secretOverride = secret
	sessionMu.Unlock()

	return func() {
		sessionMu.Lock()
		secretOverride = previous
		sessionMu.Unlock()
	}
}

// GetSessionCookieSecure reports whether session cookies are marked Secure; enable behind TLS
func GetSessionCookieSecure() bool {
	return parseEnvBool("SESSION_COOKIE_SECURE", false)
}

// WarnOnDefaultSecret logs when the development signing secret is in use
func WarnOnDefaultSecret() {
	if string(GetSessionSecret()) == defaultSessionSecret {
		log.Warn().Msg("SESSION_SECRET not set - using development secret")
	}
}
