package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ppdsupport/companion/internal/config"
	"github.com/ppdsupport/companion/internal/infrastructure/redis"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "session:"

type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

type SessionStore interface {
	Set(ctx context.Context, sessionID string, claims *SessionClaims) error
	Get(ctx context.Context, sessionID string) (*SessionClaims, error)
	Delete(ctx context.Context, sessionID string) error
}

type RedisStore struct {
	redisService *redis.Service
}

type MemoryStore struct {
	mu       sync.RWMutex
	now      func() time.Time
	sessions map[string]*SessionClaims
}

type Service struct {
	store SessionStore
}

func NewService(redisService *redis.Service) *Service {
	var store SessionStore
	if redisService != nil {
		// Test Redis connection
		if err := redisService.Ping(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Redis unavailable - using in-memory session store")
			store = newMemoryStore()
		} else {
			store = &RedisStore{redisService: redisService}
		}
	} else {
		store = newMemoryStore()
	}

	return &Service{store: store}
}

func newMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:      time.Now,
		sessions: make(map[string]*SessionClaims),
	}
}

func (c *SessionClaims) expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(c.ExpiresAt.Time)
}

// Redis Store implementation
func (rs *RedisStore) Set(ctx context.Context, sessionID string, claims *SessionClaims) error {
	data, err := json.Marshal(claims)
	if err != nil {
		return err
	}

	return rs.redisService.Set(ctx, keyPrefix+sessionID, string(data), config.SessionLifetime)
}

func (rs *RedisStore) Get(ctx context.Context, sessionID string) (*SessionClaims, error) {
	data, err := rs.redisService.Get(ctx, keyPrefix+sessionID)
	if errors.Is(err, redis.ErrNil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var claims SessionClaims
	if err := json.Unmarshal([]byte(data), &claims); err != nil {
		return nil, err
	}

	return &claims, nil
}

func (rs *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return rs.redisService.Delete(ctx, keyPrefix+sessionID)
}

// Memory Store implementation
func (ms *MemoryStore) Set(ctx context.Context, sessionID string, claims *SessionClaims) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sessions[sessionID] = claims
	return nil
}

func (ms *MemoryStore) Get(ctx context.Context, sessionID string) (*SessionClaims, error) {
	ms.mu.RLock()
	claims, exists := ms.sessions[sessionID]
	ms.mu.RUnlock()
	if !exists {
		return nil, nil
	}

	if claims.expired(ms.now()) {
		_ = ms.Delete(ctx, sessionID)
		return nil, nil
	}

	return claims, nil
}

func (ms *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.sessions, sessionID)
	return nil
}

// StartSweeper evicts expired sessions every interval until ctx is done
func (ms *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := ms.Sweep(); n > 0 {
					log.Debug().Int("removed", n).Msg("Swept expired sessions")
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Sweep drops expired sessions and returns how many were removed
func (ms *MemoryStore) Sweep() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	removed := 0
	for id, claims := range ms.sessions {
		if claims.expired(now) {
			delete(ms.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs the memory store's sweeper. Redis expires keys itself.
func (s *Service) StartSweeper(ctx context.Context, interval time.Duration) {
	if ms, ok := s.store.(*MemoryStore); ok {
		ms.StartSweeper(ctx, interval)
	}
}

// CreateSession starts an anonymous widget session, sets its cookie and
// returns the new session ID
func (s *Service) CreateSession(ctx context.Context, w http.ResponseWriter) (string, error) {
	now := time.Now()
	sessionID := uuid.New().String()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(config.SessionLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        sessionID,
		},
		SessionID: sessionID,
	}

	if err := s.store.Set(ctx, sessionID, claims); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(config.GetSessionSecret())
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.GetSessionCookieName(),
		Value:    signedToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   config.GetSessionCookieSecure(),
		SameSite: http.SameSiteLaxMode,
		Expires:  now.Add(config.SessionLifetime),
	})

	return sessionID, nil
}

// ValidateSession checks if a valid session cookie exists and returns the claims.
// A request without a session yields nil claims and no error.
func (s *Service) ValidateSession(r *http.Request) (*SessionClaims, error) {
	claims, err := parseCookie(r)
	if err != nil || claims == nil {
		return nil, err
	}

	// Verify session exists in store
	storedClaims, err := s.store.Get(r.Context(), claims.SessionID)
	if err != nil {
		return nil, err
	}
	if storedClaims == nil {
		return nil, nil
	}

	return claims, nil
}

// ClearSession removes the session from storage and expires the cookie
func (s *Service) ClearSession(w http.ResponseWriter, r *http.Request) {
	if claims, err := parseCookie(r); err == nil && claims != nil {
		if err := s.store.Delete(r.Context(), claims.SessionID); err != nil {
			log.Warn().Err(err).Str("session_id", claims.SessionID).Msg("Failed to delete session")
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.GetSessionCookieName(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   config.GetSessionCookieSecure(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
		MaxAge:   -1,
	})
}

func parseCookie(r *http.Request) (*SessionClaims, error) {
	cookie, err := r.Cookie(config.GetSessionCookieName())
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	token, err := jwt.ParseWithClaims(cookie.Value, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return config.GetSessionSecret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session cookie: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, nil
	}

	return claims, nil
}
