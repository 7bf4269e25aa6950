package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ppdsupport/companion/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requestWithCookies copies the cookies set on a recorder into a new request
func requestWithCookies(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestSessionLifecycle(t *testing.T) {
	defer config.SetSessionSecret([]byte("test-secret"))()

	svc := NewService(nil)

	w := httptest.NewRecorder()
	sessionID, err := svc.CreateSession(context.Background(), w)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, config.GetSessionCookieName(), cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	claims, err := svc.ValidateSession(requestWithCookies(w))
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, sessionID, claims.SessionID)

	cleared := httptest.NewRecorder()
	svc.ClearSession(cleared, requestWithCookies(w))

	claims, err = svc.ValidateSession(requestWithCookies(w))
	assert.NoError(t, err)
	assert.Nil(t, claims, "cleared session must not validate")
}

func TestValidateSession(t *testing.T) {
	defer config.SetSessionSecret([]byte("test-secret"))()

	svc := NewService(nil)

	t.Run("no cookie", func(t *testing.T) {
		claims, err := svc.ValidateSession(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NoError(t, err)
		assert.Nil(t, claims)
	})

	t.Run("garbage cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: config.GetSessionCookieName(), Value: "not-a-jwt"})

		claims, err := svc.ValidateSession(r)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("wrong signing secret", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, err := svc.CreateSession(context.Background(), w)
		require.NoError(t, err)

		restore := config.SetSessionSecret([]byte("another-secret"))
		defer restore()

		claims, err := svc.ValidateSession(requestWithCookies(w))
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("signed but unknown session", func(t *testing.T) {
		claims := &SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			SessionID: "never-stored",
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.GetSessionSecret())
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: config.GetSessionCookieName(), Value: token})

		got, err := svc.ValidateSession(r)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()

	expired := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		SessionID: "old",
	}
	require.NoError(t, store.Set(ctx, "old", expired))

	got, err := store.Get(ctx, "old")
	assert.NoError(t, err)
	assert.Nil(t, got)

	store.mu.RLock()
	_, stillThere := store.sessions["old"]
	store.mu.RUnlock()
	assert.False(t, stillThere, "expired session should be evicted on read")
}

func TestMemoryStoreSweep(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		id := fmt.Sprintf("s%d", i)
		claims := &SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(config.SessionLifetime)),
			},
			SessionID: id,
		}
		require.NoError(t, store.Set(ctx, id, claims))
	}
	live := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(3 * config.SessionLifetime)),
		},
		SessionID: "live",
	}
	require.NoError(t, store.Set(ctx, "live", live))

	assert.Equal(t, 0, store.Sweep(), "nothing has expired yet")

	now = now.Add(2 * config.SessionLifetime)
	assert.Equal(t, 1000, store.Sweep())

	store.mu.RLock()
	remaining := len(store.sessions)
	store.mu.RUnlock()
	assert.Equal(t, 1, remaining)

	got, err := store.Get(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "live", got.SessionID)
}

func TestStartSweeperEvictsInBackground(t *testing.T) {
	svc := NewService(nil)
	store := svc.store.(*MemoryStore)

	expired := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		SessionID: "old",
	}
	require.NoError(t, store.Set(context.Background(), "old", expired))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.StartSweeper(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		store.mu.RLock()
		defer store.mu.RUnlock()
		return len(store.sessions) == 0
	}, time.Second, 10*time.Millisecond)
}
