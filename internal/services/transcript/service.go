package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ppdsupport/companion/internal/assistant"
	"github.com/ppdsupport/companion/internal/config"
	"github.com/ppdsupport/companion/internal/infrastructure/redis"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "transcript:"

// Store keeps the transcript of a widget session for the session's lifetime only
type Store interface {
	Append(ctx context.Context, sessionID string, messages ...assistant.Message) error
	Load(ctx context.Context, sessionID string) ([]assistant.Message, error)
	Clear(ctx context.Context, sessionID string) error
}

type RedisStore struct {
	redisService *redis.Service
	ttl          time.Duration
}

type memoryEntry struct {
	messages  []assistant.Message
	expiresAt time.Time
}

type MemoryStore struct {
	mu          sync.RWMutex
	ttl         time.Duration
	now         func() time.Time
	transcripts map[string]*memoryEntry
}

// NewService returns a Redis-backed store when Redis answers, memory otherwise
func NewService(redisService *redis.Service) Store {
	if redisService != nil {
		if err := redisService.Ping(context.Background()); err == nil {
			return &RedisStore{redisService: redisService, ttl: config.SessionLifetime}
		}
		log.Warn().Msg("Redis unavailable - using in-memory transcript store")
	}

	return NewMemoryStore(config.SessionLifetime)
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:         ttl,
		now:         time.Now,
		transcripts: make(map[string]*memoryEntry),
	}
}

// Redis Store implementation
func (rs *RedisStore) Append(ctx context.Context, sessionID string, messages ...assistant.Message) error {
	if len(messages) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(messages))
	for _, m := range messages {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to encode transcript message: %w", err)
		}
		values = append(values, string(data))
	}

	return rs.redisService.Append(ctx, keyPrefix+sessionID, rs.ttl, values...)
}

func (rs *RedisStore) Load(ctx context.Context, sessionID string) ([]assistant.Message, error) {
	raw, err := rs.redisService.Range(ctx, keyPrefix+sessionID)
	if err != nil {
		return nil, err
	}

	messages := make([]assistant.Message, 0, len(raw))
	for _, item := range raw {
		var m assistant.Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			return nil, fmt.Errorf("failed to decode transcript message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, nil
}

func (rs *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return rs.redisService.Delete(ctx, keyPrefix+sessionID)
}

// Memory Store implementation
func (ms *MemoryStore) Append(ctx context.Context, sessionID string, messages ...assistant.Message) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	entry, ok := ms.transcripts[sessionID]
	if !ok || now.After(entry.expiresAt) {
		entry = &memoryEntry{}
		ms.transcripts[sessionID] = entry
	}

	entry.messages = append(entry.messages, messages...)
	entry.expiresAt = now.Add(ms.ttl)
	return nil
}

func (ms *MemoryStore) Load(ctx context.Context, sessionID string) ([]assistant.Message, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	entry, ok := ms.transcripts[sessionID]
	if !ok || ms.now().After(entry.expiresAt) {
		return []assistant.Message{}, nil
	}

	out := make([]assistant.Message, len(entry.messages))
	copy(out, entry.messages)
	return out, nil
}

func (ms *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.transcripts, sessionID)
	return nil
}

// StartSweeper evicts expired transcripts every interval until ctx is done
func (ms *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := ms.Sweep(); n > 0 {
					log.Debug().Int("removed", n).Msg("Swept expired transcripts")
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Sweep drops expired transcripts and returns how many were removed
func (ms *MemoryStore) Sweep() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	removed := 0
	for id, entry := range ms.transcripts {
		if now.After(entry.expiresAt) {
			delete(ms.transcripts, id)
			removed++
		}
	}
	return removed
}
