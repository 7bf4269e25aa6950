package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ppdsupport/companion/internal/assistant"
	"github.com/ppdsupport/companion/internal/infrastructure/redis"
	"github.com/ppdsupport/companion/internal/services/chat"
	"github.com/ppdsupport/companion/internal/services/session"
	"github.com/ppdsupport/companion/internal/services/transcript"
	"github.com/rs/zerolog/log"
)

var (
	// Mutex for thread-safe initialization
	servicesMu sync.RWMutex
)

const sweepInterval = 5 * time.Minute

type Services struct {
	chatService       *chat.Implementation
	redisService      *redis.Service
	sessionService    *session.Service
	transcriptService transcript.Store
}

// InitializeServices initializes all required services. Background work is
// tied to ctx.
func InitializeServices(ctx context.Context) (*Services, error) {
	servicesMu.Lock()
	defer servicesMu.Unlock()

	log.Info().Msg("Initializing core services")

	// Initialize Redis service (optional)
	redisService := redis.NewService()
	log.Info().Bool("enabled", redisService != nil).Msg("Initializing Redis service")

	// Initialize session service with optional Redis
	sessionService := session.NewService(redisService)
	sessionService.StartSweeper(ctx, sweepInterval)
	log.Info().Msg("Initializing session service")

	// Initialize transcript store with optional Redis
	transcriptService := transcript.NewService(redisService)
	if memoryStore, ok := transcriptService.(*transcript.MemoryStore); ok {
		memoryStore.StartSweeper(ctx, sweepInterval)
	}
	log.Info().Msg("Initializing transcript service")

	// Initialize chat service (required)
	chatService, err := chat.NewService(assistant.NewResponder(nil))
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize chat service - required for message processing")
		return nil, fmt.Errorf("failed to initialize chat service: %w", err)
	}
	log.Info().Msg("Initializing chat service")

	log.Info().Msg("All services initialized successfully")

	return &Services{
		chatService:       chatService,
		redisService:      redisService,
		sessionService:    sessionService,
		transcriptService: transcriptService,
	}, nil
}

// GetChatService returns the chat service
func (s *Services) GetChatService() *chat.Implementation {
	return s.chatService
}

// GetSessionService returns the session service
func (s *Services) GetSessionService() *session.Service {
	return s.sessionService
}

// GetTranscriptService returns the transcript store
func (s *Services) GetTranscriptService() transcript.Store {
	return s.transcriptService
}

// Close releases the Redis connection if one was opened
func (s *Services) Close() error {
	if s.redisService == nil {
		return nil
	}
	return s.redisService.Close()
}
