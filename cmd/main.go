package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/ppdsupport/companion/internal/api/v1/handlers"
	"github.com/ppdsupport/companion/internal/config"
	"github.com/ppdsupport/companion/internal/services"
	"github.com/ppdsupport/companion/pkg/logger"
)

func main() {
	// A missing .env is fine, the environment may already be set
	envErr := godotenv.Load()

	logger.Setup(nil)
	appLog := logger.Namespace(logger.APP)

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		appLog.Warn().Err(envErr).Msg("Failed to load .env file")
	}

	config.WarnOnDefaultSecret()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svcs, err := services.InitializeServices(ctx)
	if err != nil {
		appLog.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer svcs.Close()

	r := setupRouter(svcs, handlers.Options{
		TypingDelay:    config.GetTypingDelay(),
		AllowedOrigins: config.GetAllowedOrigins(),
	})

	srv := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal().Err(err).Msg("ListenAndServe error")
		}
	}()

	<-ctx.Done()
	appLog.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func setupRouter(svcs *services.Services, opts handlers.Options) *mux.Router {
	r := mux.NewRouter()
	handlers.RegisterRoutes(r, svcs, opts)
	return r
}
