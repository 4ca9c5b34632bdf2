// Package assistantservice wires configuration, the thread store, the memory
// aggregator, the prompt composer, and the model adapter into the FocusFlow
// HTTP service.
package assistantservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/ajshul/focusflow/internal/api/http"
	"github.com/ajshul/focusflow/internal/chat"
	"github.com/ajshul/focusflow/internal/config"
	"github.com/ajshul/focusflow/internal/llm"
	"github.com/ajshul/focusflow/internal/logger"
	"github.com/ajshul/focusflow/internal/memory"
	"github.com/ajshul/focusflow/internal/prompt"
	"github.com/ajshul/focusflow/internal/store"
	memstore "github.com/ajshul/focusflow/internal/store/memory"
	"github.com/ajshul/focusflow/internal/store/resilient"
	"github.com/ajshul/focusflow/internal/store/sqlite"
)

// Run starts the assistant service HTTP server and blocks until shutdown or
// error.
func Run() error {
	log := logger.New("focusflow")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := newStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Thread store unavailable")
		return err
	}

	invoker := llm.NewOpenAI(llm.OpenAIConfig{
		BaseURL:     cfg.ModelBaseURL,
		APIKey:      cfg.ModelAPIKey,
		Model:       cfg.ModelName,
		Temperature: cfg.ModelTemperature,
		Timeout:     cfg.ModelTimeout,
	})

	agg := memory.NewAggregator(st, log)
	composer := prompt.NewComposer(cfg.HistoryWindow)
	svc := chat.NewService(st, agg, composer, invoker, log)

	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           httpapi.NewRouter(svc, st),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newStore builds the configured backend and wraps it with retry and sticky
// in-memory fallback. The memory driver is not wrapped; there is nothing to
// fall back from.
func newStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	switch cfg.DBDriver {
	case "memory":
		log.Warn().Msg("Using volatile in-memory thread store, conversations will not survive restarts")
		return memstore.New(), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
		primary, err := sqlite.New(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return resilient.New(primary, memstore.New(), log,
			resilient.WithMaxAttempts(cfg.StoreMaxAttempts)), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}
