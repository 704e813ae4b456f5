package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"bookstore/internal/config"
	"bookstore/pkg/container"
)

// Serve runs the UI until SIGINT or SIGTERM.
func Serve(cfg *config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	uiContainer, err := container.NewUIContainerFromConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize UI container")
	}
	defer uiContainer.Cleanup()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.UI.Port),
		Handler:           SetupRouter(uiContainer),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("api", cfg.UI.APIBaseURL).Msg("UI server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("UI server failed")
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("UI server forced to shutdown")
	}
	log.Info().Msg("UI server exited")
}
