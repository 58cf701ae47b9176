package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/travelmada/internal/config"
	"github.com/travelmada/internal/handler"
	"github.com/travelmada/internal/logging"
	"github.com/travelmada/internal/model"
	"github.com/travelmada/internal/router"
	"github.com/travelmada/internal/service"
	"github.com/travelmada/internal/session"
	"github.com/travelmada/internal/store"
)

const shutdownTimeout = 10 * time.Second

type app struct {
	cfg    config.AppConfig
	logger *logrus.Logger
	engine *gin.Engine
	ai     *service.AIAssistService
}

func newApp(cfg config.AppConfig) (*app, error) {
	logger := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	gin.SetMode(cfg.GinMode)

	contentStore, err := store.NewSeededContentStore()
	if err != nil {
		return nil, fmt.Errorf("seed content: %w", err)
	}
	contentStore.SetSettings(model.SiteSettings{SiteName: cfg.SiteName})

	destinations, err := store.SeedDestinations()
	if err != nil {
		return nil, fmt.Errorf("seed destinations: %w", err)
	}

	sessionStore, err := session.NewStore(session.Options{Secret: cfg.SessionSecret, Secure: cfg.CookieSecure})
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	ai := service.NewAIAssistService(service.AIAssistOptions{
		APIKey:     cfg.AIAPIKey,
		TextModel:  cfg.AITextModel,
		ImageModel: cfg.AIImageModel,
		Timeout:    cfg.AITimeout,
		Logger:     logger,
	})
	if !ai.Enabled() {
		logger.Warn("API_KEY is not set; AI assist features are disabled")
	}

	api := handler.NewAPI(handler.Options{
		Store:        contentStore,
		Destinations: destinations,
		AI:           ai,
		Logger:       logger,
	})
	engine := router.SetupRouter(router.Options{
		API:                  api,
		SessionStore:         sessionStore,
		Logger:               logger,
		ContactRatePerMinute: cfg.ContactRatePerMinute,
	})

	return &app{cfg: cfg, logger: logger, engine: engine, ai: ai}, nil
}

func runServe(ctx context.Context, opts *options) error {
	cfg := config.FromViper(opts.v)
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.ai.Close(); err != nil {
			a.logger.WithError(err).Warn("close ai client")
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.WithFields(logrus.Fields{
			"addr":     cfg.ListenAddr,
			"base_url": cfg.SiteBaseURL,
			"ai":       a.ai.Enabled(),
		}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
