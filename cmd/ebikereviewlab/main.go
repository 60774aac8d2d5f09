package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ebikereviewlab/internal/app"
	"ebikereviewlab/internal/forms"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("ebikereviewlab stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg app.Config, logger *slog.Logger) error {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := app.NewDB(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if err := db.PingContext(shutdownCtx); err != nil {
			return err
		}
	}

	repo, err := app.OpenRepository(shutdownCtx, cfg, db)
	if err != nil {
		return err
	}
	placements, err := app.LoadCheckedPlacements(shutdownCtx, cfg, repo, logger)
	if err != nil {
		return err
	}

	webhook := forms.NewWebhook(cfg.WebhookURL, &http.Client{Timeout: cfg.WebhookTimeout})
	if !webhook.Configured() {
		logger.Warn("GOOGLE_WEB_APP_URL not set, form submissions will not be forwarded")
	}

	handler, err := app.NewServer(cfg, app.Dependencies{
		Repository: repo,
		Placements: placements,
		Forms:      forms.NewService(webhook, cfg.FailurePolicy, logger),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("ebikereviewlab listening", "addr", srv.Addr, "site_url", cfg.SiteURL, "database", cfg.Driver != "")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-shutdownCtx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", "error", err)
	}
	return nil
}
