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

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"fedha/internal/amqp"
	"fedha/internal/auth"
	"fedha/internal/config"
	"fedha/internal/export"
	apphttp "fedha/internal/http"
	applog "fedha/internal/log"
	"fedha/internal/services"
	"fedha/internal/storage"
)

func main() {
	logger := applog.New(applog.ComponentApp, slog.LevelInfo)
	applog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env file", "error", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Initialized data backend", "backend", cfg.DataBackend)

	opts := apphttp.Options{ReportCacheTTL: cfg.ReportCacheTTL}

	if cfg.SheetsExportEnabled() {
		exporter, err := export.NewSheetsExporter(context.Background(),
			cfg.GoogleSpreadsheetID, cfg.GoogleSheetName,
			[]byte(cfg.GoogleOAuthClientJSON), []byte(cfg.GoogleOAuthTokenJSON))
		if err != nil {
			logger.Error("Failed to initialize sheets export", "error", err)
			os.Exit(1)
		}
		opts.Exporter = exporter
		logger.Info("Sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	}

	authMgr := auth.NewManager(cfg.JWTSecret, cfg.SessionTTL)

	srv, err := apphttp.NewServer(":"+cfg.Port, store, authMgr, opts)
	if err != nil {
		logger.Error("Failed to build server", "error", err)
		os.Exit(1)
	}
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The reminder sweep is optional: without a broker the app still
	// serves the diary and reports, it just never emails anyone.
	if cfg.RemindersEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Reminder publishing disabled, broker unreachable", "error", err)
		} else {
			defer client.Close()
			reminders := services.NewReminderService(store, client)
			c, err := reminders.Schedule(ctx, cfg.ReminderCronSpec)
			if err != nil {
				logger.Error("Failed to schedule reminder sweep", "error", err, "cron", cfg.ReminderCronSpec)
				os.Exit(1)
			}
			defer c.Stop()
			logger.Info("Reminder sweep scheduled", "cron", cfg.ReminderCronSpec)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting fedha server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.DataBackend {
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	}
}
