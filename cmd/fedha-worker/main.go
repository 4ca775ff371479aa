// Command fedha-worker consumes bill reminder events from RabbitMQ and
// delivers them by email. It runs alongside the web server and shares
// its configuration.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fedha/internal/amqp"
	"fedha/internal/config"
	applog "fedha/internal/log"
	"fedha/internal/notify"
)

func main() {
	logger := applog.New(applog.ComponentWorker, slog.LevelInfo)
	applog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env file", "error", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if !cfg.RemindersEnabled() {
		logger.Error("AMQP_URL must be set for the reminder worker")
		os.Exit(1)
	}
	if cfg.SMTPHost == "" {
		logger.Error("SMTP_HOST must be set for the reminder worker")
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to broker", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	sender := notify.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender, cfg.SMTPPassword)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Starting fedha-worker", "queue", cfg.AMQPQueue)
	if err := client.ConsumeBillReminders(ctx, func(msg *amqp.BillReminderMessage) error {
		return sender.SendBillReminder(ctx, msg)
	}); err != nil && ctx.Err() == nil {
		logger.Error("Consumer stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
