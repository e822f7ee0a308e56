// Command receipt-consumer reads order receipts from kafka and hands them to
// the printing side. Offsets are committed only after a receipt is handled.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/IBM/sarama"

	"github.com/vinicius342/AnotaJa-sub000/config"
	"github.com/vinicius342/AnotaJa-sub000/logger"
	"github.com/vinicius342/AnotaJa-sub000/models"
	"github.com/vinicius342/AnotaJa-sub000/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	if err := run(cfg, log); err != nil {
		log.Error("consumer stopped", "error", err)
		os.Exit(1)
	}
	log.Info("signal received, shutting down")
}

func run(cfg *config.Config, log *slog.Logger) error {
	group, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID, services.NewConsumerConfig())
	if err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	defer group.Close()

	go func() {
		for err := range group.Errors() {
			log.Warn("consumer error", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := services.NewReceiptConsumer(func(_ context.Context, r models.Receipt) error {
		log.Info("receipt received",
			"order_id", r.OrderID,
			"printer", r.Printer,
			"customer", r.Customer.Name,
			"lines", len(r.Lines),
			"total", r.Total.StringFixed(2),
		)
		return nil
	}, log)

	log.Info("consuming receipts", "topic", cfg.Kafka.Topic, "group_id", cfg.Kafka.GroupID, "brokers", cfg.Kafka.Brokers)
	return services.ConsumeReceipts(ctx, group, cfg.Kafka.Topic, handler)
}
