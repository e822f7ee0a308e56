package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/vinicius342/AnotaJa-sub000/models"
)

// IReceiptPublisher hands a finalized order to the printing side.
type IReceiptPublisher interface {
	Publish(ctx context.Context, receipt models.Receipt) error
}

// KafkaReceiptPublisher publishes receipts as JSON, keyed by order id.
type KafkaReceiptPublisher struct {
	kafka IKafkaService
	topic string
}

// NewKafkaReceiptPublisher creates a new KafkaReceiptPublisher instance.
func NewKafkaReceiptPublisher(kafka IKafkaService, topic string) IReceiptPublisher {
	return &KafkaReceiptPublisher{kafka: kafka, topic: topic}
}

func (p *KafkaReceiptPublisher) Publish(ctx context.Context, receipt models.Receipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt for order %d: %w", receipt.OrderID, err)
	}
	headers := map[string]string{"content-type": "application/json"}
	if receipt.Printer != "" {
		headers["printer"] = receipt.Printer
	}
	return p.kafka.PushMessage(p.topic, strconv.FormatUint(uint64(receipt.OrderID), 10), payload, headers)
}

// LogReceiptPublisher only logs receipts. It is used when kafka is disabled.
type LogReceiptPublisher struct {
	logger *slog.Logger
}

// NewLogReceiptPublisher creates a new LogReceiptPublisher instance.
func NewLogReceiptPublisher(logger *slog.Logger) IReceiptPublisher {
	return &LogReceiptPublisher{logger: logger.With("component", "receipt")}
}

func (p *LogReceiptPublisher) Publish(_ context.Context, receipt models.Receipt) error {
	p.logger.Info("receipt ready",
		"order_id", receipt.OrderID,
		"printer", receipt.Printer,
		"lines", len(receipt.Lines),
		"total", receipt.Total.StringFixed(2),
	)
	return nil
}
