package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/vinicius342/AnotaJa-sub000/models"
)

// ReceiptHandler processes one decoded receipt. Returning an error stops the
// claim without committing, so the message is delivered again.
type ReceiptHandler func(ctx context.Context, receipt models.Receipt) error

// ReceiptConsumer reads receipts published by KafkaReceiptPublisher.
// It implements sarama.ConsumerGroupHandler.
type ReceiptConsumer struct {
	handle ReceiptHandler
	logger *slog.Logger
}

// NewReceiptConsumer creates a new ReceiptConsumer instance.
func NewReceiptConsumer(handle ReceiptHandler, logger *slog.Logger) *ReceiptConsumer {
	return &ReceiptConsumer{handle: handle, logger: logger.With("component", "receipt-consumer")}
}

// NewConsumerConfig returns the consumer group settings: manual commits, oldest offset first.
func NewConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V2_1_0_0
	config.Consumer.Return.Errors = true
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Offsets.AutoCommit.Enable = false
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	return config
}

func (c *ReceiptConsumer) Setup(session sarama.ConsumerGroupSession) error {
	c.logger.Info("partitions assigned", "member_id", session.MemberID(), "claims", session.Claims())
	return nil
}

func (c *ReceiptConsumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (c *ReceiptConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := c.process(session.Context(), msg); err != nil {
				return err
			}
			session.MarkMessage(msg, "")
			session.Commit()
		case <-session.Context().Done():
			return nil
		}
	}
}

func (c *ReceiptConsumer) process(ctx context.Context, msg *sarama.ConsumerMessage) error {
	receipt, err := decodeReceipt(msg.Value)
	if err != nil {
		// a malformed payload will never decode; commit past it
		c.logger.Warn("skipping malformed receipt",
			"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset,
			"key", string(msg.Key), "error", err)
		return nil
	}
	if err := c.handle(ctx, receipt); err != nil {
		c.logger.Error("failed to handle receipt",
			"order_id", receipt.OrderID, "offset", msg.Offset, "error", err)
		return fmt.Errorf("receipt for order %d: %w", receipt.OrderID, err)
	}
	c.logger.Debug("receipt handled", "order_id", receipt.OrderID, "partition", msg.Partition, "offset", msg.Offset)
	return nil
}

func decodeReceipt(payload []byte) (models.Receipt, error) {
	var receipt models.Receipt
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&receipt); err != nil {
		return models.Receipt{}, err
	}
	if receipt.OrderID == 0 {
		return models.Receipt{}, errors.New("receipt has no order_id")
	}
	return receipt, nil
}

// ConsumeReceipts runs the consumer group until ctx is cancelled or the group is closed.
func ConsumeReceipts(ctx context.Context, group sarama.ConsumerGroup, topic string, handler sarama.ConsumerGroupHandler) error {
	for {
		if err := group.Consume(ctx, []string{topic}, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}
