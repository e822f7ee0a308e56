package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
)

// IKafkaService defines the interface for Kafka operations.
type IKafkaService interface {
	PushMessage(topic, key string, message []byte, headers map[string]string) error
	Close() error
}

// KafkaService implements IKafkaService using Sarama.
type KafkaService struct {
	producer sarama.SyncProducer
	logger   *slog.Logger
}

// NewProducerConfig returns the producer settings used for receipts.
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll // every in-sync replica must ack
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true // required by the sync producer
	config.Producer.Timeout = 5 * time.Second
	return config
}

// NewKafkaService connects a sync producer to the brokers.
func NewKafkaService(brokers []string, logger *slog.Logger) (IKafkaService, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to start Sarama producer: %w", err)
	}

	logger.Info("kafka producer connected", "brokers", brokers)
	return NewKafkaServiceWithProducer(producer, logger), nil
}

// NewKafkaServiceWithProducer wraps an existing producer.
func NewKafkaServiceWithProducer(producer sarama.SyncProducer, logger *slog.Logger) IKafkaService {
	return &KafkaService{producer: producer, logger: logger.With("component", "kafka")}
}

// PushMessage sends a message to the specified Kafka topic. An empty key lets the partitioner choose.
func (s *KafkaService) PushMessage(topic, key string, message []byte, headers map[string]string) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(message),
	}
	if key != "" {
		msg.Key = sarama.StringEncoder(key)
	}
	for k, v := range headers {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		s.logger.Error("failed to send message", "topic", topic, "key", key, "error", err)
		return fmt.Errorf("failed to send message to topic %s: %w", topic, err)
	}
	s.logger.Debug("message sent", "topic", topic, "key", key, "partition", partition, "offset", offset)
	return nil
}

func (s *KafkaService) Close() error {
	return s.producer.Close()
}
