package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaConfig represents Apache Kafka producer configuration
type KafkaConfig struct {
	Brokers      []string      // Kafka broker addresses
	BatchSize    int           // Batch size for producer (default: 100)
	BatchTimeout time.Duration // Batch timeout for producer (default: 10ms)
	RequiredAcks int           // Required acks: 0=none, 1=leader, -1=all (default: 1)
	MaxRetries   int           // Max attempts per write (default: 3)
}

// KafkaPublisher implements Publisher using a single Kafka writer.
// Subjects are used as topic names; the topic is set per message.
type KafkaPublisher struct {
	config KafkaConfig
	writer *kafka.Writer
}

// newKafkaPublisher creates a Kafka publisher. No connection is made until the first write.
func newKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not configured")
	}

	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = 10 * time.Millisecond
	}
	if cfg.RequiredAcks == 0 {
		cfg.RequiredAcks = int(kafka.RequireOne)
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}

	return &KafkaPublisher{
		config: cfg,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Balancer:               &kafka.LeastBytes{},
			BatchSize:              cfg.BatchSize,
			BatchTimeout:           cfg.BatchTimeout,
			RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
			MaxAttempts:            cfg.MaxRetries,
			AllowAutoTopicCreation: true,
		},
	}, nil
}

// Publish writes a message to the subject's topic
func (p *KafkaPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if err := p.writer.WriteMessages(ctx, toKafkaMessage(subject, data)); err != nil {
		return fmt.Errorf("failed to publish to kafka topic %s: %w", subject, err)
	}
	return nil
}

// PublishBatch writes all messages in order in one call
func (p *KafkaPublisher) PublishBatch(ctx context.Context, messages []BatchMessage) (int, error) {
	if len(messages) == 0 {
		return 0, nil
	}

	msgs := make([]kafka.Message, len(messages))
	for i, msg := range messages {
		msgs[i] = toKafkaMessage(msg.Subject, msg.Data)
	}

	err := p.writer.WriteMessages(ctx, msgs...)
	if err == nil {
		return len(msgs), nil
	}

	var writeErrs kafka.WriteErrors
	if errors.As(err, &writeErrs) {
		return len(msgs) - writeErrs.Count(), fmt.Errorf("failed to publish batch: %w", err)
	}
	return 0, fmt.Errorf("failed to publish batch: %w", err)
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func toKafkaMessage(topic string, data []byte) kafka.Message {
	return kafka.Message{
		Topic: topic,
		Value: data,
		Time:  time.Now(),
	}
}
