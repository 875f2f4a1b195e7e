package queue

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/soltixdb/biotrend/internal/utils"
)

// NATSPublisher implements Publisher over core NATS.
// Results are fire-and-forget events, so no JetStream stream is required;
// PublishBatch flushes and waits for the server round-trip.
type NATSPublisher struct {
	conn *nats.Conn
}

// newNATSPublisher connects to the NATS server at url
func newNATSPublisher(url, username, password string) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("biotrend"),
		nats.Timeout(utils.QueueConnectTimeout),
	}
	if username != "" {
		opts = append(opts, nats.UserInfo(username, password))
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: conn}, nil
}

// NewNATSPublisherWithConn wraps an existing connection
func NewNATSPublisherWithConn(conn *nats.Conn) *NATSPublisher {
	return &NATSPublisher{conn: conn}
}

// Publish publishes a message to a subject and flushes it
func (p *NATSPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to subject %s: %w", subject, err)
	}
	if err := p.flush(ctx); err != nil {
		return fmt.Errorf("failed to flush subject %s: %w", subject, err)
	}
	return nil
}

// PublishBatch queues all messages and flushes once.
// The count covers messages handed to the connection before the flush.
func (p *NATSPublisher) PublishBatch(ctx context.Context, messages []BatchMessage) (int, error) {
	if len(messages) == 0 {
		return 0, nil
	}

	queued := 0
	for _, msg := range messages {
		if err := p.conn.Publish(msg.Subject, msg.Data); err != nil {
			return queued, fmt.Errorf("failed to publish to subject %s: %w", msg.Subject, err)
		}
		queued++
	}

	if err := p.flush(ctx); err != nil {
		return 0, fmt.Errorf("failed to flush batch: %w", err)
	}

	return queued, nil
}

// flush waits for the server to process everything published so far.
// FlushWithContext rejects contexts without a deadline.
func (p *NATSPublisher) flush(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return p.conn.FlushTimeout(utils.QueuePublishTimeout)
	}
	return p.conn.FlushWithContext(ctx)
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() error {
	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}
	return p.conn.Drain()
}
