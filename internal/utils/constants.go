package utils

import "time"

// =============================================================================
// Backtest Policy Constants
// =============================================================================

// Walk-forward minimum history policy: min(MaxMinPoints, max(MinMinPoints, n-HeldOutYears)).
// Pinned values; changing them changes every backtest score.
const (
	// MinMinPoints is the smallest training prefix any metric starts with
	MinMinPoints = 3

	// MaxMinPoints caps the training prefix for long series
	MaxMinPoints = 6

	// HeldOutYears is the number of trailing years the policy aims to score
	HeldOutYears = 8
)

// MaxYear is the largest year accepted from input cells
const MaxYear = 9999

// =============================================================================
// HTTP Constants
// =============================================================================

const (
	// DefaultRequestTimeout is the default timeout for HTTP requests
	DefaultRequestTimeout = 30 * time.Second

	// ShutdownTimeout bounds graceful server shutdown
	ShutdownTimeout = 10 * time.Second

	// MaxRequestBodySize limits analyze payloads (bytes)
	MaxRequestBodySize = 8 * 1024 * 1024
)

// =============================================================================
// Queue Constants
// =============================================================================

const (
	// QueueConnectTimeout is the timeout for establishing broker connections
	QueueConnectTimeout = 5 * time.Second

	// QueuePublishTimeout bounds a full result publication
	QueuePublishTimeout = 30 * time.Second
)

// QueueType represents the type of message queue
type QueueType string

const (
	// QueueTypeNATS represents NATS (default)
	QueueTypeNATS QueueType = "nats"

	// QueueTypeRedis represents Redis Streams queue
	QueueTypeRedis QueueType = "redis"

	// QueueTypeKafka represents Apache Kafka queue
	QueueTypeKafka QueueType = "kafka"

	// QueueTypeMemory represents in-memory queue (for testing)
	QueueTypeMemory QueueType = "memory"
)
