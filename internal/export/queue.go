package export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/soltixdb/biotrend/internal/logging"
	"github.com/soltixdb/biotrend/internal/queue"
	"github.com/soltixdb/biotrend/internal/services"
)

// Subject suffixes appended to the configured prefix
const (
	SubjectPredictions = "predictions"
	SubjectSummaries   = "summaries"
)

type predictionMessage struct {
	RunID string `json:"run_id"`
	services.PredictionRow
}

type summaryMessage struct {
	RunID string `json:"run_id"`
	services.SummaryRow
}

// QueueSink publishes result rows as JSON messages
type QueueSink struct {
	publisher queue.Publisher
	prefix    string
	logger    *logging.Logger
}

// NewQueueSink creates a sink publishing on <prefix>.predictions and <prefix>.summaries
func NewQueueSink(publisher queue.Publisher, prefix string, logger *logging.Logger) *QueueSink {
	return &QueueSink{
		publisher: publisher,
		prefix:    prefix,
		logger:    logger,
	}
}

// Subject returns the full subject for a suffix
func (s *QueueSink) Subject(suffix string) string {
	return s.prefix + "." + suffix
}

// Publish sends every prediction row then every summary row in one batch
func (s *QueueSink) Publish(ctx context.Context, result *services.Result) error {
	messages := make([]queue.BatchMessage, 0, len(result.Predictions)+len(result.Summaries))

	for _, row := range result.Predictions {
		data, err := json.Marshal(predictionMessage{RunID: result.RunID, PredictionRow: row})
		if err != nil {
			return fmt.Errorf("failed to marshal prediction %s/%d: %w", row.Metric, row.Year, err)
		}
		messages = append(messages, queue.BatchMessage{Subject: s.Subject(SubjectPredictions), Data: data})
	}

	for _, row := range result.Summaries {
		data, err := json.Marshal(summaryMessage{RunID: result.RunID, SummaryRow: row})
		if err != nil {
			return fmt.Errorf("failed to marshal summary %s: %w", row.Metric, err)
		}
		messages = append(messages, queue.BatchMessage{Subject: s.Subject(SubjectSummaries), Data: data})
	}

	published, err := s.publisher.PublishBatch(ctx, messages)
	if err != nil {
		return fmt.Errorf("published %d/%d messages: %w", published, len(messages), err)
	}
	if published != len(messages) {
		return fmt.Errorf("published %d/%d messages", published, len(messages))
	}

	s.logger.Info("Results published",
		"run_id", result.RunID,
		"prefix", s.prefix,
		"messages", published)
	return nil
}
