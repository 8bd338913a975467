package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"catalog-import-service/internal/models"
)

// BatchCompletedEvent is published when an import batch finishes.
type BatchCompletedEvent struct {
	EventID      string    `json:"event_id"`
	Event        string    `json:"event"`
	BatchID      uint      `json:"batch_id"`
	TotalRecords int       `json:"total_records"`
	Succeeded    int       `json:"succeeded"`
	Failed       int       `json:"failed"`
	Timestamp    time.Time `json:"timestamp"`
}

// Publisher publishes import lifecycle events to kafka. A nil Publisher
// is safe to call and publishes nothing.
type Publisher struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

// NewPublisher creates a kafka-backed event publisher.
func NewPublisher(brokers []string, topic string, logger *logrus.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Publisher{writer: writer, logger: logger}
}

// PublishBatchCompleted emits an import.batch.completed event. Publish
// failures are logged, never propagated to the import pipeline.
func (p *Publisher) PublishBatchCompleted(ctx context.Context, summary *models.ImportSummary) {
	if p == nil || p.writer == nil {
		return
	}

	event := BatchCompletedEvent{
		EventID:      uuid.New().String(),
		Event:        "import.batch.completed",
		BatchID:      summary.BatchID,
		TotalRecords: summary.TotalRecords,
		Succeeded:    summary.Succeeded,
		Failed:       summary.Failed,
		Timestamp:    time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).Error("Failed to marshal batch event")
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(publishCtx, kafka.Message{
		Key:   []byte(event.Event),
		Value: payload,
	})
	if err != nil {
		p.logger.WithError(err).WithField("batch_id", summary.BatchID).Error("Failed to publish batch event")
		return
	}
	p.logger.WithField("batch_id", summary.BatchID).Info("Published batch completed event")
}

// Close flushes and closes the underlying kafka writer.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
