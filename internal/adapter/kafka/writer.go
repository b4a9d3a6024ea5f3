package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/didyoufeelit/internal/config"
	"github.com/couchcryptid/didyoufeelit/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes settled earthquake events to a Kafka topic.
// It implements screen.Sink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish writes event as a single JSON message.
func (w *Writer) Publish(ctx context.Context, event domain.Event) error {
	msg, err := serializeToMessage(event, domain.Now())
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	w.logger.Info("event published", "topic", w.writer.Topic, "title", event.Title)
	return nil
}

// Close flushes any pending writes and closes the producer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an Event into a Kafka message keyed by title.
func serializeToMessage(event domain.Event, fetchedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.Title),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("usgs")},
			{Key: "fetched_at", Value: []byte(fetchedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
