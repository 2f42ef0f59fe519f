package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"newsdesk/internal/domain/entity"
)

// KafkaConfig configures the bookmark event publisher.
type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes bookmark events as JSON messages keyed by article URL,
// so every event for the same bookmark lands on the same partition.
type KafkaNotifier struct {
	writer messageWriter
	topic  string
}

// NewKafkaNotifier creates a synchronous writer that waits for one replica ack.
func NewKafkaNotifier(cfg KafkaConfig) *KafkaNotifier {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           timeout,
		AllowAutoTopicCreation: true,
	}
	slog.Info("kafka event publisher initialized",
		slog.Any("brokers", cfg.Brokers),
		slog.String("topic", cfg.Topic))
	return &KafkaNotifier{writer: w, topic: cfg.Topic}
}

// EventMessage is the wire format of a bookmark event.
type EventMessage struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Article    ArticlePayload `json:"article"`
}

// ArticlePayload is the article snapshot carried by an EventMessage.
type ArticlePayload struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	SourceName  string    `json:"sourceName"`
	PublishedAt time.Time `json:"publishedAt"`
	SavedAt     time.Time `json:"savedAt"`
}

func buildEventMessage(ev entity.BookmarkEvent) EventMessage {
	a := ev.Article
	return EventMessage{
		ID:         ev.ID,
		Type:       string(ev.Type),
		OccurredAt: ev.OccurredAt.UTC(),
		Article: ArticlePayload{
			ID:          a.ID,
			Title:       a.Title,
			URL:         a.URL,
			SourceName:  a.Source.Name,
			PublishedAt: a.PublishedAt.UTC(),
			SavedAt:     a.SavedAt.UTC(),
		},
	}
}

// Notify implements Notifier.
func (k *KafkaNotifier) Notify(ctx context.Context, ev entity.BookmarkEvent) error {
	if ev.Article == nil {
		return fmt.Errorf("kafka: event %s has no article", ev.ID)
	}

	value, err := json.Marshal(buildEventMessage(ev))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(ev.Article.URL),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(ev.Type)},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write message to kafka topic %s: %w", k.topic, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (k *KafkaNotifier) Close() error {
	return k.writer.Close()
}
