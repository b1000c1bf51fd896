// Package events streams catalog changes to Kafka for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	service "github.com/aaravmahajanofficial/fashionhub/internal/services"
	"github.com/segmentio/kafka-go"
)

const writeTimeout = 5 * time.Second

// MessageWriter is the part of *kafka.Writer the feed uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type CatalogEvent struct {
	Type       service.CatalogChangeKind `json:"type"`
	ProductID  string                    `json:"product_id,omitempty"`
	Product    *models.Product           `json:"product,omitempty"`
	Count      int                       `json:"count"`
	OccurredAt time.Time                 `json:"occurred_at"`
}

// NewKafkaWriter builds a writer that keys messages by product id, so events
// for one product stay ordered within a partition.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// CatalogFeed turns catalog snapshots into events. Catalog listeners run on
// the mutating goroutine, so events are queued and written by Run.
type CatalogFeed struct {
	writer MessageWriter
	queue  chan CatalogEvent
	logger *slog.Logger
	now    func() time.Time
}

func NewCatalogFeed(writer MessageWriter, buffer int, logger *slog.Logger) *CatalogFeed {
	return &CatalogFeed{
		writer: writer,
		queue:  make(chan CatalogEvent, buffer),
		logger: logger,
		now:    time.Now,
	}
}

// Listener is subscribed to the catalog. A full queue drops the event rather
// than stalling the catalog.
func (f *CatalogFeed) Listener() func(service.CatalogSnapshot) {
	return func(snapshot service.CatalogSnapshot) {
		if snapshot.Kind == service.CatalogLoaded {
			return
		}

		event := CatalogEvent{
			Type:       snapshot.Kind,
			Product:    snapshot.Product,
			Count:      len(snapshot.Products),
			OccurredAt: f.now().UTC(),
		}
		if snapshot.Product != nil {
			event.ProductID = snapshot.Product.ID
		}

		select {
		case f.queue <- event:
		default:
			f.logger.Warn("catalog feed queue full, dropping event", "type", event.Type, "productID", event.ProductID)
		}
	}
}

// Run writes queued events until ctx is done. Write failures are logged and
// the event is dropped.
func (f *CatalogFeed) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-f.queue:
			if err := f.PublishEvent(ctx, event); err != nil {
				f.logger.Error("failed to publish catalog event", "type", event.Type, "productID", event.ProductID, "error", err)
			}
		}
	}
}

func (f *CatalogFeed) PublishEvent(ctx context.Context, event CatalogEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.ProductID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	if err := f.writer.WriteMessages(writeCtx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}

	return nil
}

func (f *CatalogFeed) Close() error {
	return f.writer.Close()
}
