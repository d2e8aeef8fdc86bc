// Package publisher hands archived submissions to downstream compliance
// systems over Kafka.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"vkyc/internal/verification/models"
)

// HeaderCatalogVersion carries the catalog version the session ran against.
const HeaderCatalogVersion = "catalog-version"

type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Kafka publishes submissions keyed by session ID so all records for one
// session land on the same partition.
type Kafka struct {
	producer producer
	topic    string
}

// NewKafka wraps a franz-go client (or anything that produces like one).
func NewKafka(p producer, topic string) *Kafka {
	return &Kafka{producer: p, topic: topic}
}

func (k *Kafka) Publish(ctx context.Context, sub models.Submission) error {
	value, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(sub.SessionID),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: HeaderCatalogVersion, Value: []byte(sub.CatalogVersion)},
		},
	}
	if err := k.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce submission %s: %w", sub.SessionID, err)
	}
	return nil
}

// Noop drops submissions. Used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, models.Submission) error { return nil }
