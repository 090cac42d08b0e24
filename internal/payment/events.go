// AngelaMos | 2026
// events.go

package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const publishTimeout = 5 * time.Second

// CommittedEvent is published after a payment has been recorded.
type CommittedEvent struct {
	PaymentID   string    `json:"payment_id"`
	Email       string    `json:"email"`
	Price       float64   `json:"price"`
	CourseItems []string  `json:"course_items"`
	Cleared     int64     `json:"cleared"`
	CommittedAt time.Time `json:"committed_at"`
}

type Publisher interface {
	PublishCommitted(ctx context.Context, event CommittedEvent) error
}

// KafkaPublisher writes CommittedEvents keyed by payment id. A nil
// *KafkaPublisher is valid and publishes nothing.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher returns nil when brokers or topic is empty.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if len(brokers) == 0 || topic == "" {
		return nil
	}

	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *KafkaPublisher) PublishCommitted(ctx context.Context, event CommittedEvent) error {
	if p == nil || p.writer == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode payment event: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(event.PaymentID),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("publish payment event: %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
