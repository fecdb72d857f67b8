// Package events publishes ledger changes for downstream consumers, e.g. a
// remote dashboard or accounting export.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	TypeSaleCommitted   = "sale.committed"
	TypeExpenseRecorded = "expense.recorded"
	TypeStockCorrected  = "stock.corrected"
)

// Event is the envelope written to the events topic.
type Event struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload interface{}) error
}

// Producer is the write side of a message broker.
type Producer interface {
	Publish(ctx context.Context, key, value []byte) error
}

type brokerPublisher struct {
	producer Producer
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewBrokerPublisher(producer Producer, log logger.ZapLogger) Publisher {
	return &brokerPublisher{
		producer: producer,
		logger:   log,
		now:      time.Now,
	}
}

func (p *brokerPublisher) Publish(ctx context.Context, eventType, key string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	value, err := json.Marshal(Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   raw,
		Timestamp: p.now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := p.producer.Publish(ctx, []byte(key), value); err != nil {
		p.logger.Error("failed to publish event", zap.String("event_type", eventType), zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

type noopPublisher struct{}

// NewNoop returns a publisher that drops every event, used when no broker is
// configured.
func NewNoop() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, string, interface{}) error {
	return nil
}
