package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/internal/sale"
	"github.com/fekuna/omnipos-booth-service/pkg/errx"
	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const EventSaleRequested = "sale.requested"

// Consumer delivers sale requests. Offsets are committed explicitly once a
// request has been handled.
type Consumer interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// SaleListener commits sales sent by remote terminals that have no session
// on this service.
type SaleListener struct {
	consumer Consumer
	uc       sale.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
	retry    bool
}

func NewSaleListener(consumer Consumer, uc sale.UseCase, log logger.ZapLogger) *SaleListener {
	return &SaleListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
		backoff:  time.Second,
		retry:    true,
	}
}

// RetryFailedCommits turns storage-failure retries on or off. Retrying is
// only safe when a failed commit leaves nothing behind, i.e. under the
// atomic commit policy.
func (l *SaleListener) RetryFailedCommits(retry bool) {
	l.retry = retry
}

// Start consumes until ctx ends. A request that fails on storage is retried
// and its offset stays uncommitted until it goes through, so a crash
// mid-retry redelivers it.
func (l *SaleListener) Start(ctx context.Context) {
	l.logger.Info("Starting sale request listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping sale request listener")
			return
		default:
			msg, err := l.consumer.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				if !l.wait(ctx) {
					return
				}
				continue
			}

			for {
				err := l.processMessage(ctx, msg.Value)
				if err == nil {
					break
				}
				if !l.retry {
					l.logger.Error("Dropping sale request after storage failure",
						zap.Int64("offset", msg.Offset),
						zap.Error(err),
					)
					break
				}
				l.logger.Warn("Retrying sale request",
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
				if !l.wait(ctx) {
					return
				}
			}

			if err := l.consumer.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
				l.logger.Error("Failed to commit kafka offset", zap.Int64("offset", msg.Offset), zap.Error(err))
			}
		}
	}
}

// wait sleeps for the backoff; false means ctx ended first.
func (l *SaleListener) wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(l.backoff):
		return true
	}
}

type SaleRequestedEvent struct {
	EventID   string             `json:"event_id"`
	EventType string             `json:"event_type"`
	Payload   SaleRequestPayload `json:"payload"`
	Timestamp time.Time          `json:"timestamp"`
}

type SaleRequestPayload struct {
	TerminalID string            `json:"terminal_id"`
	Items      []SaleItemPayload `json:"items"`
}

type SaleItemPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// processMessage returns an error only when the request should be retried.
// Malformed requests and business rejections are logged and dropped.
func (l *SaleListener) processMessage(ctx context.Context, value []byte) error {
	var event SaleRequestedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return nil
	}

	if event.EventType != EventSaleRequested {
		return nil
	}

	// Repeated items for one product merge into one line so it is priced
	// as a single quantity.
	merged := make(map[int64]int)
	var order []int64
	for _, item := range event.Payload.Items {
		if item.Quantity <= 0 {
			continue
		}
		if _, seen := merged[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		merged[item.ProductID] += item.Quantity
	}
	lines := make([]model.CartLine, 0, len(order))
	for _, id := range order {
		lines = append(lines, model.CartLine{ProductID: id, Quantity: merged[id]})
	}

	if len(lines) == 0 {
		l.logger.Warn("Sale request has no valid items", zap.String("event_id", event.EventID))
		return nil
	}

	l.logger.Info("Processing sale request",
		zap.String("event_id", event.EventID),
		zap.String("terminal_id", event.Payload.TerminalID),
		zap.Int("lines", len(lines)),
	)

	if _, err := l.uc.CommitLines(ctx, lines, "terminal:"+event.Payload.TerminalID); err != nil {
		if errx.IsPersistence(err) {
			return err
		}
		l.logger.Error("Sale request rejected",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
	}
	return nil
}
