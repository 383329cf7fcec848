package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/grupo99/customer-service/internal/config"
)

// MetadataDedupKey is the message metadata key carrying the deduplication id.
const MetadataDedupKey = "deduplication_id"

// Publisher announces domain events to the rest of the mesh. One send per
// call, fire-and-forget: a failure is wrapped in PublishError and returned to
// the caller, never retried here.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
}

// PublishError wraps a failed queue send.
type PublishError struct {
	Type EventType
	Err  error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish %s: %v", e.Type, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// QueuePublisher sends events through a watermill publisher backed by NATS
// JetStream.
type QueuePublisher struct {
	publisher message.Publisher
	topic     string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewQueuePublisher connects to NATS and wraps it behind the Publisher
// contract.
func NewQueuePublisher(cfg config.EventsConfig, logger *zap.Logger) (*QueuePublisher, error) {
	marshaler := &wmnats.GobMarshaler{}
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
	}

	jsConfig := wmnats.JetStreamConfig{
		Disabled:      false,
		AutoProvision: true,
	}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:               cfg.NATSURL,
			NatsOptions:       options,
			Marshaler:         marshaler,
			JetStream:         jsConfig,
			SubjectCalculator: wmnats.DefaultSubjectCalculator,
		},
		watermill.NopLogger{},
	)
	if err != nil {
		return nil, fmt.Errorf("create nats publisher: %w", err)
	}

	return &QueuePublisher{
		publisher: publisher,
		topic:     cfg.Topic,
		timeout:   cfg.PublishTimeout(),
		logger:    logger,
	}, nil
}

// Publish serializes the event, attaches the deduplication key as metadata and
// hands it to the queue. The send is bounded by the configured timeout so a
// slow broker cannot stall the calling use case.
func (p *QueuePublisher) Publish(ctx context.Context, event *Event) error {
	stamp(event)

	body, err := json.Marshal(event.Body())
	if err != nil {
		return &PublishError{Type: event.Type, Err: err}
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(MetadataDedupKey, event.DeduplicationKey())

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- p.publisher.Publish(p.topic, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return &PublishError{Type: event.Type, Err: err}
		}
	case <-ctx.Done():
		return &PublishError{Type: event.Type, Err: ctx.Err()}
	}

	p.logger.Info("event published",
		zap.String("tipo", string(event.Type)),
		zap.String("subject", event.SubjectID.String()),
	)
	return nil
}

// Close releases the underlying connection.
func (p *QueuePublisher) Close() error {
	return p.publisher.Close()
}

// stamp fixes the timestamp exactly once, at the first publish attempt.
func stamp(event *Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
}
