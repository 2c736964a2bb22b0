// Package events turns booking lifecycle changes into kafka messages.
package events

import (
	"context"
	"fmt"
	"pediacenter/pkg/kafka"
	"pediacenter/pkg/logger"
	"pediacenter/pkg/model"
	"time"

	"github.com/google/uuid"
)

const (
	TypeBookingCreated     = "booking.created"
	TypeBookingCancelled   = "booking.cancelled"
	TypeBookingRescheduled = "booking.rescheduled"

	SchemaVersion = "1"
	Source        = "pediacenter-scheduler"
)

// Event is the payload of every booking message. Previous is only set for
// reschedules and holds the booking that was cancelled.
type Event struct {
	Type       string         `json:"type"`
	Booking    *model.Booking `json:"booking"`
	Previous   *model.Booking `json:"previous,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaPublisher publishes events keyed by confirmation id so every change
// to one booking lands on the same partition.
type KafkaPublisher struct {
	producer messagePublisher
}

func NewKafkaPublisher(producer messagePublisher) *KafkaPublisher {
	if producer == nil {
		panic("events: producer cannot be nil")
	}
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.Booking == nil {
		return fmt.Errorf("events: %s without booking", event.Type)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	msg := kafka.NewMessage().
		WithKey(event.Booking.ConfirmationID).
		WithValue(event).
		WithEventID(uuid.NewString()).
		WithEventType(event.Type).
		WithCorrelationID(logger.RequestID(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithTimestamp(event.OccurredAt).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("events: publish %s: %w", event.Type, err)
	}
	return nil
}

// NopPublisher drops every event. Used when EVENTS_ENABLED is false.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
