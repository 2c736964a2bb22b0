package events

import (
	"context"
	"errors"
	"pediacenter/pkg/kafka"
	"pediacenter/pkg/logger"
	"pediacenter/pkg/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProducer struct {
	msgs []kafka.Message
	err  error
}

func (p *recordingProducer) Publish(ctx context.Context, msg kafka.Message) error {
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := &recordingProducer{}
	pub := NewKafkaPublisher(producer)

	booking := &model.Booking{
		SlotStart:      "2025-06-03T09:00",
		Provider:       "Dr. Smith",
		ChildName:      "Ana Lee",
		Status:         model.StatusBooked,
		ConfirmationID: "Dr. Smith-2025-06-03T09:00",
	}
	at := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	ctx := logger.WithRequestID(context.Background(), "req-42")

	require.NoError(t, pub.Publish(ctx, Event{Type: TypeBookingCreated, Booking: booking, OccurredAt: at}))
	require.Len(t, producer.msgs, 1)

	msg := producer.msgs[0]
	assert.Equal(t, "Dr. Smith-2025-06-03T09:00", msg.Key)
	assert.Equal(t, TypeBookingCreated, msg.GetEventType())
	assert.Equal(t, "req-42", msg.GetCorrelationID())
	assert.NotEmpty(t, msg.GetEventID())
	assert.Equal(t, Source, msg.Headers[kafka.HeaderSource])
	assert.Equal(t, at, msg.Timestamp)

	var decoded Event
	require.NoError(t, msg.DecodeValue(&decoded))
	assert.Equal(t, TypeBookingCreated, decoded.Type)
	assert.Equal(t, booking, decoded.Booking)
	assert.Nil(t, decoded.Previous)
}

func TestKafkaPublisher_Errors(t *testing.T) {
	producer := &recordingProducer{err: errors.New("broker down")}
	pub := NewKafkaPublisher(producer)

	err := pub.Publish(context.Background(), Event{Type: TypeBookingCancelled})
	require.Error(t, err)

	err = pub.Publish(context.Background(), Event{Type: TypeBookingCancelled, Booking: &model.Booking{ConfirmationID: "x"}})
	require.ErrorIs(t, err, producer.err)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), Event{}))
}
