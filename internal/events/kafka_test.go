package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherPublishJSON(t *testing.T) {
	writer := &fakeWriter{}
	publisher := &KafkaPublisher{writer: writer, timeout: time.Second}

	payload := BookingEventPayload{
		BookingID: 1, ItemID: 2, BookerID: 3,
		Status: "WAITING",
		Start:  time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, publisher.PublishJSON(EventBookingCreated, payload))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, EventBookingCreated, string(msg.Key))

	var decoded BookingEventPayload
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, payload.BookingID, decoded.BookingID)
	assert.Equal(t, payload.Status, decoded.Status)
}

func TestKafkaPublisherWriteError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker unavailable")}
	publisher := &KafkaPublisher{writer: writer, timeout: time.Second}

	err := publisher.PublishJSON(EventBookingApproved, BookingEventPayload{BookingID: 7})
	require.Error(t, err)
	assert.Contains(t, err.Error(), EventBookingApproved)
}

func TestKafkaPublisherClose(t *testing.T) {
	writer := &fakeWriter{}
	publisher := &KafkaPublisher{writer: writer, timeout: time.Second}

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	require.NoError(t, p.PublishJSON(EventBookingRejected, nil))
}
