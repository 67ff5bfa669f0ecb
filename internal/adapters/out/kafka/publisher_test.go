package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func TestParcelEventPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	parcelID := kernel.NewUUID()
	staff := kernel.NewUUID()

	events := []parcel.StatusChanged{
		{ParcelID: parcelID, TrackingNumber: "TRK1741597200000ABCD1234", To: parcel.StatusPending, At: at},
		{ParcelID: parcelID, TrackingNumber: "TRK1741597200000ABCD1234", From: parcel.StatusPending,
			To: parcel.StatusConfirmed, At: at.Add(time.Hour), ChangedBy: &staff},
	}

	writer := &MockWriter{}
	var written []kafkago.Message
	writer.On("WriteMessages", ctx, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafkago.Message) }).
		Return(nil).Once()

	err := newParcelEventPublisher(writer).Publish(ctx, events...)
	require.NoError(t, err)
	writer.AssertExpectations(t)

	require.Len(t, written, 2)
	assert.Equal(t, parcelID.String(), string(written[0].Key))
	assert.Equal(t, written[0].Key, written[1].Key, "one parcel keeps one partition")

	var first, second StatusChangedMessage
	require.NoError(t, json.Unmarshal(written[0].Value, &first))
	require.NoError(t, json.Unmarshal(written[1].Value, &second))

	assert.Equal(t, "parcel.status_changed", first.Type)
	assert.Empty(t, first.From)
	assert.Equal(t, "PENDING", first.To)
	assert.Empty(t, first.ChangedBy)
	assert.True(t, at.Equal(first.At))

	assert.Equal(t, "PENDING", second.From)
	assert.Equal(t, "CONFIRMED", second.To)
	assert.Equal(t, staff.String(), second.ChangedBy)
}

func TestParcelEventPublisher_PublishNothing(t *testing.T) {
	writer := &MockWriter{}

	err := newParcelEventPublisher(writer).Publish(context.Background())
	require.NoError(t, err)
	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestParcelEventPublisher_WriteFailure(t *testing.T) {
	ctx := context.Background()
	writer := &MockWriter{}
	broker := errors.New("leader not available")
	writer.On("WriteMessages", ctx, mock.Anything).Return(broker).Once()

	err := newParcelEventPublisher(writer).Publish(ctx, parcel.StatusChanged{
		ParcelID: kernel.NewUUID(), TrackingNumber: "TRK1", To: parcel.StatusPending, At: time.Now(),
	})
	require.ErrorIs(t, err, broker)
}

func TestParcelEventPublisher_Close(t *testing.T) {
	writer := &MockWriter{}
	writer.On("Close").Return(nil).Once()

	require.NoError(t, newParcelEventPublisher(writer).Close())
	writer.AssertExpectations(t)
}
