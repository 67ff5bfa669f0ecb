// Package kafka publishes parcel status changes to a Kafka topic after their
// transaction committed. Messages are keyed by parcel id so one parcel's changes
// stay ordered within a partition.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"parcels/internal/core/domain/model/parcel"

	kafkago "github.com/segmentio/kafka-go"
)

const eventType = "parcel.status_changed"

// messageWriter is the subset of *kafkago.Writer used by the publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// StatusChangedMessage is the JSON payload of a status change.
type StatusChangedMessage struct {
	Type           string    `json:"type"`
	ParcelID       string    `json:"parcelId"`
	TrackingNumber string    `json:"trackingNumber"`
	From           string    `json:"from,omitempty"`
	To             string    `json:"to"`
	At             time.Time `json:"at"`
	ChangedBy      string    `json:"changedBy,omitempty"`
}

// ParcelEventPublisher implements ports.EventPublisher on a kafka-go writer.
type ParcelEventPublisher struct {
	writer messageWriter
}

// NewParcelEventPublisher creates a synchronous writer for topic that waits for all
// in-sync replicas to acknowledge.
func NewParcelEventPublisher(brokers []string, topic string) *ParcelEventPublisher {
	return newParcelEventPublisher(&kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	})
}

func newParcelEventPublisher(w messageWriter) *ParcelEventPublisher {
	return &ParcelEventPublisher{writer: w}
}

func (p *ParcelEventPublisher) Publish(ctx context.Context, events ...parcel.StatusChanged) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, 0, len(events))
	for _, e := range events {
		msg, err := toMessage(e)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d parcel events: %w", len(msgs), err)
	}
	return nil
}

func (p *ParcelEventPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(e parcel.StatusChanged) (kafkago.Message, error) {
	body := StatusChangedMessage{
		Type:           eventType,
		ParcelID:       e.ParcelID.String(),
		TrackingNumber: e.TrackingNumber,
		From:           e.From.String(),
		To:             e.To.String(),
		At:             e.At.UTC(),
	}
	if e.ChangedBy != nil {
		body.ChangedBy = e.ChangedBy.String()
	}

	value, err := json.Marshal(body)
	if err != nil {
		return kafkago.Message{}, err
	}

	return kafkago.Message{
		Key:   []byte(body.ParcelID),
		Value: value,
		Time:  e.At,
		Headers: []kafkago.Header{
			{Key: "type", Value: []byte(eventType)},
		},
	}, nil
}
