// Package kafka publishes shipment status events to a Kafka topic for the
// reporting consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freightops/internal/core/domain/model/shipment"

	skafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Writer is the subset of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// StatusEventMessage is the JSON value of one published event. Consumers
// deduplicate by EventID since delivery is at least once.
type StatusEventMessage struct {
	EventID     string    `json:"eventId"`
	ShipmentID  string    `json:"shipmentId"`
	Status      string    `json:"status"`
	EventType   string    `json:"eventType"`
	Description string    `json:"description"`
	Location    *string   `json:"location,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

type StatusEventPublisher struct {
	writer Writer
	logger *zap.Logger
}

// NewStatusEventPublisher writes to topic on the given brokers. Messages with
// the same key (the shipment id) land on the same partition, so consumers see
// one shipment's events in order.
func NewStatusEventPublisher(brokers []string, topic string, logger *zap.Logger) *StatusEventPublisher {
	w := &skafka.Writer{
		Addr:         skafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &skafka.Hash{},
		RequiredAcks: skafka.RequireAll,
	}
	return NewStatusEventPublisherWithWriter(w, logger)
}

func NewStatusEventPublisherWithWriter(w Writer, logger *zap.Logger) *StatusEventPublisher {
	return &StatusEventPublisher{writer: w, logger: logger.Named("kafka")}
}

// Publish writes the events as one batch. The batch either succeeds or the
// caller retries it as a whole.
func (p *StatusEventPublisher) Publish(ctx context.Context, events []*shipment.StatusEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]skafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(toMessage(e))
		if err != nil {
			return fmt.Errorf("marshal status event %s: %w", e.ID(), err)
		}
		msgs = append(msgs, skafka.Message{
			Key:   []byte(e.ShipmentID().String()),
			Value: value,
			Headers: []skafka.Header{
				{Key: "event-type", Value: []byte(e.EventType().String())},
			},
			Time: e.CreatedAt(),
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.logger.Warn("kafka write failed", zap.Int("events", len(msgs)), zap.Error(err))
		return fmt.Errorf("write status events: %w", err)
	}

	p.logger.Debug("status events published", zap.Int("events", len(msgs)))
	return nil
}

func (p *StatusEventPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(e *shipment.StatusEvent) StatusEventMessage {
	return StatusEventMessage{
		EventID:     e.ID().String(),
		ShipmentID:  e.ShipmentID().String(),
		Status:      e.Status().String(),
		EventType:   e.EventType().String(),
		Description: e.Description(),
		Location:    e.Location(),
		CreatedAt:   e.CreatedAt(),
		CreatedBy:   e.CreatedBy(),
	}
}
