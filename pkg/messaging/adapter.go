package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// BrokerPublisher publishes typed domain events onto a single broker channel.
type BrokerPublisher struct {
	broker  Broker
	channel string
	now     func() time.Time
}

func NewPublisher(broker Broker) *BrokerPublisher {
	return &BrokerPublisher{broker: broker, channel: EventsChannel, now: time.Now}
}

func (p *BrokerPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	msg := Message{
		Type:       eventType,
		Payload:    payload,
		OccurredAt: p.now().UTC(),
	}
	if err := p.broker.Publish(ctx, p.channel, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}

// Handler processes one decoded message.
type Handler func(ctx context.Context, msg RawMessage) error

// RawMessage is a Message whose payload has not been decoded yet.
type RawMessage struct {
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Consume subscribes to the events channel and dispatches messages to the handler
// registered for their type until ctx is done. Handler errors are logged.
func Consume(ctx context.Context, broker Broker, handlers map[string]Handler) error {
	msgChan, err := broker.Subscribe(ctx, EventsChannel)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	for data := range msgChan {
		var msg RawMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn().Err(err).Msg("dropping undecodable message")
			continue
		}
		h, ok := handlers[msg.Type]
		if !ok {
			continue
		}
		if err := h(ctx, msg); err != nil {
			log.Error().Err(err).Str("event_type", msg.Type).Msg("event handler failed")
		}
	}
	return nil
}
