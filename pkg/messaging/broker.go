package messaging

import (
	"context"
	"time"
)

// EventsChannel is the pub/sub channel all domain events are published on.
const EventsChannel = "arogyavax.events"

// Event types
const (
	EventVaccineAdministered = "vaccine.administered"
	EventStockUpdated        = "stock.updated"
	EventAppointmentCreated  = "appointment.created"
	EventAppointmentStatus   = "appointment.status_changed"
	EventCertificateIssued   = "certificate.issued"
	EventReminderDue         = "reminder.due"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Deduper claims a key for ttl; it returns false when the key is already held.
type Deduper interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Publisher defines the interface for publishing messages
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

type Message struct {
	Type       string      `json:"type"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// NopBroker discards everything. It is used when no broker is configured.
type NopBroker struct{}

func (NopBroker) Publish(context.Context, string, interface{}) error { return nil }

func (NopBroker) Subscribe(ctx context.Context, _ string) (<-chan []byte, error) {
	ch := make(chan []byte)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (NopBroker) Close() error { return nil }

func (NopBroker) Claim(context.Context, string, time.Duration) (bool, error) { return true, nil }
