package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/arogyavax/internal/email"
	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/pkg/messaging"
	"github.com/jwalitptl/arogyavax/pkg/worker"
)

// Notifier emails patients in response to domain events.
type Notifier struct {
	mailer     email.Sender
	attempts   int
	retryDelay time.Duration
}

func NewNotifier(mailer email.Sender, attempts int, retryDelay time.Duration) *Notifier {
	if attempts <= 0 {
		attempts = 1
	}
	return &Notifier{mailer: mailer, attempts: attempts, retryDelay: retryDelay}
}

func (n *Notifier) Handlers() map[string]messaging.Handler {
	return map[string]messaging.Handler{
		messaging.EventVaccineAdministered: n.VaccineAdministered,
	}
}

func (n *Notifier) VaccineAdministered(ctx context.Context, msg messaging.RawMessage) error {
	var event model.VaccineAdministered
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("failed to decode %s: %w", msg.Type, err)
	}
	if event.PatientEmail == "" {
		log.Debug().Int64("record_id", event.RecordID).Msg("patient has no email, notification skipped")
		return nil
	}

	subject, body := email.AdministeredMessage(event.PatientName, event.VaccineName, event.Date.String())
	return worker.Retry(ctx, n.attempts, n.retryDelay, func() error {
		return n.mailer.Send(ctx, event.PatientEmail, subject, body)
	})
}
