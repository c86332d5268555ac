package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/arogyavax/internal/email"
	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/pkg/messaging"
	"github.com/jwalitptl/arogyavax/pkg/metrics"
)

// ReminderClaimTTL keeps a dispatched reminder from being sent again the same day.
const ReminderClaimTTL = 24 * time.Hour

// DueLister returns the current reminders across all patients.
type DueLister interface {
	DueList(ctx context.Context) ([]model.DueEntry, error)
}

// ReminderDue is the payload of the reminder.due event.
type ReminderDue struct {
	PatientID int64      `json:"patient_id"`
	VaccineID int64      `json:"vaccine_id"`
	Vaccine   string     `json:"vaccine"`
	DueDate   model.Date `json:"due_date"`
	Status    string     `json:"status"`
	Message   string     `json:"message"`
}

type ReminderDispatcher struct {
	due     DueLister
	deduper messaging.Deduper
	events  messaging.Publisher
	mailer  email.Sender
	metrics *metrics.Metrics
}

func NewReminderDispatcher(
	due DueLister,
	deduper messaging.Deduper,
	events messaging.Publisher,
	mailer email.Sender,
	metrics *metrics.Metrics,
) *ReminderDispatcher {
	return &ReminderDispatcher{
		due:     due,
		deduper: deduper,
		events:  events,
		mailer:  mailer,
		metrics: metrics,
	}
}

func reminderKey(e model.DueEntry) string {
	return fmt.Sprintf("reminder:%d:%d:%s", e.PatientID, e.VaccineID, e.DueDate)
}

// Run is a worker.Task. It dispatches every actionable reminder not already
// claimed within ReminderClaimTTL.
func (d *ReminderDispatcher) Run(ctx context.Context) error {
	entries, err := d.due.DueList(ctx)
	if err != nil {
		return fmt.Errorf("failed to load due list: %w", err)
	}

	sent := 0
	for _, e := range entries {
		if !e.Actionable() {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		claimed, err := d.deduper.Claim(ctx, reminderKey(e), ReminderClaimTTL)
		if err != nil {
			log.Warn().Err(err).Int64("patient_id", e.PatientID).Msg("failed to claim reminder")
			continue
		}
		if !claimed {
			d.observe("skipped", "dedupe")
			continue
		}

		d.dispatch(ctx, e)
		sent++
	}

	log.Info().Int("dispatched", sent).Int("due", len(entries)).Msg("reminder run finished")
	return nil
}

func (d *ReminderDispatcher) dispatch(ctx context.Context, e model.DueEntry) {
	logger := log.With().Int64("patient_id", e.PatientID).Int64("vaccine_id", e.VaccineID).Logger()

	err := d.events.Publish(ctx, messaging.EventReminderDue, ReminderDue{
		PatientID: e.PatientID,
		VaccineID: e.VaccineID,
		Vaccine:   e.Vaccine,
		DueDate:   e.DueDate,
		Status:    e.Status,
		Message:   e.Message,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to publish reminder.due")
		d.observe("failed", "event")
	} else {
		d.observe("sent", "event")
	}

	if e.PatientEmail == "" {
		return
	}
	subject, body := email.ReminderMessage(e.PatientName, e.Message)
	if err := d.mailer.Send(ctx, e.PatientEmail, subject, body); err != nil {
		logger.Warn().Err(err).Msg("failed to email reminder")
		d.observe("failed", "email")
		return
	}
	d.observe("sent", "email")
}

func (d *ReminderDispatcher) observe(status, channel string) {
	if d.metrics != nil {
		d.metrics.RemindersDispatched.WithLabelValues(status, channel).Inc()
	}
}
