package reminder

import (
	"fmt"
	"sort"

	"github.com/jwalitptl/arogyavax/internal/model"
)

// Thresholds in whole days between today and the due date.
const (
	UrgentWithinDays = 3
	SoonWithinDays   = 7
)

// DueDate is the date of birth plus ageDays calendar days.
func DueDate(dob model.Date, ageDays int) model.Date {
	return model.NewDate(dob.Time).AddDays(ageDays)
}

// Classify buckets a due date relative to today. ok is false when the due
// date is too far ahead to remind about.
func Classify(due, today model.Date) (status, alertLevel string, daysLeft int, ok bool) {
	daysLeft = today.DaysUntil(due)
	switch {
	case daysLeft < 0:
		return model.ReminderOverdue, model.AlertDanger, daysLeft, true
	case daysLeft == 0:
		return model.ReminderDue, model.AlertSuccess, daysLeft, true
	case daysLeft <= UrgentWithinDays:
		return model.ReminderUrgent, model.AlertWarning, daysLeft, true
	case daysLeft <= SoonWithinDays:
		return model.ReminderSoon, model.AlertInfo, daysLeft, true
	default:
		return "", "", daysLeft, false
	}
}

func message(status, vaccine string, due model.Date, daysLeft int) string {
	switch status {
	case model.ReminderOverdue:
		return fmt.Sprintf("OVERDUE: You missed %s! Due was %s", vaccine, due)
	case model.ReminderDue:
		return fmt.Sprintf("Due Today: Please get %s", vaccine)
	case model.ReminderUrgent:
		return fmt.Sprintf("Reminder: %s due in %s", vaccine, days(daysLeft))
	default:
		return fmt.Sprintf("Upcoming: %s due in %s", vaccine, days(daysLeft))
	}
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// Compute returns the reminders for one patient. Vaccines already taken and
// vaccines without an age offset are skipped. The result is ordered by due
// date, then vaccine name.
func Compute(dob model.Date, vaccines []*model.Vaccine, taken map[int64]bool, today model.Date) []model.Reminder {
	reminders := []model.Reminder{}
	for _, v := range vaccines {
		if v == nil || v.AgeRequiredDays == nil || taken[v.ID] {
			continue
		}

		due := DueDate(dob, *v.AgeRequiredDays)
		status, level, daysLeft, ok := Classify(due, today)
		if !ok {
			continue
		}

		reminders = append(reminders, model.Reminder{
			VaccineID:  v.ID,
			Vaccine:    v.Name,
			DueDate:    due,
			Status:     status,
			Message:    message(status, v.Name, due, daysLeft),
			AlertLevel: level,
			DaysLeft:   daysLeft,
		})
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		if !reminders[i].DueDate.Equal(reminders[j].DueDate.Time) {
			return reminders[i].DueDate.Before(reminders[j].DueDate.Time)
		}
		return reminders[i].Vaccine < reminders[j].Vaccine
	})
	return reminders
}
