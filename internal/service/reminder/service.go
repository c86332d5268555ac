package reminder

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

type Service struct {
	users    repository.UserRepository
	vaccines repository.VaccineRepository
	records  repository.RecordRepository
	now      func() time.Time
}

func NewService(users repository.UserRepository, vaccines repository.VaccineRepository, records repository.RecordRepository) *Service {
	return &Service{
		users:    users,
		vaccines: vaccines,
		records:  records,
		now:      time.Now,
	}
}

func (s *Service) today() model.Date {
	return model.NewDate(s.now().UTC())
}

// ForPatient returns the patient's current reminders. Unknown patients and
// patients without a date of birth have none.
func (s *Service) ForPatient(ctx context.Context, patientID int64) ([]model.Reminder, error) {
	user, err := s.users.GetByID(ctx, patientID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return []model.Reminder{}, nil
		}
		return nil, err
	}
	if user.DOB == nil || user.DOB.IsZero() {
		return []model.Reminder{}, nil
	}

	vaccines, err := s.vaccines.List(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := s.records.TakenVaccineIDs(ctx, patientID)
	if err != nil {
		return nil, err
	}

	taken := make(map[int64]bool, len(ids))
	for _, id := range ids {
		taken[id] = true
	}
	return Compute(*user.DOB, vaccines, taken, s.today()), nil
}

// DueList returns the reminders of every active patient with a date of birth,
// ordered by due date, then patient name.
func (s *Service) DueList(ctx context.Context) ([]model.DueEntry, error) {
	patients, err := s.users.ListPatientsWithDOB(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load patients: %w", err)
	}
	vaccines, err := s.vaccines.List(ctx)
	if err != nil {
		return nil, err
	}
	doses, err := s.records.TakenDoses(ctx)
	if err != nil {
		return nil, err
	}

	taken := make(map[int64]map[int64]bool)
	for _, d := range doses {
		if taken[d.PatientID] == nil {
			taken[d.PatientID] = make(map[int64]bool)
		}
		taken[d.PatientID][d.VaccineID] = true
	}

	today := s.today()
	entries := []model.DueEntry{}
	for _, p := range patients {
		if p.DOB == nil || p.DOB.IsZero() {
			continue
		}
		for _, r := range Compute(*p.DOB, vaccines, taken[p.ID], today) {
			entries = append(entries, model.DueEntry{
				PatientID:    p.ID,
				PatientName:  p.Name,
				PatientPhone: p.Phone,
				PatientEmail: p.Email,
				Reminder:     r,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].DueDate.Equal(entries[j].DueDate.Time) {
			return entries[i].DueDate.Before(entries[j].DueDate.Time)
		}
		return entries[i].PatientName < entries[j].PatientName
	})
	return entries, nil
}
