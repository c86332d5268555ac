package stock

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
	"github.com/jwalitptl/arogyavax/internal/service/audit"
	"github.com/jwalitptl/arogyavax/internal/service/catalogue"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
	"github.com/jwalitptl/arogyavax/pkg/messaging"
	"github.com/jwalitptl/arogyavax/pkg/metrics"
)

type Service struct {
	stock     repository.StockRepository
	vaccines  repository.VaccineRepository
	catalogue *catalogue.Service
	events    messaging.Publisher
	auditor   *audit.Service
	metrics   *metrics.Metrics
}

func NewService(stock repository.StockRepository, vaccines repository.VaccineRepository, catalogue *catalogue.Service,
	events messaging.Publisher, auditor *audit.Service, m *metrics.Metrics) *Service {
	return &Service{
		stock:     stock,
		vaccines:  vaccines,
		catalogue: catalogue,
		events:    events,
		auditor:   auditor,
		metrics:   m,
	}
}

func (s *Service) List(ctx context.Context, hospitalID *int64) ([]*model.Stock, error) {
	return s.stock.List(ctx, hospitalID)
}

// Add increases the stock of the named vaccine, creating the vaccine when the
// name is new.
func (s *Service) Add(ctx context.Context, req *model.AddStockRequest) (*model.Stock, error) {
	name := strings.TrimSpace(req.VaccineName)
	if name == "" {
		return nil, apperrors.BadRequest("vaccineName is required", nil)
	}
	if req.Quantity <= 0 {
		return nil, apperrors.BadRequest("quantity must be greater than zero", nil)
	}

	hospitalID, err := s.catalogue.ResolveHospital(ctx, req.HospitalID)
	if err != nil {
		return nil, err
	}

	vaccine, err := s.vaccines.FindOrCreate(ctx, name)
	if err != nil {
		return nil, err
	}
	// The vaccine may be new.
	s.catalogue.InvalidateVaccines()

	row, err := s.stock.Add(ctx, hospitalID, vaccine.ID, req.Quantity)
	if err != nil {
		return nil, err
	}
	row.VaccineName = &vaccine.Name

	if s.metrics != nil {
		s.metrics.StockAdded.WithLabelValues(vaccine.Name).Add(float64(req.Quantity))
	}

	event := model.StockUpdated{
		HospitalID: hospitalID,
		VaccineID:  vaccine.ID,
		Vaccine:    vaccine.Name,
		Added:      req.Quantity,
		Quantity:   row.Quantity,
	}
	if err := s.events.Publish(ctx, messaging.EventStockUpdated, event); err != nil {
		log.Warn().Err(err).Int64("hospital_id", hospitalID).Msg("failed to publish stock.updated")
	}

	s.auditor.Record(ctx, model.AuditActionStockAdd, model.AuditEntityStock, row.ID,
		fmt.Sprintf("added %d of %s", req.Quantity, vaccine.Name))
	return row, nil
}
