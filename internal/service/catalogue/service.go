package catalogue

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
	"github.com/jwalitptl/arogyavax/internal/service/audit"
	"github.com/jwalitptl/arogyavax/pkg/auth"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

const vaccinesKey = "vaccines"

// DefaultHospital names the hospital used when a request omits one.
type DefaultHospital struct {
	Name     string
	Location string
}

// Service serves the vaccine and hospital catalogue.
type Service struct {
	vaccines  repository.VaccineRepository
	hospitals repository.HospitalRepository
	auditor   *audit.Service
	cache     *cache.Cache
	fallback  DefaultHospital

	mu                sync.Mutex
	defaultHospitalID int64
}

func NewService(vaccines repository.VaccineRepository, hospitals repository.HospitalRepository,
	auditor *audit.Service, cacheTTL time.Duration, fallback DefaultHospital) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &Service{
		vaccines:  vaccines,
		hospitals: hospitals,
		auditor:   auditor,
		cache:     cache.New(cacheTTL, 2*cacheTTL),
		fallback:  fallback,
	}
}

func (s *Service) Vaccines(ctx context.Context) ([]*model.Vaccine, error) {
	if cached, ok := s.cache.Get(vaccinesKey); ok {
		return cached.([]*model.Vaccine), nil
	}
	vaccines, err := s.vaccines.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(vaccinesKey, vaccines)
	return vaccines, nil
}

func (s *Service) CreateVaccine(ctx context.Context, req *model.CreateVaccineRequest) (*model.Vaccine, error) {
	v := &model.Vaccine{
		Name:            strings.TrimSpace(req.Name),
		TimingLabel:     req.TimingLabel,
		Description:     req.Description,
		AgeRequiredDays: req.AgeRequiredDays,
	}
	if err := s.vaccines.Create(ctx, v); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.Conflict("Vaccine with this name and timing already exists.", err)
		}
		return nil, err
	}
	s.cache.Delete(vaccinesKey)

	s.auditor.Record(ctx, model.AuditActionVaccineCreate, model.AuditEntityVaccine, v.ID, v.Name)
	return v, nil
}

// InvalidateVaccines drops the cached vaccine list.
func (s *Service) InvalidateVaccines() {
	s.cache.Delete(vaccinesKey)
}

// ApprovedHospitals lists hospitals visible to the public.
func (s *Service) ApprovedHospitals(ctx context.Context) ([]*model.Hospital, error) {
	return s.hospitals.List(ctx, true)
}

// RegisterHospital records a hospital awaiting admin approval.
func (s *Service) RegisterHospital(ctx context.Context, req *model.CreateHospitalRequest) (*model.Hospital, error) {
	h := &model.Hospital{
		Name:     strings.TrimSpace(req.Name),
		Location: req.Location,
	}
	if claims, ok := auth.ClaimsFromContext(ctx); ok {
		h.UserID = &claims.UserID
	}
	if err := s.hospitals.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// ResolveHospital returns id when set, otherwise the default hospital, which
// is created on first use.
func (s *Service) ResolveHospital(ctx context.Context, id *int64) (int64, error) {
	if id != nil && *id > 0 {
		if _, err := s.hospitals.GetByID(ctx, *id); err != nil {
			return 0, err
		}
		return *id, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.defaultHospitalID != 0 {
		return s.defaultHospitalID, nil
	}
	h, err := s.hospitals.Ensure(ctx, s.fallback.Name, s.fallback.Location)
	if err != nil {
		return 0, err
	}
	s.defaultHospitalID = h.ID
	return h.ID, nil
}
