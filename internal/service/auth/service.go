package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/arogyavax/internal/email"
	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
	"github.com/jwalitptl/arogyavax/pkg/auth"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
	"github.com/jwalitptl/arogyavax/pkg/security"
)

const (
	msgEmailExists        = "Email already exists."
	msgInvalidCredentials = "Invalid email or password."
	msgInvalidOTP         = "Invalid or expired OTP."
)

type Options struct {
	OTPTTL time.Duration
	// ExposeOTP echoes the generated OTP in the send-otp response.
	ExposeOTP bool
}

type Service struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
	jwtSvc auth.JWTService
	mailer email.Sender
	otps   *cache.Cache
	opts   Options
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher, jwtSvc auth.JWTService, mailer email.Sender, opts Options) *Service {
	if opts.OTPTTL <= 0 {
		opts.OTPTTL = 5 * time.Minute
	}
	return &Service{
		users:  users,
		hasher: hasher,
		jwtSvc: jwtSvc,
		mailer: mailer,
		otps:   cache.New(opts.OTPTTL, 2*opts.OTPTTL),
		opts:   opts,
	}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Register creates an account. Patients are active immediately; nurses and
// admins wait for approval.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("invalid password", err)
	}

	status := model.UserStatusPending
	if req.Role == model.RolePatient {
		status = model.UserStatusActive
	}

	user := &model.User{
		Name:             strings.TrimSpace(req.Name),
		Email:            normalizeEmail(req.Email),
		PasswordHash:     hash,
		Role:             req.Role,
		Status:           status,
		Phone:            req.Phone,
		Aadhaar:          req.Aadhaar,
		DOB:              req.DOB,
		Gender:           req.Gender,
		Address:          req.Address,
		AdmitID:          req.AdmitID,
		TrnaID:           req.TrnaID,
		HospitalLocation: req.HospitalLocation,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.Conflict(msgEmailExists, err)
		}
		return nil, err
	}

	log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	return user, nil
}

func (s *Service) Login(ctx context.Context, emailAddr, password string) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized(msgInvalidCredentials)
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized(msgInvalidCredentials)
	}

	switch user.Status {
	case model.UserStatusPending:
		return nil, apperrors.Forbidden("Account pending admin approval.")
	case model.UserStatusRejected:
		return nil, apperrors.Forbidden("Account has been rejected.")
	}

	token, err := s.jwtSvc.GenerateAccessToken(user.ID, user.Name, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.LoginResponse{
		User:  model.LoginUser{ID: user.ID, Name: user.Name, Role: user.Role},
		Token: token,
	}, nil
}

// SendOTP issues a 4-digit one-time password for emailAddr and mails it.
func (s *Service) SendOTP(ctx context.Context, emailAddr string) (*model.SendOTPResponse, error) {
	key := normalizeEmail(emailAddr)
	otp, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}
	s.otps.SetDefault(key, otp)

	subject, body := email.OTPMessage(otp)
	if err := s.mailer.Send(ctx, key, subject, body); err != nil {
		s.otps.Delete(key)
		return nil, apperrors.Internal(err)
	}

	resp := &model.SendOTPResponse{Message: "OTP sent successfully"}
	if s.opts.ExposeOTP {
		resp.OTP = otp
	}
	return resp, nil
}

// VerifyOTP checks and consumes the OTP issued for emailAddr.
func (s *Service) VerifyOTP(_ context.Context, emailAddr, otp string) error {
	key := normalizeEmail(emailAddr)
	stored, ok := s.otps.Get(key)
	if !ok {
		return apperrors.BadRequest(msgInvalidOTP, nil)
	}
	if subtle.ConstantTimeCompare([]byte(stored.(string)), []byte(otp)) != 1 {
		return apperrors.BadRequest(msgInvalidOTP, nil)
	}
	s.otps.Delete(key)
	return nil
}

// EnsureBootstrapAdmin creates the configured admin account when it does not exist yet.
func (s *Service) EnsureBootstrapAdmin(ctx context.Context, name, emailAddr, password string) error {
	if emailAddr == "" {
		return nil
	}
	existing, err := s.users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err == nil {
		if existing.Role != model.RoleAdmin {
			log.Warn().Str("email", existing.Email).Msg("bootstrap admin email belongs to a non-admin account")
		}
		return nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}
	admin := &model.User{
		Name:         name,
		Email:        normalizeEmail(emailAddr),
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Status:       model.UserStatusActive,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	log.Info().Int64("user_id", admin.ID).Msg("bootstrap admin created")
	return nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
