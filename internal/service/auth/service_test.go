package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository/mocks"
	"github.com/jwalitptl/arogyavax/pkg/auth"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
	"github.com/jwalitptl/arogyavax/pkg/security"
)

type sentMail struct{ to, subject, body string }

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, body})
	return nil
}

type fixture struct {
	svc    *Service
	users  *mocks.MockUserRepository
	mailer *fakeSender
	hasher security.PasswordHasher
	jwt    auth.JWTService
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	users := new(mocks.MockUserRepository)
	mailer := &fakeSender{}
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	jwtSvc, err := auth.NewJWTService("test-secret", "arogyavax", time.Hour)
	require.NoError(t, err)
	return &fixture{
		svc:    NewService(users, hasher, jwtSvc, mailer, opts),
		users:  users,
		mailer: mailer,
		hasher: hasher,
		jwt:    jwtSvc,
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		role       string
		wantStatus string
	}{
		{model.RolePatient, model.UserStatusActive},
		{model.RoleNurse, model.UserStatusPending},
		{model.RoleAdmin, model.UserStatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			f := newFixture(t, Options{})
			f.users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
				return u.Email == "asha@example.com" && u.Status == tt.wantStatus && u.PasswordHash != "pw"
			})).Run(func(args mock.Arguments) {
				args.Get(1).(*model.User).ID = 3
			}).Return(nil)

			user, err := f.svc.Register(ctx, &model.RegisterRequest{
				Name: "Asha", Email: " Asha@Example.com ", Password: "pw", Role: tt.role,
			})
			require.NoError(t, err)
			assert.Equal(t, int64(3), user.ID)
			assert.NoError(t, f.hasher.Compare(user.PasswordHash, "pw"))
		})
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	f.users.On("Create", ctx, mock.Anything).Return(apperrors.Conflict("user already exists", nil))

	_, err := f.svc.Register(ctx, &model.RegisterRequest{Name: "A", Email: "a@b.c", Password: "x", Role: "patient"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Equal(t, "Email already exists.", appErr.Message)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	hash, err := f.hasher.Hash("secret")
	require.NoError(t, err)

	f.users.On("GetByEmail", ctx, "mary@demo.com").Return(&model.User{
		ID: 2, Name: "Nurse Mary", Role: model.RoleNurse, Status: model.UserStatusActive, PasswordHash: hash,
	}, nil)
	f.users.On("GetByEmail", ctx, "pending@demo.com").Return(&model.User{
		ID: 3, Role: model.RoleNurse, Status: model.UserStatusPending, PasswordHash: hash,
	}, nil)
	f.users.On("GetByEmail", ctx, "ghost@demo.com").Return(nil, apperrors.NewNotFound("user", nil))
	f.users.On("GetByEmail", ctx, "broken@demo.com").Return(nil, errors.New("db down"))

	t.Run("success", func(t *testing.T) {
		resp, err := f.svc.Login(ctx, "Mary@demo.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, model.LoginUser{ID: 2, Name: "Nurse Mary", Role: model.RoleNurse}, resp.User)

		claims, err := f.jwt.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, int64(2), claims.UserID)
		assert.Equal(t, model.RoleNurse, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Login(ctx, "mary@demo.com", "nope")
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
		assert.Equal(t, "Invalid email or password.", err.Error())
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.Login(ctx, "ghost@demo.com", "secret")
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	})

	t.Run("pending account", func(t *testing.T) {
		_, err := f.svc.Login(ctx, "pending@demo.com", "secret")
		assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
	})

	t.Run("repository failure", func(t *testing.T) {
		_, err := f.svc.Login(ctx, "broken@demo.com", "secret")
		assert.EqualError(t, err, "db down")
	})
}

func TestService_OTP(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip is single use", func(t *testing.T) {
		f := newFixture(t, Options{ExposeOTP: true})
		resp, err := f.svc.SendOTP(ctx, "Asha@Example.com")
		require.NoError(t, err)
		require.Len(t, resp.OTP, 4)
		require.Len(t, f.mailer.sent, 1)
		assert.Equal(t, "asha@example.com", f.mailer.sent[0].to)
		assert.Contains(t, f.mailer.sent[0].body, resp.OTP)

		assert.NoError(t, f.svc.VerifyOTP(ctx, "asha@example.com", resp.OTP))
		assert.True(t, apperrors.Is(f.svc.VerifyOTP(ctx, "asha@example.com", resp.OTP), apperrors.ErrBadRequest))
	})

	t.Run("otp hidden unless exposed", func(t *testing.T) {
		f := newFixture(t, Options{})
		resp, err := f.svc.SendOTP(ctx, "a@b.c")
		require.NoError(t, err)
		assert.Empty(t, resp.OTP)
	})

	t.Run("wrong otp", func(t *testing.T) {
		f := newFixture(t, Options{ExposeOTP: true})
		resp, err := f.svc.SendOTP(ctx, "a@b.c")
		require.NoError(t, err)

		wrong := "0000"
		if resp.OTP == wrong {
			wrong = "0001"
		}
		assert.True(t, apperrors.Is(f.svc.VerifyOTP(ctx, "a@b.c", wrong), apperrors.ErrBadRequest))
	})

	t.Run("mail failure", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.mailer.err = errors.New("smtp down")
		_, err := f.svc.SendOTP(ctx, "a@b.c")
		assert.True(t, apperrors.Is(err, apperrors.ErrInternal))
		assert.True(t, apperrors.Is(f.svc.VerifyOTP(ctx, "a@b.c", "1234"), apperrors.ErrBadRequest))
	})
}

func TestService_EnsureBootstrapAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing admin", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.users.On("GetByEmail", ctx, "admin@admin.com").Return(nil, apperrors.NewNotFound("user", nil))
		f.users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Role == model.RoleAdmin && u.Status == model.UserStatusActive
		})).Return(nil)

		require.NoError(t, f.svc.EnsureBootstrapAdmin(ctx, "Admin", "admin@admin.com", "admin"))
		f.users.AssertExpectations(t)
	})

	t.Run("existing admin untouched", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.users.On("GetByEmail", ctx, "admin@admin.com").Return(&model.User{ID: 1, Role: model.RoleAdmin}, nil)

		require.NoError(t, f.svc.EnsureBootstrapAdmin(ctx, "Admin", "admin@admin.com", "admin"))
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("disabled without email", func(t *testing.T) {
		f := newFixture(t, Options{})
		require.NoError(t, f.svc.EnsureBootstrapAdmin(ctx, "Admin", "", ""))
	})
}
