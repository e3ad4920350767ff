package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"nestle-in-be/internal/apperror"
	"nestle-in-be/internal/dto"
	"nestle-in-be/internal/model"
	"nestle-in-be/internal/pkg/logger"
	"nestle-in-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeMailer captures OTP codes instead of talking to an SMTP server. SendOTP
// runs on a goroutine, so delivery goes through a channel.
type fakeMailer struct {
	otps chan string
}

func (f *fakeMailer) SendOTP(toEmail, otp string) error {
	f.otps <- otp
	return nil
}

func (f *fakeMailer) waitForOTP(t *testing.T) string {
	t.Helper()
	select {
	case otp := <-f.otps:
		return otp
	case <-time.After(2 * time.Second):
		t.Fatal("no OTP was sent")
		return ""
	}
}

func newAuthService(t *testing.T) (IAuthService, *gorm.DB, *fakeMailer) {
	t.Helper()

	db := newTestDB(t)
	uowFactory := unitofwork.NewRepositoryFactory(db)
	log := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))
	m := &fakeMailer{otps: make(chan string, 8)}
	return NewAuthService(uowFactory, m, log), db, m
}

func TestRegisterVerifyLogin(t *testing.T) {
	svc, db, m := newAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:       "alice@example.com",
		Password:    "correct-horse",
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.UserId)

	otp := m.waitForOTP(t)
	require.Len(t, otp, 6)

	// Login before verification is rejected.
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	require.NoError(t, svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{
		Email: "alice@example.com",
		Otp:   otp,
	}))

	// Verification consumes the OTP; no token row survives.
	var tokens int64
	require.NoError(t, db.Model(&model.EmailVerificationToken{}).
		Where("user_id = ?", reg.UserId).
		Count(&tokens).Error)
	assert.Zero(t, tokens)

	res, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "Alice", res.User.DisplayName)
	assert.Equal(t, "active", res.User.Status)

	profile, err := svc.Me(ctx, res.User.Id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.DisplayName)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, m := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:       "bob@example.com",
		Password:    "password123",
		DisplayName: "Bob",
	})
	require.NoError(t, err)
	m.waitForOTP(t)

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Email:       "bob@example.com",
		Password:    "password456",
		DisplayName: "Bob Again",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestVerifyEmailWrongOTP(t *testing.T) {
	svc, _, m := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:       "carol@example.com",
		Password:    "password123",
		DisplayName: "Carol",
	})
	require.NoError(t, err)
	m.waitForOTP(t)

	err = svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{
		Email: "carol@example.com",
		Otp:   "000000",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestVerifyEmailExpiredOTP(t *testing.T) {
	svc, db, m := newAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:       "dave@example.com",
		Password:    "password123",
		DisplayName: "Dave",
	})
	require.NoError(t, err)
	otp := m.waitForOTP(t)

	// Age the token past its window.
	require.NoError(t, db.Model(&model.EmailVerificationToken{}).
		Where("user_id = ?", reg.UserId).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	err = svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{
		Email: "dave@example.com",
		Otp:   otp,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestVerifyEmailIdempotentWhenActive(t *testing.T) {
	svc, _, m := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:       "erin@example.com",
		Password:    "password123",
		DisplayName: "Erin",
	})
	require.NoError(t, err)
	otp := m.waitForOTP(t)

	require.NoError(t, svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "erin@example.com", Otp: otp}))

	// A second verification is a no-op, even with a bogus code.
	require.NoError(t, svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "erin@example.com", Otp: "000000"}))
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _, m := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:       "frank@example.com",
		Password:    "password123",
		DisplayName: "Frank",
	})
	require.NoError(t, err)
	otp := m.waitForOTP(t)
	require.NoError(t, svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "frank@example.com", Otp: otp}))

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "frank@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestMeUnknownUser(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Me(context.Background(), "user_missing")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
