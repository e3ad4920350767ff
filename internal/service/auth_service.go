package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"time"

	"nestle-in-be/internal/apperror"
	"nestle-in-be/internal/dto"
	"nestle-in-be/internal/entity"
	"nestle-in-be/internal/pkg/logger"
	"nestle-in-be/internal/pkg/mailer"
	"nestle-in-be/internal/repository/specification"
	"nestle-in-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userId string) (*dto.UserProfileResponse, error)
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	log          logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		emailService: emailService,
		log:          log,
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}

func newUserId() string {
	return fmt.Sprintf("user_%s", uuid.NewString())
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return []byte(secret)
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	now := time.Now()
	email := req.Email
	user := &entity.User{
		Id:            newUserId(),
		DisplayName:   req.DisplayName,
		Email:         &email,
		PasswordHash:  &hashStr,
		Status:        entity.UserStatusPending,
		EmailVerified: false,
		CreatedAt:     now,
		LastActiveAt:  now,
	}

	otpCode, err := generateOTP()
	if err != nil {
		return nil, err
	}

	verificationToken := &entity.EmailVerificationToken{
		Id:        uuid.NewString(),
		UserId:    user.Id,
		Token:     otpCode,
		ExpiresAt: now.Add(15 * time.Minute),
		CreatedAt: now,
	}

	// User + token creation must land together.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.UserRepository().CreateEmailVerificationToken(ctx, verificationToken); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	go func() {
		if emailErr := s.emailService.SendOTP(req.Email, otpCode); emailErr != nil {
			s.log.Warn("auth", "failed to send verification email", map[string]interface{}{
				"user_id": user.Id,
				"error":   emailErr.Error(),
			})
		}
	}()

	return &dto.RegisterResponse{UserId: user.Id}, nil
}

func (s *authService) VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFound("user not found")
	}

	if user.Status == entity.UserStatusActive {
		return nil
	}

	tokenEntity, err := uow.UserRepository().FindEmailVerificationToken(ctx,
		specification.OwnedBy{UserID: user.Id},
		specification.ByToken{Token: req.Otp},
	)
	if err != nil {
		return err
	}
	if tokenEntity == nil {
		return apperror.NewValidation("invalid otp code")
	}
	if time.Now().After(tokenEntity.ExpiresAt) {
		return apperror.NewValidation("otp code expired")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().ActivateUser(ctx, user.Id); err != nil {
		return err
	}
	if err := uow.UserRepository().DeleteEmailVerificationToken(ctx, tokenEntity.Id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, apperror.NewValidation("invalid credentials")
	}

	if user.Status == entity.UserStatusPending || !user.EmailVerified {
		return nil, apperror.NewValidation("email not verified. please check your inbox for the otp code")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.NewValidation("invalid credentials")
	}

	claims := jwt.MapClaims{
		"user_id": user.Id,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(jwtSecret())
	if err != nil {
		return nil, err
	}

	if err := uow.UserRepository().TouchActivity(ctx, user.Id, time.Now()); err != nil {
		s.log.Warn("auth", "failed to touch user activity", map[string]interface{}{
			"user_id": user.Id,
			"error":   err.Error(),
		})
	}

	return &dto.LoginResponse{
		AccessToken: signedToken,
		User: dto.UserProfileResponse{
			Id:          user.Id,
			DisplayName: user.DisplayName,
			Email:       user.Email,
			Status:      string(user.Status),
		},
	}, nil
}

func (s *authService) Me(ctx context.Context, userId string) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFound("user not found")
	}

	return &dto.UserProfileResponse{
		Id:          user.Id,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Status:      string(user.Status),
	}, nil
}
