package contract

import (
	"context"
	"time"

	"nestle-in-be/internal/entity"
	"nestle-in-be/internal/repository/specification"
)

type UserRepository interface {
	// Create fails with apperror.ConflictError when the id is already taken.
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	// FindOne returns (nil, nil) when no user matches.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	// TouchActivity refreshes last_active_at; apperror.NotFoundError when the
	// user does not exist (callers create users before touching them).
	TouchActivity(ctx context.Context, id string, now time.Time) error

	CreateEmailVerificationToken(ctx context.Context, token *entity.EmailVerificationToken) error
	FindEmailVerificationToken(ctx context.Context, specs ...specification.Specification) (*entity.EmailVerificationToken, error)
	DeleteEmailVerificationToken(ctx context.Context, id string) error
	ActivateUser(ctx context.Context, id string) error
}
