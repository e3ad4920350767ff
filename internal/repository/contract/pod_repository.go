package contract

import (
	"context"

	"nestle-in-be/internal/entity"
	"nestle-in-be/internal/repository/specification"
)

type PodRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Pod, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Pod, error)
	// MarkUnavailable reports whether the pod was still available; false
	// means someone else already booked it.
	MarkUnavailable(ctx context.Context, id int) (bool, error)
	CreateBooking(ctx context.Context, booking *entity.Booking) error
	Seed(ctx context.Context, pods []*entity.Pod) error
}
