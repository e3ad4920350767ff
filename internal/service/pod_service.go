package service

import (
	"context"
	"fmt"
	"time"

	"nestle-in-be/internal/apperror"
	"nestle-in-be/internal/dto"
	"nestle-in-be/internal/entity"
	"nestle-in-be/internal/pkg/logger"
	"nestle-in-be/internal/repository/specification"
	"nestle-in-be/internal/repository/unitofwork"
	"nestle-in-be/pkg/events"
	pktNats "nestle-in-be/pkg/nats"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const podListCacheKey = "pods:all"

type IPodService interface {
	ListPods(ctx context.Context) ([]dto.PodResponse, error)
	BookPod(ctx context.Context, req *dto.BookPodRequest) (*dto.BookPodResponse, error)
}

type podService struct {
	uowFactory     unitofwork.RepositoryFactory
	cache          *gocache.Cache
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewPodService(
	uowFactory unitofwork.RepositoryFactory,
	cache *gocache.Cache,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IPodService {
	return &podService{
		uowFactory:     uowFactory,
		cache:          cache,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func newBookingId() string {
	return fmt.Sprintf("booking_%s", uuid.NewString())
}

// ListPods serves from cache when possible. A booking invalidates the entry,
// so availability is at most one cache TTL stale.
func (s *podService) ListPods(ctx context.Context) ([]dto.PodResponse, error) {
	if cached, found := s.cache.Get(podListCacheKey); found {
		if pods, ok := cached.([]dto.PodResponse); ok {
			return pods, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	pods, err := uow.PodRepository().FindAll(ctx,
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.PodResponse, 0, len(pods))
	for _, pod := range pods {
		res = append(res, dto.PodResponse{
			Id:        pod.Id,
			Name:      pod.Name,
			Available: pod.Available,
			TimeSlots: pod.TimeSlots,
		})
	}

	s.cache.Set(podListCacheKey, res, gocache.DefaultExpiration)
	return res, nil
}

func (s *podService) BookPod(ctx context.Context, req *dto.BookPodRequest) (*dto.BookPodResponse, error) {
	userId := effectiveUserId(req.UserId)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	pod, err := uow.PodRepository().FindOne(ctx, specification.ByIntID{ID: req.PodId})
	if err != nil {
		return nil, err
	}
	if pod == nil {
		return nil, apperror.NewNotFound("Pod not found")
	}

	validSlot := false
	for _, slot := range pod.TimeSlots {
		if slot == req.TimeSlot {
			validSlot = true
			break
		}
	}
	if !validSlot {
		return nil, apperror.NewValidation("Invalid time slot for this pod")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	marked, err := uow.PodRepository().MarkUnavailable(ctx, pod.Id)
	if err != nil {
		return nil, err
	}
	if !marked {
		return nil, apperror.NewConflict("Pod is no longer available")
	}

	booking := entity.Booking{
		Id:        newBookingId(),
		PodId:     pod.Id,
		UserId:    userId,
		TimeSlot:  req.TimeSlot,
		CreatedAt: time.Now(),
	}
	if err := uow.PodRepository().CreateBooking(ctx, &booking); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.cache.Delete(podListCacheKey)

	if err := s.eventPublisher.Publish(ctx, events.NewPodBooked(booking.Id, pod.Id, userId, booking.TimeSlot)); err != nil {
		s.log.Warn("pod", "failed to publish booking event", map[string]interface{}{
			"booking_id": booking.Id,
			"error":      err.Error(),
		})
	}

	return &dto.BookPodResponse{
		BookingId: booking.Id,
		PodId:     pod.Id,
		TimeSlot:  booking.TimeSlot,
	}, nil
}
