package implementation

import (
	"context"
	"errors"

	"nestle-in-be/internal/apperror"
	"nestle-in-be/internal/entity"
	"nestle-in-be/internal/mapper"
	"nestle-in-be/internal/model"
	"nestle-in-be/internal/repository/contract"
	"nestle-in-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PodRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PodMapper
}

func NewPodRepository(db *gorm.DB) contract.PodRepository {
	return &PodRepositoryImpl{
		db:     db,
		mapper: mapper.NewPodMapper(),
	}
}

func (r *PodRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PodRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Pod, error) {
	var models []*model.Pod
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.NewTransient("pod listing failed", err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PodRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Pod, error) {
	var m model.Pod
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.NewTransient("pod lookup failed", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PodRepositoryImpl) MarkUnavailable(ctx context.Context, id int) (bool, error) {
	// The availability guard in the WHERE clause is what prevents a double
	// booking under concurrent requests.
	result := r.db.WithContext(ctx).Model(&model.Pod{}).
		Where("id = ? AND available = ?", id, true).
		Update("available", false)
	if result.Error != nil {
		return false, apperror.NewTransient("failed to mark pod unavailable", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *PodRepositoryImpl) CreateBooking(ctx context.Context, booking *entity.Booking) error {
	m := r.mapper.BookingToModel(booking)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.NewTransient("failed to create booking", err)
	}
	*booking = *r.mapper.BookingToEntity(m)
	return nil
}

func (r *PodRepositoryImpl) Seed(ctx context.Context, pods []*entity.Pod) error {
	models := make([]*model.Pod, len(pods))
	for i, p := range pods {
		models[i] = r.mapper.ToModel(p)
	}
	// Idempotent seed: existing rows keep their availability.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(models).Error
}
