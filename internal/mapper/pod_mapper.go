package mapper

import (
	"time"

	"nestle-in-be/internal/entity"
	"nestle-in-be/internal/model"

	"gorm.io/datatypes"
)

type PodMapper struct{}

func NewPodMapper() *PodMapper {
	return &PodMapper{}
}

func (m *PodMapper) ToEntity(p *model.Pod) *entity.Pod {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Pod{
		Id:        p.Id,
		Name:      p.Name,
		Available: p.Available,
		TimeSlots: p.TimeSlots,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *PodMapper) ToModel(p *entity.Pod) *model.Pod {
	if p == nil {
		return nil
	}

	return &model.Pod{
		Id:        p.Id,
		Name:      p.Name,
		Available: p.Available,
		TimeSlots: datatypes.NewJSONSlice(p.TimeSlots),
		CreatedAt: p.CreatedAt,
	}
}

func (m *PodMapper) ToEntities(models []*model.Pod) []*entity.Pod {
	entities := make([]*entity.Pod, len(models))
	for i, p := range models {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *PodMapper) BookingToModel(b *entity.Booking) *model.Booking {
	if b == nil {
		return nil
	}

	return &model.Booking{
		Id:        b.Id,
		PodId:     b.PodId,
		UserId:    b.UserId,
		TimeSlot:  b.TimeSlot,
		CreatedAt: b.CreatedAt,
	}
}

func (m *PodMapper) BookingToEntity(b *model.Booking) *entity.Booking {
	if b == nil {
		return nil
	}

	return &entity.Booking{
		Id:        b.Id,
		PodId:     b.PodId,
		UserId:    b.UserId,
		TimeSlot:  b.TimeSlot,
		CreatedAt: b.CreatedAt,
	}
}
