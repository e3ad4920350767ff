package implementation

import (
	"context"
	"errors"
	"time"

	"nestle-in-be/internal/apperror"
	"nestle-in-be/internal/entity"
	"nestle-in-be/internal/mapper"
	"nestle-in-be/internal/model"
	"nestle-in-be/internal/repository/contract"
	"nestle-in-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChatSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatSessionRepository(db *gorm.DB) contract.ChatSessionRepository {
	return &ChatSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatSessionRepositoryImpl) Create(ctx context.Context, session *entity.ChatSession) error {
	m := r.mapper.ChatSessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.NewConflict("chat session id already exists")
		}
		return apperror.NewTransient("failed to create chat session", err)
	}
	*session = *r.mapper.ChatSessionToEntity(m)
	return nil
}

func (r *ChatSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	var m model.ChatSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.NewTransient("chat session lookup failed", err)
	}
	return r.mapper.ChatSessionToEntity(&m), nil
}

func (r *ChatSessionRepositoryImpl) FindAllSummaries(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSessionSummary, error) {
	var models []*model.ChatSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.NewTransient("chat session listing failed", err)
	}
	summaries := make([]*entity.ChatSessionSummary, len(models))
	for i, m := range models {
		summaries[i] = r.mapper.ChatSessionToSummary(m)
	}
	return summaries, nil
}

func (r *ChatSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, apperror.NewTransient("chat session count failed", err)
	}
	return count, nil
}

func (r *ChatSessionRepositoryImpl) Rename(ctx context.Context, id, userId, title string, now time.Time) (*entity.ChatSession, error) {
	result := r.db.WithContext(ctx).Model(&model.ChatSession{}).
		Where("id = ? AND user_id = ?", id, userId).
		Updates(map[string]interface{}{
			"title":      title,
			"updated_at": now,
		})
	if result.Error != nil {
		return nil, apperror.NewTransient("failed to rename chat session", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperror.NewNotFound("Chat session not found")
	}

	session, err := r.FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		// The session was deleted between the update and the re-read.
		return nil, apperror.NewNotFound("Chat session not found")
	}
	return session, nil
}

func (r *ChatSessionRepositoryImpl) Touch(ctx context.Context, id string, now time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.ChatSession{}).
		Where("id = ?", id).
		Update("updated_at", now)
	if result.Error != nil {
		return apperror.NewTransient("failed to touch chat session", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFound("Chat session not found")
	}
	return nil
}

func (r *ChatSessionRepositoryImpl) Delete(ctx context.Context, id, userId string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userId).
		Delete(&model.ChatSession{})
	if result.Error != nil {
		return false, apperror.NewTransient("failed to delete chat session", result.Error)
	}
	return result.RowsAffected > 0, nil
}
