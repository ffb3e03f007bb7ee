package postgres

import (
	"context"
	"errors"

	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type threadRepository struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) *threadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) Create(ctx context.Context, thread *domain.Thread) error {
	return r.db.WithContext(ctx).Create(thread).Error
}

func (r *threadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
	var thread domain.Thread
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&thread, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrThreadNotFound
	}
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepository) List(ctx context.Context, tag string, limit, offset int) ([]*domain.Thread, error) {
	var threads []*domain.Thread
	err := r.byTag(ctx, tag).
		Preload("Author").
		Order("last_post_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&threads).Error
	if err != nil {
		return nil, err
	}
	return threads, nil
}

func (r *threadRepository) Count(ctx context.Context, tag string) (int64, error) {
	var count int64
	err := r.byTag(ctx, tag).Model(&domain.Thread{}).Count(&count).Error
	return count, err
}

func (r *threadRepository) byTag(ctx context.Context, tag string) *gorm.DB {
	q := r.db.WithContext(ctx)
	if tag != "" {
		q = q.Where(datatypes.JSONArrayQuery("tags").Contains(tag))
	}
	return q
}
