package postgres

import (
	"context"
	"errors"

	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *postRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Thread{}).
			Where("id = ?", post.ThreadID).
			Updates(map[string]interface{}{
				"post_count":   gorm.Expr("post_count + 1"),
				"last_post_at": post.CreatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrThreadNotFound
		}
		return tx.Create(post).Error
	})
}

func (r *postRepository) GetByThreadID(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return posts, nil
}
