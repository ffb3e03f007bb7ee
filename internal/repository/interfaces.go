package repository

import (
	"context"

	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetBySteamID(ctx context.Context, steamID string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type ThreadRepository interface {
	Create(ctx context.Context, thread *domain.Thread) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Thread, error)
	// List returns threads by most recent activity. An empty tag matches all.
	List(ctx context.Context, tag string, limit, offset int) ([]*domain.Thread, error)
	Count(ctx context.Context, tag string) (int64, error)
}

type PostRepository interface {
	// Create stores the post and bumps the thread's post count and activity
	// time in the same transaction.
	Create(ctx context.Context, post *domain.Post) error
	GetByThreadID(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]*domain.Post, error)
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
	Thread  ThreadRepository
	Post    PostRepository
}
