package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/dom/deadlock-hub/internal/repository"
	"github.com/google/uuid"
)

const (
	DefaultThreadPageSize = 20
	MaxThreadPageSize     = 100
)

// PostPublisher is told about new threads and replies so connected clients
// can be updated live.
type PostPublisher interface {
	PublishThread(thread *domain.Thread)
	PublishPost(post *domain.Post)
}

type ForumService struct {
	threadRepo repository.ThreadRepository
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	publisher  PostPublisher
}

func NewForumService(
	threadRepo repository.ThreadRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	publisher PostPublisher,
) *ForumService {
	return &ForumService{
		threadRepo: threadRepo,
		postRepo:   postRepo,
		userRepo:   userRepo,
		publisher:  publisher,
	}
}

type CreateThreadInput struct {
	Title string
	Body  string
	Tags  []string
}

func (s *ForumService) CreateThread(ctx context.Context, authorID uuid.UUID, input CreateThreadInput) (*domain.Thread, error) {
	title := strings.TrimSpace(input.Title)
	switch {
	case title == "":
		return nil, domain.ErrEmptyTitle
	case utf8.RuneCountInString(title) > domain.MaxThreadTitleLength:
		return nil, domain.ErrTitleTooLong
	}
	body, err := validateBody(input.Body)
	if err != nil {
		return nil, err
	}
	tags, err := normalizeTags(input.Tags)
	if err != nil {
		return nil, err
	}
	tagsJSON, _ := json.Marshal(tags)

	now := time.Now()
	thread := &domain.Thread{
		ID:         uuid.New(),
		AuthorID:   authorID,
		Title:      title,
		Body:       body,
		Tags:       tagsJSON,
		LastPostAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.threadRepo.Create(ctx, thread); err != nil {
		return nil, err
	}

	thread.Author = s.lookupAuthor(ctx, authorID)
	if s.publisher != nil {
		s.publisher.PublishThread(thread)
	}
	return thread, nil
}

func (s *ForumService) ListThreads(ctx context.Context, tag string, limit, offset int) ([]*domain.Thread, int64, error) {
	limit, offset = clampPage(limit, offset)
	tag = strings.ToLower(strings.TrimSpace(tag))

	threads, err := s.threadRepo.List(ctx, tag, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.threadRepo.Count(ctx, tag)
	if err != nil {
		return nil, 0, err
	}
	return threads, total, nil
}

func (s *ForumService) GetThread(ctx context.Context, id uuid.UUID, limit, offset int) (*domain.Thread, []*domain.Post, error) {
	thread, err := s.threadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	limit, offset = clampPage(limit, offset)
	posts, err := s.postRepo.GetByThreadID(ctx, id, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return thread, posts, nil
}

func (s *ForumService) Reply(ctx context.Context, authorID, threadID uuid.UUID, body string) (*domain.Post, error) {
	body, err := validateBody(body)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		ID:        uuid.New(),
		ThreadID:  threadID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	post.Author = s.lookupAuthor(ctx, authorID)
	if s.publisher != nil {
		s.publisher.PublishPost(post)
	}
	return post, nil
}

func (s *ForumService) lookupAuthor(ctx context.Context, id uuid.UUID) *domain.User {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("WARN [forum.lookupAuthor] userID=%s: %v", id, err)
		return nil
	}
	return user
}

func validateBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	switch {
	case body == "":
		return "", domain.ErrEmptyBody
	case utf8.RuneCountInString(body) > domain.MaxPostBodyLength:
		return "", domain.ErrBodyTooLong
	}
	return body, nil
}

func normalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) > domain.MaxThreadTags {
		return nil, domain.ErrTooManyTags
	}
	return out, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > MaxThreadPageSize {
		limit = DefaultThreadPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// IsValidationError reports whether err is caused by bad user input.
func IsValidationError(err error) bool {
	for _, target := range []error{
		domain.ErrEmptyTitle,
		domain.ErrTitleTooLong,
		domain.ErrEmptyBody,
		domain.ErrBodyTooLong,
		domain.ErrTooManyTags,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
