package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/dom/deadlock-hub/internal/steam"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var steamIDCounter atomic.Int64

// NextSteamID returns a distinct, well-formed SteamID64 per call.
func NextSteamID() string {
	return fmt.Sprintf("7656119900%07d", steamIDCounter.Add(1))
}

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	steamID     string
	personaName string
	avatarURL   string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		steamID:     NextSteamID(),
		personaName: fmt.Sprintf("player_%s", uuid.New().String()[:8]),
	}
}

// WithSteamID sets the SteamID64
func (b *UserBuilder) WithSteamID(steamID string) *UserBuilder {
	b.steamID = steamID
	return b
}

// WithPersonaName sets the display name
func (b *UserBuilder) WithPersonaName(name string) *UserBuilder {
	b.personaName = name
	return b
}

// WithAvatar sets the avatar URL
func (b *UserBuilder) WithAvatar(url string) *UserBuilder {
	b.avatarURL = url
	return b
}

// Build creates the user in the database
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	now := time.Now()
	user := &domain.User{
		ID:          uuid.New(),
		SteamID:     b.steamID,
		PersonaName: b.personaName,
		AvatarURL:   b.avatarURL,
		LastLoginAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// BuildAndAuthenticate signs the user in through the auth service, as the
// Steam callback would, and returns the user with an access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	result, err := ts.Services.Auth.LoginWithSteamID(context.Background(), b.steamID, &steam.PlayerSummary{
		SteamID:     b.steamID,
		PersonaName: b.personaName,
		AvatarFull:  b.avatarURL,
	})
	if err != nil {
		t.Fatalf("failed to sign in user: %v", err)
	}

	return result.User, result.AccessToken
}

// ThreadBuilder creates forum threads with a builder pattern
type ThreadBuilder struct {
	author *domain.User
	title  string
	body   string
	tags   []string
	age    time.Duration
}

// NewThreadBuilder creates a new ThreadBuilder with default values
func NewThreadBuilder() *ThreadBuilder {
	return &ThreadBuilder{
		title: "Best early items for Haze?",
		body:  "Looking for a lane build.",
		tags:  []string{},
	}
}

// WithAuthor sets the author
func (b *ThreadBuilder) WithAuthor(user *domain.User) *ThreadBuilder {
	b.author = user
	return b
}

// WithTitle sets the title
func (b *ThreadBuilder) WithTitle(title string) *ThreadBuilder {
	b.title = title
	return b
}

// WithTags sets the tags
func (b *ThreadBuilder) WithTags(tags ...string) *ThreadBuilder {
	b.tags = tags
	return b
}

// WithAge backdates the thread's last activity
func (b *ThreadBuilder) WithAge(age time.Duration) *ThreadBuilder {
	b.age = age
	return b
}

// Build creates the thread in the database, creating an author if none was set
func (b *ThreadBuilder) Build(t *testing.T, db *gorm.DB) *domain.Thread {
	t.Helper()

	author := b.author
	if author == nil {
		author = NewUserBuilder().Build(t, db)
	}

	tags, _ := json.Marshal(b.tags)
	at := time.Now().Add(-b.age)
	thread := &domain.Thread{
		ID:         uuid.New(),
		AuthorID:   author.ID,
		Title:      b.title,
		Body:       b.body,
		Tags:       tags,
		LastPostAt: at,
		CreatedAt:  at,
		UpdatedAt:  at,
	}

	if err := db.Create(thread).Error; err != nil {
		t.Fatalf("failed to create thread: %v", err)
	}
	thread.Author = author

	return thread
}

// AuthRequest builds a request carrying a bearer token
func AuthRequest(t *testing.T, method, url, token string, body string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
