package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	MaxThreadTitleLength = 120
	MaxPostBodyLength    = 10000
	MaxThreadTags        = 5
)

type Thread struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AuthorID   uuid.UUID      `json:"authorId" gorm:"type:uuid;not null;index"`
	Author     *User          `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Title      string         `json:"title" gorm:"not null"`
	Body       string         `json:"body" gorm:"type:text;not null"`
	Tags       datatypes.JSON `json:"tags" gorm:"type:jsonb"` // ["haze", "builds"]
	PostCount  int            `json:"postCount" gorm:"not null;default:0"`
	LastPostAt time.Time      `json:"lastPostAt" gorm:"index"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

type Post struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ThreadID  uuid.UUID `json:"threadId" gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `json:"authorId" gorm:"type:uuid;not null"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
}
