package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is a site account, created on first Steam login.
type User struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SteamID     string         `json:"steamId" gorm:"uniqueIndex;not null"`
	PersonaName string         `json:"personaName" gorm:"not null"`
	AvatarURL   string         `json:"avatarUrl"`
	ProfileURL  string         `json:"profileUrl"`
	Profile     datatypes.JSON `json:"-" gorm:"type:jsonb"` // raw Steam player summary
	LastLoginAt time.Time      `json:"lastLoginAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type UserSession struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	RefreshTokenHash string    `json:"-" gorm:"not null"`
	ExpiresAt        time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
}
