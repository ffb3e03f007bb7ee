package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/dom/deadlock-hub/internal/config"
	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/dom/deadlock-hub/internal/repository"
	"github.com/dom/deadlock-hub/internal/steam"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const steamCallbackPath = "/api/v1/auth/steam/callback"

var (
	ErrLoginFailed  = errors.New("steam login failed")
	ErrUserNotFound = errors.New("user not found")
)

type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	steamClient *steam.Client
	openID      *steam.OpenID
	cfg         *config.Config
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	steamClient *steam.Client,
	openID *steam.OpenID,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		steamClient: steamClient,
		openID:      openID,
		cfg:         cfg,
	}
}

type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// LoginURL is the Steam sign-in page the browser is redirected to.
func (s *AuthService) LoginURL() string {
	return s.openID.AuthURL(s.callbackURL())
}

func (s *AuthService) callbackURL() string {
	return s.cfg.PublicURL + steamCallbackPath
}

// CompleteLogin verifies the OpenID callback and signs the player in,
// creating the account on first login.
func (s *AuthService) CompleteLogin(ctx context.Context, params url.Values) (*AuthResult, error) {
	steamID, err := s.openID.Verify(ctx, params, s.callbackURL())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	var summary *steam.PlayerSummary
	if s.steamClient.Configured() {
		summary, err = s.steamClient.PlayerSummary(ctx, steamID)
		if err != nil {
			// the account still works, it just shows the bare steam id
			log.Printf("WARN [auth.CompleteLogin] steamID=%s: summary unavailable: %v", steamID, err)
			summary = nil
		}
	}

	return s.LoginWithSteamID(ctx, steamID, summary)
}

// LoginWithSteamID upserts the user for an already verified steam id and
// issues tokens.
func (s *AuthService) LoginWithSteamID(ctx context.Context, steamID string, summary *steam.PlayerSummary) (*AuthResult, error) {
	if !steam.ValidSteamID64(steamID) {
		return nil, domain.ErrInvalidSteamID
	}

	now := time.Now()
	user, err := s.userRepo.GetBySteamID(ctx, steamID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &domain.User{
			ID:          uuid.New(),
			SteamID:     steamID,
			PersonaName: steamID,
			CreatedAt:   now,
		}
		applySummary(user, summary)
		user.LastLoginAt = now
		user.UpdatedAt = now
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		applySummary(user, summary)
		user.LastLoginAt = now
		user.UpdatedAt = now
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return s.generateTokens(ctx, user)
}

func applySummary(user *domain.User, summary *steam.PlayerSummary) {
	if summary == nil {
		return
	}
	if summary.PersonaName != "" {
		user.PersonaName = summary.PersonaName
	}
	user.AvatarURL = summary.AvatarFull
	user.ProfileURL = summary.ProfileURL
	if raw, err := json.Marshal(summary); err == nil {
		user.Profile = raw
	}
}

func (s *AuthService) generateTokens(ctx context.Context, user *domain.User) (*AuthResult, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken := uuid.New().String()
	hashedRefresh, err := bcrypt.GenerateFromPassword([]byte(refreshToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// One live session per user
	_ = s.sessionRepo.DeleteByUserID(ctx, user.ID)

	session := &domain.UserSession{
		ID:               uuid.New(),
		UserID:           user.ID,
		RefreshTokenHash: string(hashedRefresh),
		ExpiresAt:        time.Now().Add(30 * 24 * time.Hour),
		CreatedAt:        time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) generateAccessToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.ID.String(),
		"steamid": user.SteamID,
		"name":    user.PersonaName,
		"exp":     time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return &claims, nil
	}

	return nil, errors.New("invalid token")
}

// UserIDFromToken validates the token and extracts the user id.
func (s *AuthService) UserIDFromToken(tokenString string) (uuid.UUID, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	sub, ok := (*claims)["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing 'sub' claim")
	}
	return uuid.Parse(sub)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// Logout ends every session of the user. Access tokens already issued stay
// valid until they expire.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.sessionRepo.DeleteByUserID(ctx, userID)
}
