package services

import (
	"context"
	"errors"
	"time"

	"project-tracker/internal/models"
	"project-tracker/internal/store"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	LoginUser(ctx context.Context, username, password string) (*models.User, error)
	GenerateToken(ctx context.Context, user *models.User) (string, string, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, string, int64, error)
	RevokeToken(ctx context.Context, refreshToken string) error
}

type AuthServiceImpl struct {
	store           store.Store
	jwtSecret       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewAuthService(st store.Store, jwtSecret string, accessTokenTTL, refreshTokenTTL time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{
		store:           st,
		jwtSecret:       []byte(jwtSecret),
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// LoginUser verifies credentials. It never writes the user row; in
// particular the stored role is not touched at login.
func (s *AuthServiceImpl) LoginUser(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *AuthServiceImpl) GenerateToken(ctx context.Context, user *models.User) (string, string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", "", err
	}

	refreshToken := uuid.Must(uuid.NewV4()).String() + uuid.Must(uuid.NewV4()).String()
	token := models.Token{
		ID:           uuid.Must(uuid.NewV4()),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.refreshTokenTTL),
	}
	if err := s.store.CreateToken(ctx, token); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (string, string, int64, error) {
	token, err := s.store.GetToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", "", 0, ErrInvalidCredentials
		}
		return "", "", 0, err
	}

	user, err := s.store.GetUser(ctx, token.UserID)
	if err != nil {
		return "", "", 0, err
	}

	accessToken, newRefreshToken, err := s.GenerateToken(ctx, &user)
	if err != nil {
		return "", "", 0, err
	}

	// Single-use refresh tokens: the old one is gone once rotated.
	if err := s.store.DeleteToken(ctx, token.ID); err != nil {
		return "", "", 0, err
	}

	return accessToken, newRefreshToken, int64(s.accessTokenTTL.Seconds()), nil
}

// RevokeToken deletes the refresh token at logout. Revoking a token that is
// already gone is not an error; logout is idempotent.
func (s *AuthServiceImpl) RevokeToken(ctx context.Context, refreshToken string) error {
	token, err := s.store.GetToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.store.DeleteToken(ctx, token.ID)
}
