package services

import (
	"context"
	"errors"
	"strings"

	"project-tracker/internal/models"
	"project-tracker/internal/store"

	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrDuplicateUsername = errors.New("username already exists")

type RegistrationRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

type RegisterService interface {
	RegisterUser(ctx context.Context, req RegistrationRequest) (*models.User, error)
}

type RegisterServiceImpl struct {
	store store.Store
}

func NewRegisterService(st store.Store) *RegisterServiceImpl {
	return &RegisterServiceImpl{store: st}
}

// RegisterUser creates an account with the requested role. Registration is
// the only place a role is assigned; login never changes it.
func (s *RegisterServiceImpl) RegisterUser(ctx context.Context, req RegistrationRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if len(username) < 3 {
		return nil, invalidInput("username must be at least 3 characters long")
	}
	if len(req.Password) < 8 {
		return nil, invalidInput("password must be at least 8 characters long")
	}
	if !models.ValidRole(req.Role) {
		return nil, invalidInput("role must be one of Manager, Editor, Viewer")
	}

	_, err := s.store.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.Must(uuid.NewV4()),
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return &user, nil
}
