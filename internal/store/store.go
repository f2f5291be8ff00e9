package store

import (
	"context"
	"errors"
	"time"

	"project-tracker/internal/models"

	"github.com/gofrs/uuid"
)

// ErrNotFound is returned by every lookup whose id does not resolve.
var ErrNotFound = errors.New("record not found")

// ProjectFilter narrows ListProjects. A nil OwnerID means all projects.
type ProjectFilter struct {
	OwnerID *uuid.UUID
}

// TaskFilter narrows ListTasks. Either ProjectID is set, or a date range is
// set with an optional project id scope (nil ProjectIDs means all projects).
type TaskFilter struct {
	ProjectID  *uuid.UUID
	From       *time.Time
	To         *time.Time
	ProjectIDs []uuid.UUID
}

// TaskFields carries a full field set for an atomic task update. UpdateTask
// persists all of them in one transaction so readers never observe a
// half-applied edit.
type TaskFields struct {
	Title    string
	Deadline time.Time
	Priority string
	Status   string
}

// Store is the persistence boundary for the core services. Implementations
// return ErrNotFound for missing ids and never partial results.
type Store interface {
	GetUser(ctx context.Context, id uuid.UUID) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) error

	GetProject(ctx context.Context, id uuid.UUID) (models.Project, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]models.Project, error)
	CreateProject(ctx context.Context, project models.Project) error

	GetTask(ctx context.Context, id uuid.UUID) (models.Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error)
	CreateTask(ctx context.Context, task models.Task) error
	UpdateTask(ctx context.Context, id uuid.UUID, fields TaskFields) error
	DeleteTask(ctx context.Context, id uuid.UUID) error

	GetProjectRole(ctx context.Context, userID, projectID uuid.UUID) (models.ProjectRole, error)
	SetProjectRole(ctx context.Context, role models.ProjectRole) error

	CreateToken(ctx context.Context, token models.Token) error
	GetToken(ctx context.Context, refreshToken string) (models.Token, error)
	DeleteToken(ctx context.Context, id uuid.UUID) error
}
