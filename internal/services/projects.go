package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"project-tracker/internal/cache"
	"project-tracker/internal/models"
	"project-tracker/internal/store"

	"github.com/gofrs/uuid"
)

type ProjectService interface {
	CreateProject(ctx context.Context, actor Actor, name, category string) (models.Project, error)
	ListProjects(ctx context.Context, actor Actor) ([]models.Project, error)
	GetProject(ctx context.Context, actor Actor, id uuid.UUID) (models.Project, []models.Task, error)
	SetProjectRole(ctx context.Context, actor Actor, userID, projectID uuid.UUID, role string) error
}

type ProjectServiceImpl struct {
	store store.Store
	cache *cache.Cache
}

// NewProjectService builds the project use cases. cacheInstance may be nil;
// caching is purely an optimization on the list path.
func NewProjectService(st store.Store, cacheInstance *cache.Cache) *ProjectServiceImpl {
	return &ProjectServiceImpl{store: st, cache: cacheInstance}
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, actor Actor, name, category string) (models.Project, error) {
	if decision := Authorize(actor, nil, ActionCreateProject); !decision.Allowed {
		return models.Project{}, forbidden(decision.Reason)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Project{}, invalidInput("project name is required")
	}
	if strings.TrimSpace(category) == "" {
		category = "General"
	}

	project := models.Project{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     name,
		Category: category,
		OwnerID:  actor.ID,
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		return models.Project{}, err
	}

	s.invalidateProjectCaches()
	return project, nil
}

func (s *ProjectServiceImpl) ListProjects(ctx context.Context, actor Actor) ([]models.Project, error) {
	if decision := Authorize(actor, nil, ActionViewProjects); !decision.Allowed {
		return nil, forbidden(decision.Reason)
	}

	filter := store.ProjectFilter{}
	cacheKey := "projects:all"
	if actor.Role != models.RoleViewer {
		// Managers and Editors only see their own projects.
		ownerID := actor.ID
		filter.OwnerID = &ownerID
		cacheKey = "projects:owner:" + actor.ID.String()
	}

	if s.cache != nil {
		var cached []models.Project
		if err := s.cache.Get(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	projects, err := s.store.ListProjects(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, projects, 10*time.Minute)
	}
	return projects, nil
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, actor Actor, id uuid.UUID) (models.Project, []models.Task, error) {
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Project{}, nil, ErrNotFound
		}
		return models.Project{}, nil, err
	}

	actor = resolveActor(ctx, s.store, actor, project.ID)
	if decision := Authorize(actor, &project.OwnerID, ActionViewProject); !decision.Allowed {
		return models.Project{}, nil, forbidden(decision.Reason)
	}

	tasks, err := s.store.ListTasks(ctx, store.TaskFilter{ProjectID: &project.ID})
	if err != nil {
		return models.Project{}, nil, err
	}
	return project, tasks, nil
}

// SetProjectRole grants a per-project role override. Only the project owner
// with the Manager role may grant one, and only Viewer may be granted:
// write actions are gated on ownership, so an Editor or Manager grant to a
// non-owner would never take effect.
func (s *ProjectServiceImpl) SetProjectRole(ctx context.Context, actor Actor, userID, projectID uuid.UUID, role string) error {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if actor.Role != models.RoleManager {
		return forbidden(ReasonRoleNotPermitted)
	}
	if project.OwnerID != actor.ID {
		return forbidden(ReasonNotOwner)
	}

	if role != models.RoleViewer {
		return invalidInput("only the Viewer role can be granted on a project")
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.store.SetProjectRole(ctx, models.ProjectRole{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    userID,
		ProjectID: projectID,
		Role:      role,
	})
}

func (s *ProjectServiceImpl) invalidateProjectCaches() {
	if s.cache == nil {
		return
	}
	s.cache.DeletePattern("projects:*")
	s.cache.DeletePattern("reports:*")
}

// resolveActor swaps in the actor's per-project role override when one
// exists, so the pure policy sees the effective role.
func resolveActor(ctx context.Context, st store.Store, actor Actor, projectID uuid.UUID) Actor {
	override, err := st.GetProjectRole(ctx, actor.ID, projectID)
	if err != nil {
		return actor
	}
	actor.Role = EffectiveRole(actor.Role, &override)
	return actor
}
