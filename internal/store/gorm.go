package store

import (
	"context"
	"errors"
	"time"

	"project-tracker/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return user, translate(err)
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return user, translate(err)
}

func (s *GormStore) CreateUser(ctx context.Context, user models.User) error {
	return s.db.WithContext(ctx).Create(&user).Error
}

func (s *GormStore) GetProject(ctx context.Context, id uuid.UUID) (models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	return project, translate(err)
}

func (s *GormStore) ListProjects(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	query := s.db.WithContext(ctx).Order("created_at")
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	var projects []models.Project
	err := query.Find(&projects).Error
	return projects, err
}

func (s *GormStore) CreateProject(ctx context.Context, project models.Project) error {
	return s.db.WithContext(ctx).Create(&project).Error
}

func (s *GormStore) GetTask(ctx context.Context, id uuid.UUID) (models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	return task, translate(err)
}

func (s *GormStore) ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := s.db.WithContext(ctx).Order("deadline")
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.From != nil && filter.To != nil {
		query = query.Where("deadline BETWEEN ? AND ?", *filter.From, *filter.To)
	}
	if filter.ProjectIDs != nil {
		query = query.Where("project_id IN ?", filter.ProjectIDs)
	}

	var tasks []models.Task
	err := query.Find(&tasks).Error
	return tasks, err
}

func (s *GormStore) CreateTask(ctx context.Context, task models.Task) error {
	return s.db.WithContext(ctx).Create(&task).Error
}

// UpdateTask writes every task field in a single transaction. All changes
// become visible together or not at all.
func (s *GormStore) UpdateTask(ctx context.Context, id uuid.UUID, fields TaskFields) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Task{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"title":      fields.Title,
				"deadline":   fields.Deadline,
				"priority":   fields.Priority,
				"status":     fields.Status,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *GormStore) DeleteTask(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) GetProjectRole(ctx context.Context, userID, projectID uuid.UUID) (models.ProjectRole, error) {
	var role models.ProjectRole
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&role).Error
	return role, translate(err)
}

func (s *GormStore) SetProjectRole(ctx context.Context, role models.ProjectRole) error {
	existing, err := s.GetProjectRole(ctx, role.UserID, role.ProjectID)
	if err == nil {
		return s.db.WithContext(ctx).Model(&models.ProjectRole{}).
			Where("id = ?", existing.ID).
			Update("role", role.Role).Error
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.db.WithContext(ctx).Create(&role).Error
}

func (s *GormStore) CreateToken(ctx context.Context, token models.Token) error {
	return s.db.WithContext(ctx).Create(&token).Error
}

func (s *GormStore) GetToken(ctx context.Context, refreshToken string) (models.Token, error) {
	var token models.Token
	err := s.db.WithContext(ctx).
		Where("refresh_token = ? AND expires_at > ?", refreshToken, time.Now()).
		First(&token).Error
	return token, translate(err)
}

func (s *GormStore) DeleteToken(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Token{}).Error
}
