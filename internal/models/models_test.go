package models_test

import (
	"testing"
	"time"

	"project-tracker/internal/models"

	"github.com/gofrs/uuid"
)

func TestValidRole(t *testing.T) {
	for _, role := range []string{models.RoleManager, models.RoleEditor, models.RoleViewer} {
		if !models.ValidRole(role) {
			t.Errorf("Expected role '%s' to be valid", role)
		}
	}

	for _, role := range []string{"", "Admin", "manager", "viewer "} {
		if models.ValidRole(role) {
			t.Errorf("Expected role '%s' to be invalid", role)
		}
	}
}

func TestUser_RoleHelpers(t *testing.T) {
	user := models.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: "alice",
		Role:     models.RoleManager,
	}

	if !user.IsManager() {
		t.Errorf("Expected IsManager to be true for role '%s'", user.Role)
	}
	if user.IsViewer() {
		t.Errorf("Expected IsViewer to be false for role '%s'", user.Role)
	}
}

func TestTask_DeadlineDate(t *testing.T) {
	task := models.Task{
		ID:        uuid.Must(uuid.NewV4()),
		ProjectID: uuid.Must(uuid.NewV4()),
		Title:     "Ship release notes",
		Deadline:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Priority:  models.PriorityMedium,
		Status:    models.StatusPending,
	}

	if task.DeadlineDate() != "2024-01-10" {
		t.Errorf("Expected deadline date '2024-01-10', got '%s'", task.DeadlineDate())
	}
}
