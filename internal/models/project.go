package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type Project struct {
	ID       uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name     string    `json:"name" gorm:"not null"`
	Category string    `json:"category" gorm:"default:'General'"`
	OwnerID  uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:ProjectID"`
}

// ProjectRole overrides a user's global role for a single project. The
// override replaces the role the policy sees, but ownership checks still
// compare against the project owner, so write actions stay with the owner
// regardless of the granted role. The one grant that opens anything up is
// Viewer, which shares read access on the project; the service layer
// therefore only accepts Viewer grants.
type ProjectRole struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_project_roles_user_project"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_project_roles_user_project"`
	Role      string    `json:"role" gorm:"not null;default:'Viewer'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
