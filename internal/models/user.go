package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	RoleManager = "Manager"
	RoleEditor  = "Editor"
	RoleViewer  = "Viewer"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Username     string    `json:"username" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         string    `json:"role" gorm:"not null;default:'Viewer'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:OwnerID"`
}

// ValidRole reports whether role is one of the three enumerated roles.
// The store does not enforce this; writes go through the service layer.
func ValidRole(role string) bool {
	switch role {
	case RoleManager, RoleEditor, RoleViewer:
		return true
	}
	return false
}

func (u *User) IsViewer() bool {
	return u.Role == RoleViewer
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}
