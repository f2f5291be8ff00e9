package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"

	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

type Task struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" gorm:"not null"`
	Deadline  time.Time `json:"deadline" gorm:"not null;index"`
	Priority  string    `json:"priority" gorm:"not null;default:'Medium'"`
	Status    string    `json:"status" gorm:"not null;default:'Pending'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeadlineDate returns the deadline formatted as a calendar date.
func (t *Task) DeadlineDate() string {
	return t.Deadline.Format("2006-01-02")
}
