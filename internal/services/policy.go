package services

import (
	"project-tracker/internal/models"

	"github.com/gofrs/uuid"
)

// Actor is the identity+role pair performing a use case. It is always passed
// explicitly; nothing in this package reads ambient session state.
type Actor struct {
	ID   uuid.UUID
	Role string
}

type Action string

const (
	ActionViewProjects  Action = "projects:list"
	ActionViewProject   Action = "projects:view"
	ActionCreateProject Action = "projects:create"
	ActionCreateTask    Action = "tasks:create"
	ActionEditTask      Action = "tasks:edit"
	ActionDeleteTask    Action = "tasks:delete"
	ActionViewReports   Action = "reports:view"
)

// Decision is the outcome of an authorization check. Reason is set only when
// Allowed is false.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// EffectiveRole resolves the role the policy evaluates for a project-scoped
// action: a per-project override wins over the actor's global role.
func EffectiveRole(globalRole string, override *models.ProjectRole) string {
	if override != nil && models.ValidRole(override.Role) {
		return override.Role
	}
	return globalRole
}

// Authorize is a pure decision function: no I/O, no clock, no store access.
// ownerID is the owning user of the target project (tasks inherit it) and is
// nil for actions without a concrete resource, such as listing.
//
// Rules, first match wins:
//   - Viewer: read everything, write nothing.
//   - Manager: create projects; everything else only on owned projects.
//   - Editor: create/edit tasks on owned projects; never create projects or
//     delete tasks.
//   - Any other role value: deny everything (fail closed).
func Authorize(actor Actor, ownerID *uuid.UUID, action Action) Decision {
	switch actor.Role {
	case models.RoleViewer:
		switch action {
		case ActionViewProjects, ActionViewProject, ActionViewReports:
			return allow()
		default:
			return deny(ReasonRoleNotPermitted)
		}

	case models.RoleManager:
		switch action {
		case ActionCreateProject, ActionViewProjects, ActionViewReports:
			return allow()
		case ActionViewProject, ActionCreateTask, ActionEditTask, ActionDeleteTask:
			return requireOwner(actor, ownerID)
		default:
			return deny(ReasonRoleNotPermitted)
		}

	case models.RoleEditor:
		switch action {
		case ActionViewProjects, ActionViewReports:
			return allow()
		case ActionViewProject, ActionCreateTask, ActionEditTask:
			return requireOwner(actor, ownerID)
		default:
			return deny(ReasonRoleNotPermitted)
		}

	default:
		return deny(ReasonRoleNotPermitted)
	}
}

func requireOwner(actor Actor, ownerID *uuid.UUID) Decision {
	if ownerID == nil || *ownerID != actor.ID {
		return deny(ReasonNotOwner)
	}
	return allow()
}
