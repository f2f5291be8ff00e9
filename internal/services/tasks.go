package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"project-tracker/internal/cache"
	"project-tracker/internal/models"
	"project-tracker/internal/notify"
	"project-tracker/internal/store"

	"github.com/gofrs/uuid"
)

const deadlineLayout = "2006-01-02"

type CreateTaskInput struct {
	Title    string
	Deadline string
	Priority string
}

// EditTaskInput is a partial update; nil fields keep their current value.
type EditTaskInput struct {
	Title    *string
	Deadline *string
	Priority *string
	Status   *string
}

type TaskService interface {
	CreateTask(ctx context.Context, actor Actor, projectID uuid.UUID, input CreateTaskInput) (models.Task, error)
	EditTask(ctx context.Context, actor Actor, taskID uuid.UUID, input EditTaskInput) (models.Task, error)
	DeleteTask(ctx context.Context, actor Actor, taskID uuid.UUID) error
	GetTask(ctx context.Context, id uuid.UUID) (models.Task, error)
	ListTasks(ctx context.Context, projectID *uuid.UUID) ([]models.Task, error)
}

type TaskServiceImpl struct {
	store      store.Store
	dispatcher notify.Dispatcher
	recipient  string
	cache      *cache.Cache

	// Now supplies "today" to the reminder decision; tests fix it.
	Now func() time.Time
}

func NewTaskService(st store.Store, dispatcher notify.Dispatcher, recipient string, cacheInstance *cache.Cache) *TaskServiceImpl {
	return &TaskServiceImpl{
		store:      st,
		dispatcher: dispatcher,
		recipient:  recipient,
		cache:      cacheInstance,
		Now:        time.Now,
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, actor Actor, projectID uuid.UUID, input CreateTaskInput) (models.Task, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, err
	}

	actor = resolveActor(ctx, s.store, actor, project.ID)
	if decision := Authorize(actor, &project.OwnerID, ActionCreateTask); !decision.Allowed {
		return models.Task{}, forbidden(decision.Reason)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.Task{}, invalidInput("task title is required")
	}
	deadline, err := time.Parse(deadlineLayout, input.Deadline)
	if err != nil {
		return models.Task{}, invalidInput("deadline must be a date in the form %s", deadlineLayout)
	}
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := models.Task{
		ID:        uuid.Must(uuid.NewV4()),
		ProjectID: project.ID,
		Title:     title,
		Deadline:  deadline,
		Priority:  priority,
		Status:    models.StatusPending,
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return models.Task{}, err
	}

	s.invalidateTaskCaches(project.ID)
	s.dispatchReminder(ctx, task, nil, true)
	return task, nil
}

func (s *TaskServiceImpl) EditTask(ctx context.Context, actor Actor, taskID uuid.UUID, input EditTaskInput) (models.Task, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, err
	}
	project, err := s.store.GetProject(ctx, task.ProjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, err
	}

	actor = resolveActor(ctx, s.store, actor, project.ID)
	if decision := Authorize(actor, &project.OwnerID, ActionEditTask); !decision.Allowed {
		return models.Task{}, forbidden(decision.Reason)
	}

	old := task

	fields := store.TaskFields{
		Title:    task.Title,
		Deadline: task.Deadline,
		Priority: task.Priority,
		Status:   task.Status,
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return models.Task{}, invalidInput("task title is required")
		}
		fields.Title = title
	}
	if input.Deadline != nil {
		deadline, err := time.Parse(deadlineLayout, *input.Deadline)
		if err != nil {
			return models.Task{}, invalidInput("deadline must be a date in the form %s", deadlineLayout)
		}
		fields.Deadline = deadline
	}
	if input.Priority != nil {
		fields.Priority = *input.Priority
	}
	if input.Status != nil {
		fields.Status = *input.Status
	}

	if err := s.store.UpdateTask(ctx, taskID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, err
	}

	task.Title = fields.Title
	task.Deadline = fields.Deadline
	task.Priority = fields.Priority
	task.Status = fields.Status

	s.invalidateTaskCaches(project.ID)
	s.dispatchReminder(ctx, task, &old, false)
	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, actor Actor, taskID uuid.UUID) error {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	project, err := s.store.GetProject(ctx, task.ProjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	actor = resolveActor(ctx, s.store, actor, project.ID)
	if decision := Authorize(actor, &project.OwnerID, ActionDeleteTask); !decision.Allowed {
		return forbidden(decision.Reason)
	}

	if err := s.store.DeleteTask(ctx, taskID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.invalidateTaskCaches(project.ID)
	return nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (models.Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, projectID *uuid.UUID) ([]models.Task, error) {
	return s.store.ListTasks(ctx, store.TaskFilter{ProjectID: projectID})
}

// dispatchReminder runs strictly after the store mutation committed. A
// dispatch failure is logged and swallowed; the use case already succeeded.
func (s *TaskServiceImpl) dispatchReminder(ctx context.Context, task models.Task, old *models.Task, isNew bool) {
	if s.dispatcher == nil {
		return
	}

	var oldSnap *TaskSnapshot
	if old != nil {
		snap := snapshotOf(*old)
		oldSnap = &snap
	}

	reminder, ok := DecideReminder(snapshotOf(task), oldSnap, isNew, s.Now())
	if !ok {
		return
	}

	payload := notify.Payload{
		Subject:   reminder.Subject,
		Body:      reminder.Body,
		Recipient: s.recipient,
	}
	if err := s.dispatcher.Send(ctx, payload); err != nil {
		log.Printf("reminder dispatch failed for task %s: %v", task.ID, err)
	}
}

func snapshotOf(task models.Task) TaskSnapshot {
	return TaskSnapshot{
		Title:    task.Title,
		Deadline: task.Deadline,
		Priority: task.Priority,
		Status:   task.Status,
	}
}

func (s *TaskServiceImpl) invalidateTaskCaches(projectID uuid.UUID) {
	if s.cache == nil {
		return
	}
	s.cache.DeletePattern("reports:*")
	s.cache.DeletePattern("projects:*")
}
