package handlers

import (
	"net/http"

	"project-tracker/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type CreateTaskRequest struct {
	Title    string `json:"title" binding:"required"`
	Deadline string `json:"deadline" binding:"required"`
	Priority string `json:"priority"`
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	projectID := uuid.FromStringOrNil(c.Param("id"))
	task, err := h.taskService.CreateTask(c.Request.Context(), actor, projectID, services.CreateTaskInput{
		Title:    req.Title,
		Deadline: req.Deadline,
		Priority: req.Priority,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

type EditTaskRequest struct {
	Title    *string `json:"title"`
	Deadline *string `json:"deadline"`
	Priority *string `json:"priority"`
	Status   *string `json:"status"`
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req EditTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	id := uuid.FromStringOrNil(c.Param("id"))
	task, err := h.taskService.EditTask(c.Request.Context(), actor, id, services.EditTaskInput{
		Title:    req.Title,
		Deadline: req.Deadline,
		Priority: req.Priority,
		Status:   req.Status,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"task":   task,
	})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id := uuid.FromStringOrNil(c.Param("id"))
	if err := h.taskService.DeleteTask(c.Request.Context(), actor, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	id := uuid.FromStringOrNil(c.Param("id"))
	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	var projectID *uuid.UUID
	if raw := c.Query("project_id"); raw != "" {
		id, err := uuid.FromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_request",
				"details": "project_id must be a UUID",
			})
			return
		}
		projectID = &id
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), projectID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}
