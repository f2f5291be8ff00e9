package handlers

import (
	"errors"
	"net/http"

	"project-tracker/internal/services"

	"github.com/gin-gonic/gin"
)

type RegisterHandler struct {
	registerService services.RegisterService
}

func NewRegisterHandler(registerService services.RegisterService) *RegisterHandler {
	return &RegisterHandler{registerService: registerService}
}

type RegistrationResponse struct {
	Message  string `json:"message"`
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *RegisterHandler) Registration(c *gin.Context) {
	var req services.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	user, err := h.registerService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUsername) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "registration_failed",
				"details": "This username is already taken",
			})
			return
		}
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegistrationResponse{
		Message:  "Your account has been created successfully.",
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
	})
}
