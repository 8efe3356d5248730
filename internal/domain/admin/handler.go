package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moviebox/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	admin, token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"admin": admin,
	})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	adminID := AdminID(c)
	if adminID == 0 {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), adminID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingPassword), errors.Is(err, ErrPasswordTooShort), errors.Is(err, ErrWrongPassword):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrAdminNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// Me returns the authenticated admin, used by the panel to restore a
// session after reload.
func (h *Handler) Me(c *gin.Context) {
	adminID := AdminID(c)
	if adminID == 0 {
		return
	}

	admin, err := h.service.GetByID(c.Request.Context(), adminID)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"admin": admin})
}
