package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadsys/registra-backend/internal/middleware"
	"github.com/acadsys/registra-backend/internal/model"
	"github.com/acadsys/registra-backend/internal/repository"
	"github.com/acadsys/registra-backend/internal/response"
	"github.com/acadsys/registra-backend/internal/service"
	"github.com/acadsys/registra-backend/internal/validator"
)

// AuthHandler handles instructor authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// POST /api/v1/auth/instructor/register
// Creates a new instructor account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterInstructorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	instructor, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"instructor": instructor})
}

// Login godoc
// POST /api/v1/auth/instructor/login
// Verifies credentials and returns a signed token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.InstructorLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, instructor, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, model.InstructorLoginResponse{
		Token:      token,
		Instructor: *instructor,
	})
}

// Me godoc
// GET /api/v1/auth/instructor/me
// Returns the authenticated instructor's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	instructor, err := h.authService.GetInstructor(c.Request.Context(), claims.InstructorID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"instructor": instructor})
}

// Logout godoc
// POST /api/v1/auth/instructor/logout
// Invalidates the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.InstructorID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "logged out successfully"})
}
