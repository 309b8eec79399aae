package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acadsys/registra-backend/internal/repository"
	"github.com/acadsys/registra-backend/internal/response"
	"github.com/acadsys/registra-backend/internal/service"
)

type MajorHandler struct {
	majorService *service.MajorService
}

func NewMajorHandler(majorService *service.MajorService) *MajorHandler {
	return &MajorHandler{majorService: majorService}
}

// List godoc
// GET /api/v1/majors
func (h *MajorHandler) List(c *gin.Context) {
	majors, err := h.majorService.GetAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"majors": majors})
}

// GetByID godoc
// GET /api/v1/majors/:id
func (h *MajorHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	major, err := h.majorService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMajorNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"major": major})
}
