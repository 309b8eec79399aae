package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadsys/registra-backend/internal/model"
	"github.com/acadsys/registra-backend/internal/repository"
	"github.com/acadsys/registra-backend/internal/response"
	"github.com/acadsys/registra-backend/internal/service"
	"github.com/acadsys/registra-backend/internal/validator"
)

// EnrollmentHandler handles the enrollment endpoints.
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// Enroll godoc
// POST /api/v1/enrollments
// Enrolls a student into a course section and creates the grade row with it.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req model.EnrollRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), req.StudentID, req.CourseID)
	if err != nil {
		var sectionConflict *repository.SectionConflictError
		switch {
		case errors.Is(err, repository.ErrAlreadyEnrolled):
			response.Fail(c, http.StatusBadRequest, response.ErrAlreadyEnrolled)
		case errors.As(err, &sectionConflict):
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrSectionConflict, sectionConflict.Error())
		case errors.Is(err, repository.ErrStudentNotFound), errors.Is(err, repository.ErrCourseNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}
