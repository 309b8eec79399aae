package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acadsys/registra-backend/internal/model"
	"github.com/acadsys/registra-backend/internal/repository"
	"github.com/acadsys/registra-backend/internal/response"
	"github.com/acadsys/registra-backend/internal/service"
	"github.com/acadsys/registra-backend/internal/validator"
)

// GradeHandler handles the grade book endpoints.
type GradeHandler struct {
	gradeService *service.GradeService
}

// NewGradeHandler creates a new GradeHandler.
func NewGradeHandler(gradeService *service.GradeService) *GradeHandler {
	return &GradeHandler{gradeService: gradeService}
}

// Update godoc
// PUT /api/v1/grades/:student_id/:course_id
// Applies the provided component scores to the enrollment's grade row.
// Omitted components are left unchanged.
func (h *GradeHandler) Update(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("student_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	courseID, err := strconv.Atoi(c.Param("course_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.GradeComponents
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	grade, err := h.gradeService.SetGrades(c.Request.Context(), studentID, courseID, req)
	if err != nil {
		var invalid *service.InvalidGradeError
		switch {
		case errors.As(err, &invalid):
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidGrade, invalid.Error())
		case errors.Is(err, repository.ErrEnrollmentNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"grade":         grade,
		"overall_grade": model.ComputeOverall(grade.Components()),
	})
}
