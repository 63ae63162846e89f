package dto

import (
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/lshigami/redaction/internal/apperrors"
)

// Numeric inputs are bound as Numeric so that JSON values and form values all
// arrive as text; the "numeric" rule rejects anything else with a field-level error.

type CreateExaminationRequest struct {
	Title string `json:"title" form:"title" binding:"required"`
}

type UpdateExaminationRequest struct {
	Title *string `json:"title" form:"title" binding:"omitempty,min=1"`
}

type CreateSubjectRequest struct {
	ExaminationID Numeric `json:"examination_id" form:"examination_id" binding:"required,numeric"`
	Title         string  `json:"title" form:"title" binding:"required"`
}

type UpdateSubjectRequest struct {
	ExaminationID *Numeric `json:"examination_id" form:"examination_id" binding:"omitempty,numeric"`
	Title         *string  `json:"title" form:"title" binding:"omitempty,min=1"`
}

type CreateLevelRequest struct {
	SubjectID Numeric `json:"subject_id" form:"subject_id" binding:"required,numeric"`
	Number    Numeric `json:"number" form:"number" binding:"required,numeric"`
	Title     string  `json:"title" form:"title" binding:"required"`
}

type UpdateLevelRequest struct {
	SubjectID *Numeric `json:"subject_id" form:"subject_id" binding:"omitempty,numeric"`
	Number    *Numeric `json:"number" form:"number" binding:"omitempty,numeric"`
	Title     *string  `json:"title" form:"title" binding:"omitempty,min=1"`
}

// CreateTaskRequest is bound from multipart/form-data.
type CreateTaskRequest struct {
	LevelID       Numeric               `json:"level_id" form:"level_id" binding:"required,numeric"`
	Title         string                `json:"title" form:"title"`
	Answer        string                `json:"answer" form:"answer"`
	Text          string                `json:"text" form:"text"`
	SolutionText  string                `json:"solution_text" form:"solution_text"`
	Image         *multipart.FileHeader `json:"-" form:"image" swaggerignore:"true"`
	SolutionImage *multipart.FileHeader `json:"-" form:"solution_image" swaggerignore:"true"`
}

// UpdateTaskRequest is bound from multipart/form-data. Absent fields are left unchanged.
type UpdateTaskRequest struct {
	LevelID       *Numeric              `json:"level_id" form:"level_id" binding:"omitempty,numeric"`
	Title         *string               `json:"title" form:"title"`
	Answer        *string               `json:"answer" form:"answer"`
	Text          *string               `json:"text" form:"text"`
	SolutionText  *string               `json:"solution_text" form:"solution_text"`
	Image         *multipart.FileHeader `json:"-" form:"image" swaggerignore:"true"`
	SolutionImage *multipart.FileHeader `json:"-" form:"solution_image" swaggerignore:"true"`
}

// ParseID converts a bound numeric field to a positive ID, recording a
// message on verr when it is not one.
func ParseID(verr *apperrors.ValidationError, field string, n Numeric) uint {
	id, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil || id == 0 {
		verr.Add(field, fmt.Sprintf("The %s must be a positive integer.", apperrors.Attribute(field)))
		return 0
	}
	return uint(id)
}

// ParseInt converts a bound numeric field to an int, recording a message on
// verr when it is not an integer.
func ParseInt(verr *apperrors.ValidationError, field string, n Numeric) int {
	v, err := strconv.Atoi(n.String())
	if err != nil {
		verr.Add(field, fmt.Sprintf("The %s must be an integer.", apperrors.Attribute(field)))
		return 0
	}
	return v
}
