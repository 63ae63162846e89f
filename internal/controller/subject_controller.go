package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/redaction/internal/dto"
)

// ListSubjectsHandler godoc
// @Summary List subjects
// @Tags subjects
// @Produce json
// @Success 200 {array} dto.SubjectResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /subjects [get]
func (ctrl *Controller) ListSubjectsHandler(c *gin.Context) {
	subjects, err := ctrl.subjectSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subjects)
}

// ListSubjectsByExaminationHandler godoc
// @Summary List the subjects of an examination
// @Tags subjects
// @Produce json
// @Param id path int true "Examination ID"
// @Success 200 {array} dto.SubjectResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 500 {object} dto.ErrorResponse
// @Router /examinations/{id}/subjects [get]
func (ctrl *Controller) ListSubjectsByExaminationHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	subjects, err := ctrl.subjectSvc.ListByExamination(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subjects)
}

// CreateSubjectHandler godoc
// @Summary Create a subject
// @Tags subjects
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param subject body dto.CreateSubjectRequest true "Subject data"
// @Success 201 {object} dto.SubjectResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 500 {object} dto.ErrorResponse
// @Router /subjects [post]
func (ctrl *Controller) CreateSubjectHandler(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if !bind(c, &req) {
		return
	}

	subject, err := ctrl.subjectSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subject)
}

// UpdateSubjectHandler godoc
// @Summary Update a subject
// @Tags subjects
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Subject ID"
// @Param subject body dto.UpdateSubjectRequest true "Fields to change"
// @Success 200 {object} dto.SubjectResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /subjects/{id} [put]
func (ctrl *Controller) UpdateSubjectHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateSubjectRequest
	if !bind(c, &req) {
		return
	}

	subject, err := ctrl.subjectSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subject)
}

// DeleteSubjectHandler godoc
// @Summary Delete a subject
// @Description Removes the subject together with its levels, tasks and task images
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 500 {object} dto.ErrorResponse
// @Router /subjects/{id} [delete]
func (ctrl *Controller) DeleteSubjectHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := ctrl.subjectSvc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Deleted: deleted})
}
