package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/redaction/internal/dto"
)

// ListExaminationsHandler godoc
// @Summary List examinations
// @Tags examinations
// @Produce json
// @Success 200 {array} dto.ExaminationResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /examinations [get]
func (ctrl *Controller) ListExaminationsHandler(c *gin.Context) {
	exams, err := ctrl.examinationSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exams)
}

// CreateExaminationHandler godoc
// @Summary Create an examination
// @Tags examinations
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param examination body dto.CreateExaminationRequest true "Examination data"
// @Success 201 {object} dto.ExaminationResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 500 {object} dto.ErrorResponse
// @Router /examinations [post]
func (ctrl *Controller) CreateExaminationHandler(c *gin.Context) {
	var req dto.CreateExaminationRequest
	if !bind(c, &req) {
		return
	}

	exam, err := ctrl.examinationSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exam)
}

// UpdateExaminationHandler godoc
// @Summary Update an examination
// @Tags examinations
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Examination ID"
// @Param examination body dto.UpdateExaminationRequest true "Fields to change"
// @Success 200 {object} dto.ExaminationResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Examination not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /examinations/{id} [put]
func (ctrl *Controller) UpdateExaminationHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateExaminationRequest
	if !bind(c, &req) {
		return
	}

	exam, err := ctrl.examinationSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exam)
}

// DeleteExaminationHandler godoc
// @Summary Delete an examination
// @Description Removes the examination together with its subjects, levels, tasks and task images
// @Tags examinations
// @Produce json
// @Param id path int true "Examination ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 500 {object} dto.ErrorResponse
// @Router /examinations/{id} [delete]
func (ctrl *Controller) DeleteExaminationHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := ctrl.examinationSvc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Deleted: deleted})
}
