package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/redaction/internal/dto"
)

// ListLevelsHandler godoc
// @Summary List levels
// @Tags levels
// @Produce json
// @Success 200 {array} dto.LevelResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /levels [get]
func (ctrl *Controller) ListLevelsHandler(c *gin.Context) {
	levels, err := ctrl.levelSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, levels)
}

// ListLevelsBySubjectHandler godoc
// @Summary List the levels of a subject
// @Tags levels
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {array} dto.LevelResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 500 {object} dto.ErrorResponse
// @Router /subjects/{id}/levels [get]
func (ctrl *Controller) ListLevelsBySubjectHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	levels, err := ctrl.levelSvc.ListBySubject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, levels)
}

// ListLevelsByExaminationHandler godoc
// @Summary List the levels of every subject of an examination
// @Tags levels
// @Produce json
// @Param id path int true "Examination ID"
// @Success 200 {array} dto.LevelResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 500 {object} dto.ErrorResponse
// @Router /examinations/{id}/levels [get]
func (ctrl *Controller) ListLevelsByExaminationHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	levels, err := ctrl.levelSvc.ListByExamination(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, levels)
}

// CreateLevelHandler godoc
// @Summary Create a level
// @Description The number must be unique within the subject
// @Tags levels
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param level body dto.CreateLevelRequest true "Level data"
// @Success 201 {object} dto.LevelResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 500 {object} dto.ErrorResponse
// @Router /levels [post]
func (ctrl *Controller) CreateLevelHandler(c *gin.Context) {
	var req dto.CreateLevelRequest
	if !bind(c, &req) {
		return
	}

	level, err := ctrl.levelSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, level)
}

// UpdateLevelHandler godoc
// @Summary Update a level
// @Tags levels
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Level ID"
// @Param level body dto.UpdateLevelRequest true "Fields to change"
// @Success 200 {object} dto.LevelResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Level not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /levels/{id} [put]
func (ctrl *Controller) UpdateLevelHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateLevelRequest
	if !bind(c, &req) {
		return
	}

	level, err := ctrl.levelSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, level)
}

// DeleteLevelHandler godoc
// @Summary Delete a level
// @Description Removes the level together with its tasks and task images
// @Tags levels
// @Produce json
// @Param id path int true "Level ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 500 {object} dto.ErrorResponse
// @Router /levels/{id} [delete]
func (ctrl *Controller) DeleteLevelHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := ctrl.levelSvc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Deleted: deleted})
}
