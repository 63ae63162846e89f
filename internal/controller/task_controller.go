package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/redaction/internal/dto"
)

// ListTasksHandler godoc
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Success 200 {array} dto.TaskResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tasks [get]
func (ctrl *Controller) ListTasksHandler(c *gin.Context) {
	tasks, err := ctrl.taskSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// ListTasksByLevelHandler godoc
// @Summary List the tasks of a level
// @Tags tasks
// @Produce json
// @Param id path int true "Level ID"
// @Success 200 {array} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 500 {object} dto.ErrorResponse
// @Router /levels/{id}/tasks [get]
func (ctrl *Controller) ListTasksByLevelHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	tasks, err := ctrl.taskSvc.ListByLevel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// ListTasksBySubjectHandler godoc
// @Summary List the tasks of every level of a subject
// @Tags tasks
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {array} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 500 {object} dto.ErrorResponse
// @Router /subjects/{id}/tasks [get]
func (ctrl *Controller) ListTasksBySubjectHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	tasks, err := ctrl.taskSvc.ListBySubject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// ListTasksByExaminationHandler godoc
// @Summary List the tasks of an examination
// @Tags tasks
// @Produce json
// @Param id path int true "Examination ID"
// @Success 200 {array} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 500 {object} dto.ErrorResponse
// @Router /examinations/{id}/tasks [get]
func (ctrl *Controller) ListTasksByExaminationHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	tasks, err := ctrl.taskSvc.ListByExamination(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// CreateTaskHandler godoc
// @Summary Create a task
// @Description Images are sniffed and must be jpeg, bmp or png
// @Tags tasks
// @Accept multipart/form-data
// @Produce json
// @Param level_id formData int true "Level ID"
// @Param title formData string false "Title"
// @Param answer formData string false "Answer"
// @Param text formData string false "Task text"
// @Param solution_text formData string false "Solution text"
// @Param image formData file false "Task image"
// @Param solution_image formData file false "Solution image"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 500 {object} dto.ErrorResponse
// @Router /tasks [post]
func (ctrl *Controller) CreateTaskHandler(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bind(c, &req) {
		return
	}

	task, err := ctrl.taskSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// UpdateTaskHandler godoc
// @Summary Update a task
// @Description A supplied image replaces the stored one, which is then deleted. Also served on POST /tasks/{id}.
// @Tags tasks
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Task ID"
// @Param level_id formData int false "Level ID"
// @Param title formData string false "Title"
// @Param answer formData string false "Answer"
// @Param text formData string false "Task text"
// @Param solution_text formData string false "Solution text"
// @Param image formData file false "Task image"
// @Param solution_image formData file false "Solution image"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Task not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /tasks/{id} [put]
func (ctrl *Controller) UpdateTaskHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if !bind(c, &req) {
		return
	}

	task, err := ctrl.taskSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTaskHandler godoc
// @Summary Delete a task
// @Description Removes the task and its stored images
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Task not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /tasks/{id} [delete]
func (ctrl *Controller) DeleteTaskHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := ctrl.taskSvc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Deleted: deleted})
}
