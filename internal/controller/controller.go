package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/redaction/internal/apperrors"
	"github.com/lshigami/redaction/internal/dto"
	"github.com/lshigami/redaction/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Controller struct {
	examinationSvc service.ExaminationService
	subjectSvc     service.SubjectService
	levelSvc       service.LevelService
	taskSvc        service.TaskService
	db             *gorm.DB
}

func NewController(
	examinationSvc service.ExaminationService,
	subjectSvc service.SubjectService,
	levelSvc service.LevelService,
	taskSvc service.TaskService,
	db *gorm.DB,
) *Controller {
	registerValidatorTagNames()
	return &Controller{
		examinationSvc: examinationSvc,
		subjectSvc:     subjectSvc,
		levelSvc:       levelSvc,
		taskSvc:        taskSvc,
		db:             db,
	}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", ctrl.HealthHandler)

	apiV1 := router.Group("/api/v1")
	{
		examinations := apiV1.Group("/examinations")
		examinations.GET("", ctrl.ListExaminationsHandler)
		examinations.POST("", ctrl.CreateExaminationHandler)
		examinations.PUT("/:id", ctrl.UpdateExaminationHandler)
		examinations.DELETE("/:id", ctrl.DeleteExaminationHandler)
		examinations.GET("/:id/subjects", ctrl.ListSubjectsByExaminationHandler)
		examinations.GET("/:id/levels", ctrl.ListLevelsByExaminationHandler)
		examinations.GET("/:id/tasks", ctrl.ListTasksByExaminationHandler)

		subjects := apiV1.Group("/subjects")
		subjects.GET("", ctrl.ListSubjectsHandler)
		subjects.POST("", ctrl.CreateSubjectHandler)
		subjects.PUT("/:id", ctrl.UpdateSubjectHandler)
		subjects.DELETE("/:id", ctrl.DeleteSubjectHandler)
		subjects.GET("/:id/levels", ctrl.ListLevelsBySubjectHandler)
		subjects.GET("/:id/tasks", ctrl.ListTasksBySubjectHandler)

		levels := apiV1.Group("/levels")
		levels.GET("", ctrl.ListLevelsHandler)
		levels.POST("", ctrl.CreateLevelHandler)
		levels.PUT("/:id", ctrl.UpdateLevelHandler)
		levels.DELETE("/:id", ctrl.DeleteLevelHandler)
		levels.GET("/:id/tasks", ctrl.ListTasksByLevelHandler)

		tasks := apiV1.Group("/tasks")
		tasks.GET("", ctrl.ListTasksHandler)
		tasks.POST("", ctrl.CreateTaskHandler)
		tasks.PUT("/:id", ctrl.UpdateTaskHandler)
		tasks.POST("/:id", ctrl.UpdateTaskHandler) // multipart clients that cannot send PUT
		tasks.DELETE("/:id", ctrl.DeleteTaskHandler)
	}
}

// HealthHandler reports whether the database answers a ping. It is mounted
// outside /api/v1 and left out of the API docs.
func (ctrl *Controller) HealthHandler(c *gin.Context) {
	sqlDB, err := ctrl.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		log.Error().Err(err).Msg("Health check failed")
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: "Database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// pathID parses the :id route parameter, answering 400 when it is not a positive integer.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, apperrors.NewValidationError("id", "The id must be a positive integer."))
		return 0, false
	}
	return uint(id), true
}
