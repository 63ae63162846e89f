package service

import (
	"context"
	"mime/multipart"

	"github.com/lshigami/redaction/internal/apperrors"
	"github.com/lshigami/redaction/internal/dto"
	"github.com/lshigami/redaction/internal/model"
	"github.com/lshigami/redaction/internal/repository"
	"github.com/rs/zerolog/log"
)

type TaskService interface {
	List(ctx context.Context) ([]dto.TaskResponse, error)
	ListByLevel(ctx context.Context, levelID uint) ([]dto.TaskResponse, error)
	ListBySubject(ctx context.Context, subjectID uint) ([]dto.TaskResponse, error)
	ListByExamination(ctx context.Context, examinationID uint) ([]dto.TaskResponse, error)
	Create(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	// Delete removes the task and its stored images. A missing task is a NotFoundError.
	Delete(ctx context.Context, id uint) (int64, error)
}

type taskService struct {
	taskRepo  repository.TaskRepository
	levelRepo repository.LevelRepository
	images    *ImageStore
}

func NewTaskService(taskRepo repository.TaskRepository, levelRepo repository.LevelRepository, images *ImageStore) TaskService {
	return &taskService{taskRepo: taskRepo, levelRepo: levelRepo, images: images}
}

// pendingImage is a validated upload waiting to be stored in column.
type pendingImage struct {
	column      string
	file        *multipart.FileHeader
	contentType string
}

func (s *taskService) List(ctx context.Context) ([]dto.TaskResponse, error) {
	tasks, err := s.taskRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tasks")
		return nil, err
	}
	return toResponses[dto.TaskResponse](tasks)
}

func (s *taskService) ListByLevel(ctx context.Context, levelID uint) ([]dto.TaskResponse, error) {
	tasks, err := s.taskRepo.FindByLevelID(ctx, levelID)
	if err != nil {
		log.Error().Err(err).Uint("levelID", levelID).Msg("Failed to list tasks of level")
		return nil, err
	}
	return toResponses[dto.TaskResponse](tasks)
}

func (s *taskService) ListBySubject(ctx context.Context, subjectID uint) ([]dto.TaskResponse, error) {
	tasks, err := s.taskRepo.FindBySubjectID(ctx, subjectID)
	if err != nil {
		log.Error().Err(err).Uint("subjectID", subjectID).Msg("Failed to list tasks of subject")
		return nil, err
	}
	return toResponses[dto.TaskResponse](tasks)
}

func (s *taskService) ListByExamination(ctx context.Context, examinationID uint) ([]dto.TaskResponse, error) {
	tasks, err := s.taskRepo.FindByExaminationID(ctx, examinationID)
	if err != nil {
		log.Error().Err(err).Uint("examinationID", examinationID).Msg("Failed to list tasks of examination")
		return nil, err
	}
	return toResponses[dto.TaskResponse](tasks)
}

func (s *taskService) Create(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	verr := &apperrors.ValidationError{}
	levelID := dto.ParseID(verr, "level_id", req.LevelID)
	if levelID != 0 {
		if err := s.checkLevel(ctx, verr, levelID); err != nil {
			return nil, err
		}
	}
	pending, err := s.validateImages(verr, req.Image, req.SolutionImage)
	if err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	task := model.Task{
		LevelID:      levelID,
		Title:        req.Title,
		Answer:       req.Answer,
		Text:         req.Text,
		SolutionText: req.SolutionText,
	}

	var written []string
	for _, p := range pending {
		name, err := s.images.Store(ctx, p.file, p.contentType)
		if err != nil {
			s.images.RemoveAll(ctx, written...)
			return nil, err
		}
		written = append(written, name)
		if p.column == "image" {
			task.Image = name
		} else {
			task.SolutionImage = name
		}
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		log.Error().Err(err).Uint("levelID", levelID).Msg("Failed to create task in database")
		s.images.RemoveAll(ctx, written...)
		return nil, err
	}
	return toResponse[dto.TaskResponse](&task)
}

// Update writes any new images first, then applies them together with the
// supplied text fields in one row update, and only then removes the files they
// replace. A failed write or update leaves the row untouched.
func (s *taskService) Update(ctx context.Context, id uint, req dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Task", id)
	}

	verr := &apperrors.ValidationError{}
	fields := map[string]any{}
	if req.LevelID != nil {
		if levelID := dto.ParseID(verr, "level_id", *req.LevelID); levelID != 0 {
			if err := s.checkLevel(ctx, verr, levelID); err != nil {
				return nil, err
			}
			fields["level_id"] = levelID
		}
	}
	for column, value := range map[string]*string{
		"title":         req.Title,
		"answer":        req.Answer,
		"text":          req.Text,
		"solution_text": req.SolutionText,
	} {
		if value != nil {
			fields[column] = *value
		}
	}
	pending, err := s.validateImages(verr, req.Image, req.SolutionImage)
	if err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var written, superseded []string
	for _, p := range pending {
		name, err := s.images.Store(ctx, p.file, p.contentType)
		if err != nil {
			s.images.RemoveAll(ctx, written...)
			return nil, err
		}
		written = append(written, name)
		fields[p.column] = name
		if p.column == "image" {
			superseded = append(superseded, task.Image)
		} else {
			superseded = append(superseded, task.SolutionImage)
		}
	}

	if len(fields) > 0 {
		if err := s.taskRepo.Updates(ctx, id, fields); err != nil {
			log.Error().Err(err).Uint("taskID", id).Msg("Failed to update task")
			s.images.RemoveAll(ctx, written...)
			return nil, err
		}
	}
	// The row already points at the new files; a leftover old file is only logged.
	s.images.RemoveAll(ctx, superseded...)

	task, err = s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Task", id)
	}
	return toResponse[dto.TaskResponse](task)
}

func (s *taskService) Delete(ctx context.Context, id uint) (int64, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return 0, notFound(err, "Task", id)
	}

	for _, name := range task.Images() {
		if err := s.images.Remove(ctx, name); err != nil {
			log.Error().Err(err).Uint("taskID", id).Msg("Failed to delete task image")
			return 0, err
		}
	}

	deleted, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Uint("taskID", id).Msg("Failed to delete task")
		return 0, err
	}
	return deleted, nil
}

func (s *taskService) validateImages(verr *apperrors.ValidationError, image, solutionImage *multipart.FileHeader) ([]pendingImage, error) {
	var pending []pendingImage
	for _, candidate := range []struct {
		column string
		file   *multipart.FileHeader
	}{
		{"image", image},
		{"solution_image", solutionImage},
	} {
		if candidate.file == nil {
			continue
		}
		contentType, err := s.images.Validate(candidate.column, candidate.file)
		if err := mergeValidation(verr, err); err != nil {
			return nil, err
		}
		if err == nil {
			pending = append(pending, pendingImage{column: candidate.column, file: candidate.file, contentType: contentType})
		}
	}
	return pending, nil
}

func (s *taskService) checkLevel(ctx context.Context, verr *apperrors.ValidationError, id uint) error {
	ok, err := s.levelRepo.Exists(ctx, id)
	if err != nil {
		log.Error().Err(err).Uint("levelID", id).Msg("Failed to check level")
		return err
	}
	if !ok {
		verr.Add("level_id", invalidSelection("level_id"))
	}
	return nil
}
