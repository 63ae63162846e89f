package service

import (
	"context"

	"github.com/lshigami/redaction/internal/dto"
	"github.com/lshigami/redaction/internal/model"
	"github.com/lshigami/redaction/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ExaminationService interface {
	List(ctx context.Context) ([]dto.ExaminationResponse, error)
	Create(ctx context.Context, req dto.CreateExaminationRequest) (*dto.ExaminationResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateExaminationRequest) (*dto.ExaminationResponse, error)
	// Delete removes the examination with its subjects, levels and tasks.
	Delete(ctx context.Context, id uint) (int64, error)
}

type examinationService struct {
	examRepo repository.ExaminationRepository
	db       *gorm.DB
	images   *ImageStore
}

func NewExaminationService(examRepo repository.ExaminationRepository, db *gorm.DB, images *ImageStore) ExaminationService {
	return &examinationService{examRepo: examRepo, db: db, images: images}
}

func (s *examinationService) List(ctx context.Context) ([]dto.ExaminationResponse, error) {
	exams, err := s.examRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list examinations")
		return nil, err
	}
	return toResponses[dto.ExaminationResponse](exams)
}

func (s *examinationService) Create(ctx context.Context, req dto.CreateExaminationRequest) (*dto.ExaminationResponse, error) {
	exam := model.Examination{Title: req.Title}
	if err := s.examRepo.Create(ctx, &exam); err != nil {
		log.Error().Err(err).Msg("Failed to create examination in database")
		return nil, err
	}
	return toResponse[dto.ExaminationResponse](&exam)
}

func (s *examinationService) Update(ctx context.Context, id uint, req dto.UpdateExaminationRequest) (*dto.ExaminationResponse, error) {
	if _, err := s.examRepo.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "Examination", id)
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if len(fields) > 0 {
		if err := s.examRepo.Updates(ctx, id, fields); err != nil {
			log.Error().Err(err).Uint("examinationID", id).Msg("Failed to update examination")
			return nil, err
		}
	}

	exam, err := s.examRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Examination", id)
	}
	return toResponse[dto.ExaminationResponse](exam)
}

func (s *examinationService) Delete(ctx context.Context, id uint) (int64, error) {
	var (
		removed []model.Task
		deleted int64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		levelIDs := repository.LevelIDsByExamination(tx, id)
		if err := tx.Where("level_id IN (?)", levelIDs).Find(&removed).Error; err != nil {
			return err
		}
		if err := tx.Where("level_id IN (?)", levelIDs).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("subject_id IN (?)", repository.SubjectIDsByExamination(tx, id)).Delete(&model.Level{}).Error; err != nil {
			return err
		}
		if err := tx.Where("examination_id = ?", id).Delete(&model.Subject{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Examination{})
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		log.Error().Err(err).Uint("examinationID", id).Msg("Failed to delete examination")
		return 0, err
	}

	removeTaskImages(ctx, s.images, removed)
	log.Info().Uint("examinationID", id).Int64("deleted", deleted).Int("tasks", len(removed)).Msg("Examination deleted")
	return deleted, nil
}

func removeTaskImages(ctx context.Context, images *ImageStore, tasks []model.Task) {
	for i := range tasks {
		images.RemoveAll(ctx, tasks[i].Images()...)
	}
}
