package service

import (
	"context"

	"github.com/lshigami/redaction/internal/apperrors"
	"github.com/lshigami/redaction/internal/dto"
	"github.com/lshigami/redaction/internal/model"
	"github.com/lshigami/redaction/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SubjectService interface {
	List(ctx context.Context) ([]dto.SubjectResponse, error)
	ListByExamination(ctx context.Context, examinationID uint) ([]dto.SubjectResponse, error)
	Create(ctx context.Context, req dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	// Delete removes the subject with its levels and tasks.
	Delete(ctx context.Context, id uint) (int64, error)
}

type subjectService struct {
	subjectRepo repository.SubjectRepository
	examRepo    repository.ExaminationRepository
	db          *gorm.DB
	images      *ImageStore
}

func NewSubjectService(subjectRepo repository.SubjectRepository, examRepo repository.ExaminationRepository, db *gorm.DB, images *ImageStore) SubjectService {
	return &subjectService{subjectRepo: subjectRepo, examRepo: examRepo, db: db, images: images}
}

func (s *subjectService) List(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.subjectRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list subjects")
		return nil, err
	}
	return toResponses[dto.SubjectResponse](subjects)
}

func (s *subjectService) ListByExamination(ctx context.Context, examinationID uint) ([]dto.SubjectResponse, error) {
	subjects, err := s.subjectRepo.FindByExaminationID(ctx, examinationID)
	if err != nil {
		log.Error().Err(err).Uint("examinationID", examinationID).Msg("Failed to list subjects of examination")
		return nil, err
	}
	return toResponses[dto.SubjectResponse](subjects)
}

func (s *subjectService) Create(ctx context.Context, req dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	verr := &apperrors.ValidationError{}
	examID := dto.ParseID(verr, "examination_id", req.ExaminationID)
	if examID != 0 {
		if err := s.checkExamination(ctx, verr, examID); err != nil {
			return nil, err
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	subject := model.Subject{ExaminationID: examID, Title: req.Title}
	if err := s.subjectRepo.Create(ctx, &subject); err != nil {
		log.Error().Err(err).Uint("examinationID", examID).Msg("Failed to create subject in database")
		return nil, err
	}
	return toResponse[dto.SubjectResponse](&subject)
}

func (s *subjectService) Update(ctx context.Context, id uint, req dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	if _, err := s.subjectRepo.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "Subject", id)
	}

	verr := &apperrors.ValidationError{}
	fields := map[string]any{}
	if req.ExaminationID != nil {
		if examID := dto.ParseID(verr, "examination_id", *req.ExaminationID); examID != 0 {
			if err := s.checkExamination(ctx, verr, examID); err != nil {
				return nil, err
			}
			fields["examination_id"] = examID
		}
	}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := s.subjectRepo.Updates(ctx, id, fields); err != nil {
			log.Error().Err(err).Uint("subjectID", id).Msg("Failed to update subject")
			return nil, err
		}
	}

	subject, err := s.subjectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Subject", id)
	}
	return toResponse[dto.SubjectResponse](subject)
}

func (s *subjectService) Delete(ctx context.Context, id uint) (int64, error) {
	var (
		removed []model.Task
		deleted int64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		levelIDs := repository.LevelIDsBySubject(tx, id)
		if err := tx.Where("level_id IN (?)", levelIDs).Find(&removed).Error; err != nil {
			return err
		}
		if err := tx.Where("level_id IN (?)", levelIDs).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("subject_id = ?", id).Delete(&model.Level{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Subject{})
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		log.Error().Err(err).Uint("subjectID", id).Msg("Failed to delete subject")
		return 0, err
	}

	removeTaskImages(ctx, s.images, removed)
	log.Info().Uint("subjectID", id).Int64("deleted", deleted).Int("tasks", len(removed)).Msg("Subject deleted")
	return deleted, nil
}

func (s *subjectService) checkExamination(ctx context.Context, verr *apperrors.ValidationError, id uint) error {
	ok, err := s.examRepo.Exists(ctx, id)
	if err != nil {
		log.Error().Err(err).Uint("examinationID", id).Msg("Failed to check examination")
		return err
	}
	if !ok {
		verr.Add("examination_id", invalidSelection("examination_id"))
	}
	return nil
}
