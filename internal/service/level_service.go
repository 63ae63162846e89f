package service

import (
	"context"
	"errors"

	"github.com/lshigami/redaction/internal/apperrors"
	"github.com/lshigami/redaction/internal/dto"
	"github.com/lshigami/redaction/internal/model"
	"github.com/lshigami/redaction/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const numberTaken = "The number has already been taken."

type LevelService interface {
	List(ctx context.Context) ([]dto.LevelResponse, error)
	ListBySubject(ctx context.Context, subjectID uint) ([]dto.LevelResponse, error)
	ListByExamination(ctx context.Context, examinationID uint) ([]dto.LevelResponse, error)
	Create(ctx context.Context, req dto.CreateLevelRequest) (*dto.LevelResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateLevelRequest) (*dto.LevelResponse, error)
	// Delete removes the level with its tasks.
	Delete(ctx context.Context, id uint) (int64, error)
}

type levelService struct {
	levelRepo   repository.LevelRepository
	subjectRepo repository.SubjectRepository
	db          *gorm.DB
	images      *ImageStore
}

func NewLevelService(levelRepo repository.LevelRepository, subjectRepo repository.SubjectRepository, db *gorm.DB, images *ImageStore) LevelService {
	return &levelService{levelRepo: levelRepo, subjectRepo: subjectRepo, db: db, images: images}
}

func (s *levelService) List(ctx context.Context) ([]dto.LevelResponse, error) {
	levels, err := s.levelRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list levels")
		return nil, err
	}
	return toResponses[dto.LevelResponse](levels)
}

func (s *levelService) ListBySubject(ctx context.Context, subjectID uint) ([]dto.LevelResponse, error) {
	levels, err := s.levelRepo.FindBySubjectID(ctx, subjectID)
	if err != nil {
		log.Error().Err(err).Uint("subjectID", subjectID).Msg("Failed to list levels of subject")
		return nil, err
	}
	return toResponses[dto.LevelResponse](levels)
}

func (s *levelService) ListByExamination(ctx context.Context, examinationID uint) ([]dto.LevelResponse, error) {
	levels, err := s.levelRepo.FindByExaminationID(ctx, examinationID)
	if err != nil {
		log.Error().Err(err).Uint("examinationID", examinationID).Msg("Failed to list levels of examination")
		return nil, err
	}
	return toResponses[dto.LevelResponse](levels)
}

func (s *levelService) Create(ctx context.Context, req dto.CreateLevelRequest) (*dto.LevelResponse, error) {
	verr := &apperrors.ValidationError{}
	subjectID := dto.ParseID(verr, "subject_id", req.SubjectID)
	number := dto.ParseInt(verr, "number", req.Number)

	subjectOK := false
	if subjectID != 0 {
		ok, err := s.checkSubject(ctx, verr, subjectID)
		if err != nil {
			return nil, err
		}
		subjectOK = ok
	}
	if subjectOK && !verr.HasErrors() {
		if err := s.checkNumber(ctx, verr, subjectID, number, 0); err != nil {
			return nil, err
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	level := model.Level{SubjectID: subjectID, Number: number, Title: req.Title}
	if err := s.levelRepo.Create(ctx, &level); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewValidationError("number", numberTaken)
		}
		log.Error().Err(err).Uint("subjectID", subjectID).Msg("Failed to create level in database")
		return nil, err
	}
	return toResponse[dto.LevelResponse](&level)
}

// Update scopes number uniqueness by the requested subject_id, falling back to
// the level's current subject, and never counts the level itself.
func (s *levelService) Update(ctx context.Context, id uint, req dto.UpdateLevelRequest) (*dto.LevelResponse, error) {
	level, err := s.levelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Level", id)
	}

	verr := &apperrors.ValidationError{}
	fields := map[string]any{}

	subjectID := level.SubjectID
	if req.SubjectID != nil {
		if parsed := dto.ParseID(verr, "subject_id", *req.SubjectID); parsed != 0 {
			ok, err := s.checkSubject(ctx, verr, parsed)
			if err != nil {
				return nil, err
			}
			if ok {
				subjectID = parsed
				fields["subject_id"] = parsed
			}
		}
	}

	number := level.Number
	if req.Number != nil {
		number = dto.ParseInt(verr, "number", *req.Number)
		fields["number"] = number
	}
	if req.Title != nil {
		fields["title"] = *req.Title
	}

	if (req.SubjectID != nil || req.Number != nil) && !verr.HasErrors() {
		if err := s.checkNumber(ctx, verr, subjectID, number, id); err != nil {
			return nil, err
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := s.levelRepo.Updates(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.NewValidationError("number", numberTaken)
			}
			log.Error().Err(err).Uint("levelID", id).Msg("Failed to update level")
			return nil, err
		}
	}

	level, err = s.levelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Level", id)
	}
	return toResponse[dto.LevelResponse](level)
}

func (s *levelService) Delete(ctx context.Context, id uint) (int64, error) {
	var (
		removed []model.Task
		deleted int64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("level_id = ?", id).Find(&removed).Error; err != nil {
			return err
		}
		if err := tx.Where("level_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Level{})
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		log.Error().Err(err).Uint("levelID", id).Msg("Failed to delete level")
		return 0, err
	}

	removeTaskImages(ctx, s.images, removed)
	log.Info().Uint("levelID", id).Int64("deleted", deleted).Int("tasks", len(removed)).Msg("Level deleted")
	return deleted, nil
}

func (s *levelService) checkSubject(ctx context.Context, verr *apperrors.ValidationError, id uint) (bool, error) {
	ok, err := s.subjectRepo.Exists(ctx, id)
	if err != nil {
		log.Error().Err(err).Uint("subjectID", id).Msg("Failed to check subject")
		return false, err
	}
	if !ok {
		verr.Add("subject_id", invalidSelection("subject_id"))
	}
	return ok, nil
}

func (s *levelService) checkNumber(ctx context.Context, verr *apperrors.ValidationError, subjectID uint, number int, excludeID uint) error {
	taken, err := s.levelRepo.NumberTaken(ctx, subjectID, number, excludeID)
	if err != nil {
		log.Error().Err(err).Uint("subjectID", subjectID).Int("number", number).Msg("Failed to check level number")
		return err
	}
	if taken {
		verr.Add("number", numberTaken)
	}
	return nil
}
