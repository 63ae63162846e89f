package repository

import (
	"context"

	"github.com/lshigami/redaction/internal/model"
	"gorm.io/gorm"
)

type LevelRepository interface {
	Create(ctx context.Context, level *model.Level) error
	FindByID(ctx context.Context, id uint) (*model.Level, error)
	FindAll(ctx context.Context) ([]model.Level, error)
	FindBySubjectID(ctx context.Context, subjectID uint) ([]model.Level, error)
	FindByExaminationID(ctx context.Context, examinationID uint) ([]model.Level, error)
	Exists(ctx context.Context, id uint) (bool, error)
	// NumberTaken reports whether another level of subjectID already uses number.
	// excludeID skips the level being updated; pass 0 on create.
	NumberTaken(ctx context.Context, subjectID uint, number int, excludeID uint) (bool, error)
	Updates(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type levelRepository struct {
	db *gorm.DB
}

func NewLevelRepository(db *gorm.DB) LevelRepository {
	return &levelRepository{db: db}
}

func (r *levelRepository) Create(ctx context.Context, level *model.Level) error {
	return r.db.WithContext(ctx).Create(level).Error
}

func (r *levelRepository) FindByID(ctx context.Context, id uint) (*model.Level, error) {
	var level model.Level
	if err := r.db.WithContext(ctx).First(&level, id).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *levelRepository) FindAll(ctx context.Context) ([]model.Level, error) {
	var levels []model.Level
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

func (r *levelRepository) FindBySubjectID(ctx context.Context, subjectID uint) ([]model.Level, error) {
	var levels []model.Level
	err := r.db.WithContext(ctx).Where("subject_id = ?", subjectID).Order("id ASC").Find(&levels).Error
	return levels, err
}

func (r *levelRepository) FindByExaminationID(ctx context.Context, examinationID uint) ([]model.Level, error) {
	db := r.db.WithContext(ctx)
	var levels []model.Level
	err := db.Where("subject_id IN (?)", SubjectIDsByExamination(db, examinationID)).Order("id ASC").Find(&levels).Error
	return levels, err
}

func (r *levelRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &model.Level{}, id)
}

func (r *levelRepository) NumberTaken(ctx context.Context, subjectID uint, number int, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.Level{}).Where("subject_id = ? AND number = ?", subjectID, number)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *levelRepository) Updates(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.Level{ID: id}).Updates(fields).Error
}

func (r *levelRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Level{})
	return res.RowsAffected, res.Error
}
