package repository

import (
	"context"

	"github.com/lshigami/redaction/internal/model"
	"gorm.io/gorm"
)

type ExaminationRepository interface {
	Create(ctx context.Context, examination *model.Examination) error
	FindByID(ctx context.Context, id uint) (*model.Examination, error)
	FindAll(ctx context.Context) ([]model.Examination, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Updates(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type examinationRepository struct {
	db *gorm.DB
}

func NewExaminationRepository(db *gorm.DB) ExaminationRepository {
	return &examinationRepository{db: db}
}

func (r *examinationRepository) Create(ctx context.Context, examination *model.Examination) error {
	return r.db.WithContext(ctx).Create(examination).Error
}

func (r *examinationRepository) FindByID(ctx context.Context, id uint) (*model.Examination, error) {
	var examination model.Examination
	if err := r.db.WithContext(ctx).First(&examination, id).Error; err != nil {
		return nil, err
	}
	return &examination, nil
}

func (r *examinationRepository) FindAll(ctx context.Context) ([]model.Examination, error) {
	var examinations []model.Examination
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&examinations).Error; err != nil {
		return nil, err
	}
	return examinations, nil
}

func (r *examinationRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &model.Examination{}, id)
}

func (r *examinationRepository) Updates(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.Examination{ID: id}).Updates(fields).Error
}

func (r *examinationRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Examination{})
	return res.RowsAffected, res.Error
}
