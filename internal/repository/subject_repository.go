package repository

import (
	"context"

	"github.com/lshigami/redaction/internal/model"
	"gorm.io/gorm"
)

type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	FindByID(ctx context.Context, id uint) (*model.Subject, error)
	FindAll(ctx context.Context) ([]model.Subject, error)
	FindByExaminationID(ctx context.Context, examinationID uint) ([]model.Subject, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Updates(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepository) FindByID(ctx context.Context, id uint) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.WithContext(ctx).First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) FindAll(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepository) FindByExaminationID(ctx context.Context, examinationID uint) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).Where("examination_id = ?", examinationID).Order("id ASC").Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &model.Subject{}, id)
}

func (r *subjectRepository) Updates(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.Subject{ID: id}).Updates(fields).Error
}

func (r *subjectRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Subject{})
	return res.RowsAffected, res.Error
}
