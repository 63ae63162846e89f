package repository

import (
	"context"

	"github.com/lshigami/redaction/internal/model"
	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	FindAll(ctx context.Context) ([]model.Task, error)
	FindByLevelID(ctx context.Context, levelID uint) ([]model.Task, error)
	FindBySubjectID(ctx context.Context, subjectID uint) ([]model.Task, error)
	FindByExaminationID(ctx context.Context, examinationID uint) ([]model.Task, error)
	Updates(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) FindAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) FindByLevelID(ctx context.Context, levelID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Where("level_id = ?", levelID).Order("id ASC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) FindBySubjectID(ctx context.Context, subjectID uint) ([]model.Task, error) {
	db := r.db.WithContext(ctx)
	var tasks []model.Task
	err := db.Where("level_id IN (?)", LevelIDsBySubject(db, subjectID)).Order("id ASC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) FindByExaminationID(ctx context.Context, examinationID uint) ([]model.Task, error) {
	db := r.db.WithContext(ctx)
	var tasks []model.Task
	err := db.Where("level_id IN (?)", LevelIDsByExamination(db, examinationID)).Order("id ASC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) Updates(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.Task{ID: id}).Updates(fields).Error
}

func (r *taskRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{})
	return res.RowsAffected, res.Error
}
