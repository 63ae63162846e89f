package repository

import (
	"github.com/lshigami/redaction/internal/model"
	"gorm.io/gorm"
)

// The helpers below build "SELECT id" subqueries used by the transitive
// parent filters. Each call starts a fresh statement from db.

func SubjectIDsByExamination(db *gorm.DB, examinationID uint) *gorm.DB {
	return db.Model(&model.Subject{}).Select("id").Where("examination_id = ?", examinationID)
}

func LevelIDsBySubject(db *gorm.DB, subjectID uint) *gorm.DB {
	return db.Model(&model.Level{}).Select("id").Where("subject_id = ?", subjectID)
}

func LevelIDsByExamination(db *gorm.DB, examinationID uint) *gorm.DB {
	return db.Model(&model.Level{}).Select("id").Where("subject_id IN (?)", SubjectIDsByExamination(db, examinationID))
}

func exists(db *gorm.DB, m any, id uint) (bool, error) {
	var count int64
	if err := db.Model(m).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
