package model

import "time"

// Level numbers are unique within a subject.
type Level struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	SubjectID uint      `json:"subject_id" gorm:"not null;index;uniqueIndex:idx_levels_subject_number"`
	Number    int       `json:"number" gorm:"not null;uniqueIndex:idx_levels_subject_number"`
	Title     string    `json:"title" gorm:"not null"`
	Tasks     []Task    `json:"tasks,omitempty" gorm:"foreignKey:LevelID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
