package model

import "time"

type Subject struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ExaminationID uint      `json:"examination_id" gorm:"not null;index"`
	Title         string    `json:"title" gorm:"not null"`
	Levels        []Level   `json:"levels,omitempty" gorm:"foreignKey:SubjectID"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
