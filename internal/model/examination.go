package model

import "time"

type Examination struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `json:"title" gorm:"not null"`
	Subjects  []Subject `json:"subjects,omitempty" gorm:"foreignKey:ExaminationID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
