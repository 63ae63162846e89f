package model

import "time"

// Task.Image and Task.SolutionImage hold filenames inside the "tasks" storage
// namespace, or "" when no file was uploaded.
type Task struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	LevelID       uint      `json:"level_id" gorm:"not null;index"`
	Title         string    `json:"title" gorm:"not null;default:''"`
	Answer        string    `json:"answer" gorm:"type:text;not null;default:''"`
	Text          string    `json:"text" gorm:"type:text;not null;default:''"`
	Image         string    `json:"image" gorm:"not null;default:''"`
	SolutionText  string    `json:"solution_text" gorm:"type:text;not null;default:''"`
	SolutionImage string    `json:"solution_image" gorm:"not null;default:''"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Images returns the non-empty stored filenames of the task.
func (t *Task) Images() []string {
	var names []string
	for _, name := range []string{t.Image, t.SolutionImage} {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
