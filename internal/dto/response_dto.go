package dto

import "time"

type ExaminationResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SubjectResponse struct {
	ID            uint      `json:"id"`
	ExaminationID uint      `json:"examination_id"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type LevelResponse struct {
	ID        uint      `json:"id"`
	SubjectID uint      `json:"subject_id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskResponse.Image and SolutionImage are filenames in the public "tasks" namespace.
type TaskResponse struct {
	ID            uint      `json:"id"`
	LevelID       uint      `json:"level_id"`
	Title         string    `json:"title"`
	Answer        string    `json:"answer"`
	Text          string    `json:"text"`
	Image         string    `json:"image"`
	SolutionText  string    `json:"solution_text"`
	SolutionImage string    `json:"solution_image"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}
