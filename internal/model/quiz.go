package model

import "time"

// QuizType constrains which question types a quiz may contain.
type QuizType string

const (
	QuizTypeMCQ     QuizType = "mcq"
	QuizTypeMixed   QuizType = "mixed"
	QuizTypeWritten QuizType = "written"
)

// Valid reports whether the quiz type is a known value.
func (t QuizType) Valid() bool {
	return t == QuizTypeMCQ || t == QuizTypeMixed || t == QuizTypeWritten
}

// Allows reports whether a question of type q may belong to a quiz of
// this type. mcq excludes written; written excludes true_false/choose;
// mixed accepts all. Unknown question types are never allowed.
func (t QuizType) Allows(q QuestionType) bool {
	if !q.Valid() {
		return false
	}
	switch t {
	case QuizTypeMCQ:
		return q != QuestionTypeWritten
	case QuizTypeWritten:
		return q == QuestionTypeWritten
	case QuizTypeMixed:
		return true
	}
	return false
}

// TimeLayout is the wire format for quiz start/end times.
const TimeLayout = "2006-01-02 15:04:05"

// Quiz represents an authored quiz.
type Quiz struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CreatorID       int64     `json:"creator_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationHours   int       `json:"duration"`
	MaxAttempts     int       `json:"max_attempts"`
	MaxParticipants *int      `json:"max_participants"`
	IsPublished     bool      `json:"is_published"`
	QuizType        QuizType  `json:"quiz_type"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Active reports whether now falls within the quiz's open window.
func (q *Quiz) Active(now time.Time) bool {
	return !q.StartTime.After(now) && !q.EndTime.Before(now)
}

// CreateQuizRequest is the payload for creating a quiz. Times use
// TimeLayout; parsing failures are a validation error, not a bind error.
type CreateQuizRequest struct {
	Title           string `json:"title" binding:"required,min=1,max=50"`
	Description     string `json:"description" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	Duration        int    `json:"duration" binding:"required,min=1"`
	MaxAttempts     int    `json:"max_attempts" binding:"required,min=1"`
	MaxParticipants *int   `json:"max_participants" binding:"omitempty,min=1"`
	IsPublished     bool   `json:"is_published"`
	QuizType        string `json:"quiz_type" binding:"required"`
}

// UpdateQuizRequest is the payload for updating a quiz. All fields are
// required, mirroring a full replace of the quiz's settings.
type UpdateQuizRequest struct {
	Title           string `json:"title" binding:"required,min=1,max=50"`
	Description     string `json:"description" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	Duration        int    `json:"duration" binding:"required,min=1"`
	MaxAttempts     int    `json:"max_attempts" binding:"required,min=1"`
	MaxParticipants *int   `json:"max_participants" binding:"omitempty,min=1"`
	IsPublished     bool   `json:"is_published"`
	QuizType        string `json:"quiz_type" binding:"required"`
}

// QuizDetail is a quiz plus its questions, shaped per caller role:
// teachers see correct answers and attempt ids, students do not.
type QuizDetail struct {
	Quiz
	Questions []Question `json:"questions"`
	Attempts  []int64    `json:"attempts,omitempty"`
}
