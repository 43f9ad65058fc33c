package model

import "time"

// QuizAttempt is a student's timed instance of taking a quiz.
// Lifecycle: created while the quiz window is open and capacity allows,
// mutable while is_submitted is false, immutable once submitted.
type QuizAttempt struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	QuizID      int64     `json:"quiz_id"`
	StartedAt   time.Time `json:"started_at"`
	EndedAt     time.Time `json:"ended_at"`
	Score       float64   `json:"score"`
	IsSubmitted bool      `json:"is_submitted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateAttemptRequest is the payload for the administrative attempt
// update. Score is honored for teachers only.
type UpdateAttemptRequest struct {
	Score       *float64 `json:"score" binding:"omitempty,min=0"`
	IsSubmitted *bool    `json:"is_submitted" binding:"required"`
}

// SubmitAttemptRequest is the payload for the terminal submission.
// The flag must be present and true.
type SubmitAttemptRequest struct {
	IsSubmitted *bool `json:"is_submitted"`
}
