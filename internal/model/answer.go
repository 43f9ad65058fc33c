package model

import "time"

// Answer links a question and a quiz attempt. At most one answer exists
// per (attempt, question) pair; writes are upserts keyed on that pair.
type Answer struct {
	ID            int64     `json:"id"`
	QuestionID    int64     `json:"question_id"`
	AttemptID     int64     `json:"attempt_id"`
	Content       string    `json:"content"`
	PointsAwarded float64   `json:"points_awarded"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SubmitAnswerRequest is the payload for writing an answer.
type SubmitAnswerRequest struct {
	Content *string `json:"content"`
}
