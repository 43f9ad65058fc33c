package model

import "time"

// QuestionBank holds a teacher's reusable questions not tied to a quiz.
type QuestionBank struct {
	ID          int64     `json:"id"`
	CreatorID   int64     `json:"creator_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateBankRequest is the payload for creating a question bank.
type CreateBankRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=127"`
	Description string `json:"description" binding:"omitempty"`
}

// UpdateBankRequest is the payload for updating a question bank.
type UpdateBankRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=127"`
	Description string `json:"description" binding:"omitempty"`
}
