package model

import "time"

// QuestionType enumerates supported question types.
type QuestionType string

const (
	QuestionTypeTrueFalse QuestionType = "true_false"
	QuestionTypeChoose    QuestionType = "choose"
	QuestionTypeWritten   QuestionType = "written"
)

// Valid reports whether the question type is a known value.
func (t QuestionType) Valid() bool {
	return t == QuestionTypeTrueFalse || t == QuestionTypeChoose || t == QuestionTypeWritten
}

// NeedsCorrectAnswer reports whether the type requires a stored
// canonical answer at authoring time.
func (t QuestionType) NeedsCorrectAnswer() bool {
	return t == QuestionTypeTrueFalse || t == QuestionTypeChoose
}

// Question belongs to exactly one of a quiz or a question bank; the
// schema enforces the exclusivity. Position is the unique order among
// sibling quiz questions and is nil for bank questions.
type Question struct {
	ID           int64        `json:"id"`
	QuizID       *int64       `json:"quiz_id,omitempty"`
	BankID       *int64       `json:"bank_id,omitempty"`
	Content      string       `json:"content"`
	QuestionType QuestionType `json:"question_type"`
	Points       int          `json:"points"`
	Position     *int         `json:"order,omitempty"`
	// CorrectAnswer is populated only for teacher-facing reads.
	CorrectAnswer *string   `json:"correct_answer,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateQuestionRequest is the payload for adding a question to a quiz.
type CreateQuestionRequest struct {
	Content       string `json:"content" binding:"required"`
	QuestionType  string `json:"question_type" binding:"required"`
	Points        int    `json:"points" binding:"required,min=1"`
	Order         *int   `json:"order" binding:"omitempty,min=0"`
	CorrectAnswer string `json:"correct_answer" binding:"omitempty"`
}

// CreateBankQuestionRequest is the payload for adding a question to a
// question bank. Bank questions carry no order.
type CreateBankQuestionRequest struct {
	Content       string `json:"content" binding:"required"`
	QuestionType  string `json:"question_type" binding:"required"`
	Points        int    `json:"points" binding:"required,min=1"`
	CorrectAnswer string `json:"correct_answer" binding:"omitempty"`
}

// UpdateQuestionRequest is the payload for updating a question.
type UpdateQuestionRequest struct {
	Content       string `json:"content" binding:"required"`
	QuestionType  string `json:"question_type" binding:"required"`
	Points        int    `json:"points" binding:"required,min=1"`
	Order         *int   `json:"order" binding:"omitempty,min=0"`
	CorrectAnswer string `json:"correct_answer" binding:"omitempty"`
}
