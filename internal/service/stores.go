package service

import (
	"context"

	"github.com/quizcraft/quizcraft-backend/internal/model"
)

// Store interfaces decouple services from the pgx-backed repositories so
// tests can substitute in-memory fakes. The concrete implementations
// live in internal/repository.

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) error
}

type QuizStore interface {
	Create(ctx context.Context, q *model.Quiz) error
	GetByID(ctx context.Context, id int64) (*model.Quiz, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]model.Quiz, error)
	Update(ctx context.Context, q *model.Quiz) error
	Delete(ctx context.Context, id int64) error
}

type QuestionStore interface {
	CreateWithAnswer(ctx context.Context, q *model.Question, correct *string) error
	UpdateWithAnswer(ctx context.Context, q *model.Question, correct *string) error
	GetByID(ctx context.Context, id int64) (*model.Question, error)
	ListByQuiz(ctx context.Context, quizID int64) ([]model.Question, error)
	ListByBank(ctx context.Context, bankID int64) ([]model.Question, error)
	CorrectValue(ctx context.Context, questionID int64) (string, error)
	Delete(ctx context.Context, id int64) error
}

type BankStore interface {
	Create(ctx context.Context, b *model.QuestionBank) error
	GetByCreator(ctx context.Context, id, creatorID int64) (*model.QuestionBank, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]model.QuestionBank, error)
	Update(ctx context.Context, b *model.QuestionBank) error
	Delete(ctx context.Context, id int64) error
}

type AttemptStore interface {
	CreateWithinQuota(ctx context.Context, a *model.QuizAttempt) error
	GetByQuiz(ctx context.Context, id, quizID int64) (*model.QuizAttempt, error)
	GetByQuizAndUser(ctx context.Context, id, quizID, userID int64) (*model.QuizAttempt, error)
	ListByQuiz(ctx context.Context, quizID int64) ([]model.QuizAttempt, error)
	ListByQuizAndUser(ctx context.Context, quizID, userID int64) ([]model.QuizAttempt, error)
	ListIDsByQuiz(ctx context.Context, quizID int64) ([]int64, error)
	Update(ctx context.Context, a *model.QuizAttempt) error
	Delete(ctx context.Context, id int64) error
}

type AnswerStore interface {
	Upsert(ctx context.Context, a *model.Answer) error
	Get(ctx context.Context, attemptID, questionID int64) (*model.Answer, error)
	ListByAttempt(ctx context.Context, attemptID int64) ([]model.Answer, error)
	SetPointsAwarded(ctx context.Context, answerID int64, points float64) error
	Delete(ctx context.Context, attemptID, questionID int64) error
}

// Mailer delivers verification and password reset codes. The default
// implementation logs the code; a real SMTP sender slots in behind the
// same interface.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
	SendPasswordResetCode(ctx context.Context, email, code string) error
}
