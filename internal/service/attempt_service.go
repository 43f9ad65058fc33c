package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/quizcraft/quizcraft-backend/internal/apperr"
	"github.com/quizcraft/quizcraft-backend/internal/model"
)

// Scorer grades a whole attempt.
type Scorer interface {
	Evaluate(ctx context.Context, attemptID int64) (float64, error)
}

// AttemptService drives the attempt lifecycle.
type AttemptService struct {
	attempts  AttemptStore
	quizzes   QuizStore
	questions QuestionStore
	scorer    Scorer
	now       func() time.Time
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(attempts AttemptStore, quizzes QuizStore, questions QuestionStore, scorer Scorer) *AttemptService {
	return &AttemptService{
		attempts:  attempts,
		quizzes:   quizzes,
		questions: questions,
		scorer:    scorer,
		now:       time.Now,
	}
}

// Create starts an attempt for the student. The quiz window must be
// open; attempt and participant quotas are re-checked under a row lock
// in the store so concurrent creates cannot exceed them.
func (s *AttemptService) Create(ctx context.Context, quizID, userID int64) (*model.QuizAttempt, error) {
	quiz, err := s.quiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, apperr.New(apperr.NotFound, "Quiz not found")
	}
	now := s.now()
	if !quiz.Active(now) {
		return nil, apperr.New(apperr.StateConflict, "Quiz is not active")
	}

	attempt := &model.QuizAttempt{
		UserID:    userID,
		QuizID:    quizID,
		StartedAt: now,
		EndedAt:   now.Add(time.Duration(quiz.DurationHours) * time.Hour),
	}
	if err := s.attempts.CreateWithinQuota(ctx, attempt); err != nil {
		if apperr.From(err) != nil {
			return nil, err
		}
		return nil, fmt.Errorf("create attempt: %w", err)
	}
	return attempt, nil
}

// Get returns an attempt. The quiz's teacher sees any attempt of the
// quiz; a student sees only their own.
func (s *AttemptService) Get(ctx context.Context, attemptID, quizID int64, user *model.User) (*model.QuizAttempt, error) {
	if user.Role == model.RoleTeacher {
		if _, err := s.ownedQuiz(ctx, quizID, user.ID); err != nil {
			return nil, err
		}
		return s.load(s.attempts.GetByQuiz(ctx, attemptID, quizID))
	}
	return s.load(s.attempts.GetByQuizAndUser(ctx, attemptID, quizID, user.ID))
}

// List returns the quiz's attempts for its teacher, or the student's
// own attempts on the quiz.
func (s *AttemptService) List(ctx context.Context, quizID int64, user *model.User) ([]model.QuizAttempt, error) {
	if user.Role == model.RoleTeacher {
		if _, err := s.ownedQuiz(ctx, quizID, user.ID); err != nil {
			return nil, err
		}
		attempts, err := s.attempts.ListByQuiz(ctx, quizID)
		if err != nil {
			return nil, fmt.Errorf("list attempts: %w", err)
		}
		return attempts, nil
	}
	attempts, err := s.attempts.ListByQuizAndUser(ctx, quizID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}

// Update is the administrative attempt edit. Only teachers may set the
// score; either role may flip is_submitted. Submitted attempts are
// immutable.
func (s *AttemptService) Update(ctx context.Context, attemptID, quizID int64, user *model.User, req *model.UpdateAttemptRequest) (*model.QuizAttempt, error) {
	attempt, err := s.Get(ctx, attemptID, quizID, user)
	if err != nil {
		return nil, err
	}
	if attempt.IsSubmitted {
		return nil, apperr.New(apperr.StateConflict, "Attempt has already been submitted and cannot be updated")
	}

	if req.Score != nil && user.Role == model.RoleTeacher {
		attempt.Score = *req.Score
	}
	attempt.IsSubmitted = *req.IsSubmitted

	if err := s.attempts.Update(ctx, attempt); err != nil {
		if apperr.From(err) != nil {
			return nil, err
		}
		return nil, fmt.Errorf("update attempt: %w", err)
	}
	return attempt, nil
}

// Submit is the student's terminal submission: grade every answer,
// persist the total and close the attempt. One-way.
func (s *AttemptService) Submit(ctx context.Context, attemptID, quizID int64, user *model.User, req *model.SubmitAttemptRequest) (float64, error) {
	attempt, err := s.load(s.attempts.GetByQuizAndUser(ctx, attemptID, quizID, user.ID))
	if err != nil {
		return 0, err
	}
	if req.IsSubmitted == nil {
		return 0, apperr.New(apperr.Validation, "is_submitted is required")
	}
	if !*req.IsSubmitted {
		return 0, apperr.New(apperr.Validation, "is_submitted must be true")
	}
	if attempt.IsSubmitted {
		return 0, apperr.New(apperr.StateConflict, "Attempt has already been submitted")
	}

	total, err := s.scorer.Evaluate(ctx, attempt.ID)
	if err != nil {
		return 0, err
	}

	attempt.Score = total
	attempt.IsSubmitted = true
	if err := s.attempts.Update(ctx, attempt); err != nil {
		if apperr.From(err) != nil {
			return 0, err
		}
		return 0, fmt.Errorf("update attempt: %w", err)
	}
	return total, nil
}

// Evaluate re-grades the attempt without closing it. Available to the
// quiz's teacher and the owning student.
func (s *AttemptService) Evaluate(ctx context.Context, attemptID, quizID int64, user *model.User) (float64, error) {
	if _, err := s.Get(ctx, attemptID, quizID, user); err != nil {
		return 0, err
	}
	return s.scorer.Evaluate(ctx, attemptID)
}

// Delete removes the student's own attempt in any state.
func (s *AttemptService) Delete(ctx context.Context, attemptID, quizID, userID int64) error {
	attempt, err := s.load(s.attempts.GetByQuizAndUser(ctx, attemptID, quizID, userID))
	if err != nil {
		return err
	}
	if err := s.attempts.Delete(ctx, attempt.ID); err != nil {
		return fmt.Errorf("delete attempt: %w", err)
	}
	return nil
}

// Questions returns the quiz's questions for the owning student,
// stripped of correct answers.
func (s *AttemptService) Questions(ctx context.Context, attemptID, quizID, userID int64) ([]model.Question, error) {
	if _, err := s.load(s.attempts.GetByQuizAndUser(ctx, attemptID, quizID, userID)); err != nil {
		return nil, err
	}
	questions, err := s.questions.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	for i := range questions {
		questions[i].CorrectAnswer = nil
	}
	return questions, nil
}

func (s *AttemptService) quiz(ctx context.Context, quizID int64) (*model.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Quiz not found")
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return quiz, nil
}

func (s *AttemptService) ownedQuiz(ctx context.Context, quizID, creatorID int64) (*model.Quiz, error) {
	quiz, err := s.quiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.CreatorID != creatorID {
		return nil, apperr.New(apperr.NotFound, "Quiz not found")
	}
	return quiz, nil
}

func (s *AttemptService) load(attempt *model.QuizAttempt, err error) (*model.QuizAttempt, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Attempt not found")
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	return attempt, nil
}
