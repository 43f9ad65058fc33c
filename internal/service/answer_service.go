package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/quizcraft/quizcraft-backend/internal/apperr"
	"github.com/quizcraft/quizcraft-backend/internal/model"
)

// AnswerService handles answer writes and reads within an attempt.
type AnswerService struct {
	answers   AnswerStore
	attempts  AttemptStore
	questions QuestionStore
	quizzes   QuizStore
}

// NewAnswerService creates a new AnswerService.
func NewAnswerService(answers AnswerStore, attempts AttemptStore, questions QuestionStore, quizzes QuizStore) *AnswerService {
	return &AnswerService{answers: answers, attempts: attempts, questions: questions, quizzes: quizzes}
}

// Submit writes the student's answer to a question. A second write for
// the same (attempt, question) pair overwrites the first. The answer is
// graded provisionally at write time; submission re-grades everything.
func (s *AnswerService) Submit(ctx context.Context, attemptID, quizID, questionID, userID int64, req *model.SubmitAnswerRequest) (*model.Answer, error) {
	if req.Content == nil || *req.Content == "" {
		return nil, apperr.New(apperr.Validation, "Answer content is required")
	}
	if _, err := s.activeAttempt(ctx, attemptID, quizID, userID); err != nil {
		return nil, err
	}
	question, err := s.questionInQuiz(ctx, questionID, quizID)
	if err != nil {
		return nil, err
	}

	points, err := s.provisionalPoints(ctx, question, *req.Content)
	if err != nil {
		return nil, err
	}

	answer := &model.Answer{
		QuestionID:    questionID,
		AttemptID:     attemptID,
		Content:       *req.Content,
		PointsAwarded: points,
	}
	if err := s.answers.Upsert(ctx, answer); err != nil {
		if apperr.From(err) != nil {
			return nil, err
		}
		return nil, fmt.Errorf("upsert answer: %w", err)
	}
	return answer, nil
}

// Get returns the student's answer to a question.
func (s *AnswerService) Get(ctx context.Context, attemptID, quizID, questionID, userID int64) (*model.Answer, error) {
	if _, err := s.attempt(ctx, attemptID, quizID, userID); err != nil {
		return nil, err
	}
	answer, err := s.answers.Get(ctx, attemptID, questionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Answer not found")
		}
		return nil, fmt.Errorf("get answer: %w", err)
	}
	return answer, nil
}

// ListByAttempt returns the attempt's answers. The quiz's teacher sees
// any attempt; a student only their own.
func (s *AnswerService) ListByAttempt(ctx context.Context, attemptID, quizID int64, user *model.User) ([]model.Answer, error) {
	if user.Role == model.RoleTeacher {
		quiz, err := s.quizOf(ctx, quizID)
		if err != nil {
			return nil, err
		}
		if quiz.CreatorID != user.ID {
			return nil, apperr.New(apperr.NotFound, "Quiz not found")
		}
		if _, err := s.attempts.GetByQuiz(ctx, attemptID, quizID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperr.New(apperr.NotFound, "Attempt not found")
			}
			return nil, fmt.Errorf("get attempt: %w", err)
		}
	} else if _, err := s.attempt(ctx, attemptID, quizID, user.ID); err != nil {
		return nil, err
	}

	answers, err := s.answers.ListByAttempt(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return answers, nil
}

// Delete removes the student's answer to a question while the attempt
// is still open.
func (s *AnswerService) Delete(ctx context.Context, attemptID, quizID, questionID, userID int64) error {
	if _, err := s.activeAttempt(ctx, attemptID, quizID, userID); err != nil {
		return err
	}
	if err := s.answers.Delete(ctx, attemptID, questionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.NotFound, "Answer not found")
		}
		return fmt.Errorf("delete answer: %w", err)
	}
	return nil
}

// provisionalPoints grades an answer at write time. true_false/choose
// questions must have a stored canonical answer by the authoring rules;
// its absence is surfaced rather than silently scored 0.
func (s *AnswerService) provisionalPoints(ctx context.Context, question *model.Question, content string) (float64, error) {
	if !question.QuestionType.Valid() {
		return 0, apperr.New(apperr.DataIntegrity, "Invalid question type")
	}
	if !question.QuestionType.NeedsCorrectAnswer() {
		return 0, nil
	}
	correct, err := s.questions.CorrectValue(ctx, question.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.New(apperr.NotFound, "Correct answer not found")
		}
		return 0, fmt.Errorf("get correct answer: %w", err)
	}
	if content == correct {
		return float64(question.Points), nil
	}
	return 0, nil
}

func (s *AnswerService) attempt(ctx context.Context, attemptID, quizID, userID int64) (*model.QuizAttempt, error) {
	attempt, err := s.attempts.GetByQuizAndUser(ctx, attemptID, quizID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Attempt not found")
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	return attempt, nil
}

func (s *AnswerService) activeAttempt(ctx context.Context, attemptID, quizID, userID int64) (*model.QuizAttempt, error) {
	attempt, err := s.attempt(ctx, attemptID, quizID, userID)
	if err != nil {
		return nil, err
	}
	if attempt.IsSubmitted {
		return nil, apperr.New(apperr.StateConflict, "Attempt has already been submitted and cannot be updated")
	}
	return attempt, nil
}

func (s *AnswerService) quizOf(ctx context.Context, quizID int64) (*model.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Quiz not found")
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return quiz, nil
}

func (s *AnswerService) questionInQuiz(ctx context.Context, questionID, quizID int64) (*model.Question, error) {
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Question not found")
		}
		return nil, fmt.Errorf("get question: %w", err)
	}
	if question.QuizID == nil || *question.QuizID != quizID {
		return nil, apperr.New(apperr.NotFound, "Question not found")
	}
	return question, nil
}
