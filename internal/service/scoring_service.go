package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/quizcraft/quizcraft-backend/internal/apperr"
	"github.com/quizcraft/quizcraft-backend/internal/model"
)

// ScoringService grades attempts. Grading is a pure function of stored
// state, so re-running Evaluate on the same attempt yields the same
// total.
type ScoringService struct {
	answers   AnswerStore
	questions QuestionStore
}

// NewScoringService creates a new ScoringService.
func NewScoringService(answers AnswerStore, questions QuestionStore) *ScoringService {
	return &ScoringService{answers: answers, questions: questions}
}

// Evaluate grades every answer of the attempt, persists the per-answer
// points and returns the total. Each answer is worth question.points on
// an exact, case-sensitive match with the canonical value, else 0. All
// question types grade by the same rule; a written question without a
// canonical answer always scores 0.
func (s *ScoringService) Evaluate(ctx context.Context, attemptID int64) (float64, error) {
	answers, err := s.answers.ListByAttempt(ctx, attemptID)
	if err != nil {
		return 0, fmt.Errorf("list answers: %w", err)
	}

	var total float64
	for _, answer := range answers {
		question, err := s.questions.GetByID(ctx, answer.QuestionID)
		if err != nil {
			return 0, fmt.Errorf("get question %d: %w", answer.QuestionID, err)
		}
		if !question.QuestionType.Valid() {
			log.Error().
				Int64("question_id", question.ID).
				Str("question_type", string(question.QuestionType)).
				Msg("stored question has unknown type")
			return 0, apperr.New(apperr.DataIntegrity, "Invalid question type")
		}

		points := Grade(question, answer.Content)
		if points != answer.PointsAwarded {
			if err := s.answers.SetPointsAwarded(ctx, answer.ID, points); err != nil {
				return 0, fmt.Errorf("set points for answer %d: %w", answer.ID, err)
			}
		}
		total += points
	}
	return total, nil
}

// Grade returns the points a single answer earns against its question.
func Grade(question *model.Question, content string) float64 {
	if question.CorrectAnswer == nil {
		return 0
	}
	if content == *question.CorrectAnswer {
		return float64(question.Points)
	}
	return 0
}
