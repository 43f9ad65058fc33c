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

// QuizService handles quiz authoring and role-shaped reads.
type QuizService struct {
	quizzes   QuizStore
	questions QuestionStore
	attempts  AttemptStore
}

// NewQuizService creates a new QuizService.
func NewQuizService(quizzes QuizStore, questions QuestionStore, attempts AttemptStore) *QuizService {
	return &QuizService{quizzes: quizzes, questions: questions, attempts: attempts}
}

// Create validates and stores a new quiz for the teacher.
func (s *QuizService) Create(ctx context.Context, creatorID int64, req *model.CreateQuizRequest) (*model.Quiz, error) {
	quizType := model.QuizType(req.QuizType)
	if !quizType.Valid() {
		return nil, apperr.New(apperr.Validation, "Invalid quiz type")
	}
	start, end, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Title:           req.Title,
		Description:     req.Description,
		CreatorID:       creatorID,
		StartTime:       start,
		EndTime:         end,
		DurationHours:   req.Duration,
		MaxAttempts:     req.MaxAttempts,
		MaxParticipants: req.MaxParticipants,
		IsPublished:     req.IsPublished,
		QuizType:        quizType,
	}
	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return quiz, nil
}

// ListByCreator returns the teacher's quizzes.
func (s *QuizService) ListByCreator(ctx context.Context, creatorID int64) ([]model.Quiz, error) {
	quizzes, err := s.quizzes.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

// GetForTeacher returns the owned quiz with its questions, correct
// answers and attempt ids.
func (s *QuizService) GetForTeacher(ctx context.Context, quizID, creatorID int64) (*model.QuizDetail, error) {
	quiz, err := s.getOwned(ctx, quizID, creatorID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questions.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	attemptIDs, err := s.attempts.ListIDsByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return &model.QuizDetail{Quiz: *quiz, Questions: questions, Attempts: attemptIDs}, nil
}

// GetForStudent returns a published quiz with its questions stripped of
// correct answers, sliced by offset/limit. limit <= 0 means no limit.
func (s *QuizService) GetForStudent(ctx context.Context, quizID int64, offset, limit int) (*model.QuizDetail, error) {
	quiz, err := s.get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, apperr.New(apperr.NotFound, "Quiz not found")
	}

	questions, err := s.questions.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(questions) {
		offset = len(questions)
	}
	questions = questions[offset:]
	if limit > 0 && limit < len(questions) {
		questions = questions[:limit]
	}
	for i := range questions {
		questions[i].CorrectAnswer = nil
	}
	return &model.QuizDetail{Quiz: *quiz, Questions: questions}, nil
}

// Update replaces the quiz's settings. A quiz_type change is rejected
// when an existing question would violate the new rule.
func (s *QuizService) Update(ctx context.Context, quizID, creatorID int64, req *model.UpdateQuizRequest) (*model.Quiz, error) {
	quiz, err := s.getOwned(ctx, quizID, creatorID)
	if err != nil {
		return nil, err
	}

	quizType := model.QuizType(req.QuizType)
	if !quizType.Valid() {
		return nil, apperr.New(apperr.Validation, "Invalid quiz type")
	}
	if quizType != quiz.QuizType {
		questions, err := s.questions.ListByQuiz(ctx, quizID)
		if err != nil {
			return nil, fmt.Errorf("list questions: %w", err)
		}
		for _, q := range questions {
			if !quizType.Allows(q.QuestionType) {
				return nil, apperr.New(apperr.Validation, "Invalid question type for this quiz")
			}
		}
	}
	start, end, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.StartTime = start
	quiz.EndTime = end
	quiz.DurationHours = req.Duration
	quiz.MaxAttempts = req.MaxAttempts
	quiz.MaxParticipants = req.MaxParticipants
	quiz.IsPublished = req.IsPublished
	quiz.QuizType = quizType

	if err := s.quizzes.Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("update quiz: %w", err)
	}
	return quiz, nil
}

// Delete removes an owned quiz and its dependents.
func (s *QuizService) Delete(ctx context.Context, quizID, creatorID int64) error {
	if _, err := s.getOwned(ctx, quizID, creatorID); err != nil {
		return err
	}
	if err := s.quizzes.Delete(ctx, quizID); err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	return nil
}

func (s *QuizService) get(ctx context.Context, quizID int64) (*model.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Quiz not found")
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return quiz, nil
}

func (s *QuizService) getOwned(ctx context.Context, quizID, creatorID int64) (*model.Quiz, error) {
	quiz, err := s.get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.CreatorID != creatorID {
		return nil, apperr.New(apperr.NotFound, "Quiz not found")
	}
	return quiz, nil
}

// parseWindow parses wire-format times and checks the window is ordered.
func parseWindow(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(model.TimeLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.New(apperr.Validation, "Invalid start_time format, expected YYYY-MM-DD HH:MM:SS")
	}
	end, err := time.Parse(model.TimeLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.New(apperr.Validation, "Invalid end_time format, expected YYYY-MM-DD HH:MM:SS")
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, apperr.New(apperr.Validation, "start_time must be before end_time")
	}
	return start, end, nil
}
