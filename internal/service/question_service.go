package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/quizcraft/quizcraft-backend/internal/apperr"
	"github.com/quizcraft/quizcraft-backend/internal/model"
)

// QuestionService handles question authoring under quizzes and banks.
type QuestionService struct {
	questions QuestionStore
	quizzes   QuizStore
	banks     BankStore
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions QuestionStore, quizzes QuizStore, banks BankStore) *QuestionService {
	return &QuestionService{questions: questions, quizzes: quizzes, banks: banks}
}

// CreateForQuiz adds a question to an owned quiz.
func (s *QuestionService) CreateForQuiz(ctx context.Context, quizID, creatorID int64, req *model.CreateQuestionRequest) (*model.Question, error) {
	quiz, err := s.ownedQuiz(ctx, quizID, creatorID)
	if err != nil {
		return nil, err
	}

	questionType := model.QuestionType(req.QuestionType)
	if !questionType.Valid() {
		return nil, apperr.New(apperr.Validation, "Invalid question type")
	}
	if !quiz.QuizType.Allows(questionType) {
		return nil, apperr.New(apperr.Validation, "Invalid question type for this quiz")
	}
	correct, err := requiredAnswer(questionType, req.CorrectAnswer)
	if err != nil {
		return nil, err
	}
	if req.Order != nil {
		if err := s.checkOrder(ctx, quizID, *req.Order, 0); err != nil {
			return nil, err
		}
	}

	question := &model.Question{
		QuizID:       &quizID,
		Content:      req.Content,
		QuestionType: questionType,
		Points:       req.Points,
		Position:     req.Order,
	}
	if err := s.questions.CreateWithAnswer(ctx, question, correct); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return question, nil
}

// CreateForBank adds a question to an owned question bank.
func (s *QuestionService) CreateForBank(ctx context.Context, bankID, creatorID int64, req *model.CreateBankQuestionRequest) (*model.Question, error) {
	if _, err := s.ownedBank(ctx, bankID, creatorID); err != nil {
		return nil, err
	}

	questionType := model.QuestionType(req.QuestionType)
	if !questionType.Valid() {
		return nil, apperr.New(apperr.Validation, "Invalid question type")
	}
	correct, err := requiredAnswer(questionType, req.CorrectAnswer)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		BankID:       &bankID,
		Content:      req.Content,
		QuestionType: questionType,
		Points:       req.Points,
	}
	if err := s.questions.CreateWithAnswer(ctx, question, correct); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return question, nil
}

// GetForQuiz returns a question of an owned quiz.
func (s *QuestionService) GetForQuiz(ctx context.Context, quizID, questionID, creatorID int64) (*model.Question, error) {
	if _, err := s.ownedQuiz(ctx, quizID, creatorID); err != nil {
		return nil, err
	}
	return s.getInQuiz(ctx, questionID, quizID)
}

// ListForQuiz returns all questions of an owned quiz.
func (s *QuestionService) ListForQuiz(ctx context.Context, quizID, creatorID int64) ([]model.Question, error) {
	if _, err := s.ownedQuiz(ctx, quizID, creatorID); err != nil {
		return nil, err
	}
	questions, err := s.questions.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// ListForBank returns all questions of an owned bank.
func (s *QuestionService) ListForBank(ctx context.Context, bankID, creatorID int64) ([]model.Question, error) {
	if _, err := s.ownedBank(ctx, bankID, creatorID); err != nil {
		return nil, err
	}
	questions, err := s.questions.ListByBank(ctx, bankID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// UpdateForQuiz updates a question of an owned quiz.
func (s *QuestionService) UpdateForQuiz(ctx context.Context, quizID, questionID, creatorID int64, req *model.UpdateQuestionRequest) (*model.Question, error) {
	quiz, err := s.ownedQuiz(ctx, quizID, creatorID)
	if err != nil {
		return nil, err
	}
	question, err := s.getInQuiz(ctx, questionID, quizID)
	if err != nil {
		return nil, err
	}

	questionType := model.QuestionType(req.QuestionType)
	if !questionType.Valid() {
		return nil, apperr.New(apperr.Validation, "Invalid question type")
	}
	if !quiz.QuizType.Allows(questionType) {
		return nil, apperr.New(apperr.Validation, "Invalid question type for this quiz")
	}
	correct, err := requiredAnswer(questionType, req.CorrectAnswer)
	if err != nil {
		return nil, err
	}
	if req.Order != nil {
		if err := s.checkOrder(ctx, quizID, *req.Order, questionID); err != nil {
			return nil, err
		}
	}

	question.Content = req.Content
	question.QuestionType = questionType
	question.Points = req.Points
	question.Position = req.Order

	if err := s.questions.UpdateWithAnswer(ctx, question, correct); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	return question, nil
}

// DeleteForQuiz removes a question of an owned quiz.
func (s *QuestionService) DeleteForQuiz(ctx context.Context, quizID, questionID, creatorID int64) error {
	if _, err := s.ownedQuiz(ctx, quizID, creatorID); err != nil {
		return err
	}
	if _, err := s.getInQuiz(ctx, questionID, quizID); err != nil {
		return err
	}
	if err := s.questions.Delete(ctx, questionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.NotFound, "Question not found")
		}
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

// DeleteForBank removes a question of an owned bank.
func (s *QuestionService) DeleteForBank(ctx context.Context, bankID, questionID, creatorID int64) error {
	if _, err := s.ownedBank(ctx, bankID, creatorID); err != nil {
		return err
	}
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.NotFound, "Question not found")
		}
		return fmt.Errorf("get question: %w", err)
	}
	if question.BankID == nil || *question.BankID != bankID {
		return apperr.New(apperr.NotFound, "Question not found")
	}
	if err := s.questions.Delete(ctx, questionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.NotFound, "Question not found")
		}
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

func (s *QuestionService) ownedQuiz(ctx context.Context, quizID, creatorID int64) (*model.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Quiz not found")
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	if quiz.CreatorID != creatorID {
		return nil, apperr.New(apperr.NotFound, "Quiz not found")
	}
	return quiz, nil
}

func (s *QuestionService) ownedBank(ctx context.Context, bankID, creatorID int64) (*model.QuestionBank, error) {
	bank, err := s.banks.GetByCreator(ctx, bankID, creatorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Question bank not found")
		}
		return nil, fmt.Errorf("get question bank: %w", err)
	}
	return bank, nil
}

func (s *QuestionService) getInQuiz(ctx context.Context, questionID, quizID int64) (*model.Question, error) {
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

// checkOrder rejects a position already taken by a sibling question.
// selfID exempts the question being updated from colliding with itself.
func (s *QuestionService) checkOrder(ctx context.Context, quizID int64, order int, selfID int64) error {
	siblings, err := s.questions.ListByQuiz(ctx, quizID)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}
	for _, sib := range siblings {
		if sib.ID == selfID {
			continue
		}
		if sib.Position != nil && *sib.Position == order {
			return apperr.New(apperr.Validation, "Invalid question order")
		}
	}
	return nil
}

// requiredAnswer enforces the canonical answer rule: true_false/choose
// must carry one, written must not store one.
func requiredAnswer(t model.QuestionType, correctAnswer string) (*string, error) {
	if !t.NeedsCorrectAnswer() {
		return nil, nil
	}
	if correctAnswer == "" {
		return nil, apperr.New(apperr.Validation, "Correct answer is required")
	}
	return &correctAnswer, nil
}
