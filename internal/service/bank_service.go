package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/quizcraft/quizcraft-backend/internal/apperr"
	"github.com/quizcraft/quizcraft-backend/internal/model"
)

// BankService handles question bank CRUD for teachers.
type BankService struct {
	banks BankStore
}

// NewBankService creates a new BankService.
func NewBankService(banks BankStore) *BankService {
	return &BankService{banks: banks}
}

// Create stores a new question bank for the teacher.
func (s *BankService) Create(ctx context.Context, creatorID int64, req *model.CreateBankRequest) (*model.QuestionBank, error) {
	bank := &model.QuestionBank{
		CreatorID:   creatorID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.banks.Create(ctx, bank); err != nil {
		return nil, fmt.Errorf("create question bank: %w", err)
	}
	return bank, nil
}

// Get returns an owned question bank.
func (s *BankService) Get(ctx context.Context, bankID, creatorID int64) (*model.QuestionBank, error) {
	bank, err := s.banks.GetByCreator(ctx, bankID, creatorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Question bank not found")
		}
		return nil, fmt.Errorf("get question bank: %w", err)
	}
	return bank, nil
}

// List returns all banks owned by the teacher.
func (s *BankService) List(ctx context.Context, creatorID int64) ([]model.QuestionBank, error) {
	banks, err := s.banks.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list question banks: %w", err)
	}
	return banks, nil
}

// Update changes title and description of an owned bank.
func (s *BankService) Update(ctx context.Context, bankID, creatorID int64, req *model.UpdateBankRequest) (*model.QuestionBank, error) {
	bank, err := s.Get(ctx, bankID, creatorID)
	if err != nil {
		return nil, err
	}
	bank.Title = req.Title
	bank.Description = req.Description
	if err := s.banks.Update(ctx, bank); err != nil {
		return nil, fmt.Errorf("update question bank: %w", err)
	}
	return bank, nil
}

// Delete removes an owned bank and its questions.
func (s *BankService) Delete(ctx context.Context, bankID, creatorID int64) error {
	if _, err := s.Get(ctx, bankID, creatorID); err != nil {
		return err
	}
	if err := s.banks.Delete(ctx, bankID); err != nil {
		return fmt.Errorf("delete question bank: %w", err)
	}
	return nil
}
