package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizcraft/quizcraft-backend/internal/model"
)

// QuestionBankRepository handles question bank data access.
type QuestionBankRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionBankRepository creates a new QuestionBankRepository.
func NewQuestionBankRepository(pool *pgxpool.Pool) *QuestionBankRepository {
	return &QuestionBankRepository{pool: pool}
}

// Create inserts a new question bank.
func (r *QuestionBankRepository) Create(ctx context.Context, b *model.QuestionBank) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO question_banks (creator_id, title, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		b.CreatorID, b.Title, b.Description,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// GetByCreator retrieves a bank owned by the given teacher.
func (r *QuestionBankRepository) GetByCreator(ctx context.Context, id, creatorID int64) (*model.QuestionBank, error) {
	b := &model.QuestionBank{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, creator_id, title, description, created_at, updated_at
		 FROM question_banks
		 WHERE id = $1 AND creator_id = $2`, id, creatorID,
	).Scan(&b.ID, &b.CreatorID, &b.Title, &b.Description, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListByCreator retrieves all banks owned by a teacher.
func (r *QuestionBankRepository) ListByCreator(ctx context.Context, creatorID int64) ([]model.QuestionBank, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, creator_id, title, description, created_at, updated_at
		 FROM question_banks
		 WHERE creator_id = $1
		 ORDER BY created_at DESC`, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banks []model.QuestionBank
	for rows.Next() {
		var b model.QuestionBank
		if err := rows.Scan(&b.ID, &b.CreatorID, &b.Title, &b.Description,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		banks = append(banks, b)
	}
	return banks, rows.Err()
}

// Update persists title and description.
func (r *QuestionBankRepository) Update(ctx context.Context, b *model.QuestionBank) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE question_banks
		 SET title = $1, description = $2, updated_at = NOW()
		 WHERE id = $3`,
		b.Title, b.Description, b.ID)
	return err
}

// Delete removes a bank; its questions cascade at the schema level.
func (r *QuestionBankRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM question_banks WHERE id = $1`, id)
	return err
}
