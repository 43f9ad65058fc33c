package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizcraft/quizcraft-backend/internal/model"
)

// QuestionRepository handles question and correct-answer data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `q.id, q.quiz_id, q.bank_id, q.content, q.question_type,
	q.points, q.position, ca.value, q.created_at, q.updated_at`

func scanQuestion(row interface{ Scan(...any) error }) (*model.Question, error) {
	q := &model.Question{}
	err := row.Scan(&q.ID, &q.QuizID, &q.BankID, &q.Content, &q.QuestionType,
		&q.Points, &q.Position, &q.CorrectAnswer, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// CreateWithAnswer inserts a question and, when correct is non-nil, its
// canonical answer in one transaction so a failed second step leaves no
// orphan question behind.
func (r *QuestionRepository) CreateWithAnswer(ctx context.Context, q *model.Question, correct *string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO questions (quiz_id, bank_id, content, question_type, points, position)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		q.QuizID, q.BankID, q.Content, q.QuestionType, q.Points, q.Position,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}

	if correct != nil {
		if _, err := tx.Exec(ctx,
			`INSERT INTO correct_answers (question_id, value) VALUES ($1, $2)`,
			q.ID, *correct); err != nil {
			return fmt.Errorf("insert correct answer: %w", err)
		}
		q.CorrectAnswer = correct
	}

	return tx.Commit(ctx)
}

// UpdateWithAnswer updates a question and upserts or clears its canonical
// answer in one transaction.
func (r *QuestionRepository) UpdateWithAnswer(ctx context.Context, q *model.Question, correct *string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE questions
		 SET content = $1, question_type = $2, points = $3, position = $4, updated_at = NOW()
		 WHERE id = $5`,
		q.Content, q.QuestionType, q.Points, q.Position, q.ID); err != nil {
		return fmt.Errorf("update question: %w", err)
	}

	if correct != nil {
		if _, err := tx.Exec(ctx,
			`INSERT INTO correct_answers (question_id, value)
			 VALUES ($1, $2)
			 ON CONFLICT (question_id) DO UPDATE SET value = EXCLUDED.value`,
			q.ID, *correct); err != nil {
			return fmt.Errorf("upsert correct answer: %w", err)
		}
		q.CorrectAnswer = correct
	} else if !q.QuestionType.NeedsCorrectAnswer() {
		// A question changed to written drops its stale canonical answer.
		if _, err := tx.Exec(ctx,
			`DELETE FROM correct_answers WHERE question_id = $1`, q.ID); err != nil {
			return fmt.Errorf("delete correct answer: %w", err)
		}
		q.CorrectAnswer = nil
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a question with its canonical answer when present.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	return scanQuestion(r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+`
		 FROM questions q
		 LEFT JOIN correct_answers ca ON ca.question_id = q.id
		 WHERE q.id = $1`, id))
}

// ListByQuiz retrieves all questions of a quiz ordered by position.
func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID int64) ([]model.Question, error) {
	return r.list(ctx,
		`SELECT `+questionColumns+`
		 FROM questions q
		 LEFT JOIN correct_answers ca ON ca.question_id = q.id
		 WHERE q.quiz_id = $1
		 ORDER BY q.position NULLS LAST, q.id`, quizID)
}

// ListByBank retrieves all questions of a question bank.
func (r *QuestionRepository) ListByBank(ctx context.Context, bankID int64) ([]model.Question, error) {
	return r.list(ctx,
		`SELECT `+questionColumns+`
		 FROM questions q
		 LEFT JOIN correct_answers ca ON ca.question_id = q.id
		 WHERE q.bank_id = $1
		 ORDER BY q.id`, bankID)
}

func (r *QuestionRepository) list(ctx context.Context, query string, arg any) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// CorrectValue returns the canonical answer for a question.
// Returns pgx.ErrNoRows when none is stored.
func (r *QuestionRepository) CorrectValue(ctx context.Context, questionID int64) (string, error) {
	var value string
	err := r.pool.QueryRow(ctx,
		`SELECT value FROM correct_answers WHERE question_id = $1`, questionID,
	).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// Delete removes a question; its canonical answer and answers cascade.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
