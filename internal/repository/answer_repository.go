package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizcraft/quizcraft-backend/internal/apperr"
	"github.com/quizcraft/quizcraft-backend/internal/model"
)

// AnswerRepository handles submitted answer data access.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

const answerColumns = `id, question_id, quiz_attempt_id, content, points_awarded, created_at, updated_at`

func scanAnswer(row interface{ Scan(...any) error }) (*model.Answer, error) {
	a := &model.Answer{}
	err := row.Scan(&a.ID, &a.QuestionID, &a.AttemptID, &a.Content,
		&a.PointsAwarded, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Upsert inserts an answer or, when one already exists for the same
// attempt and question, replaces its content and provisional points.
// The unique constraint on (quiz_attempt_id, question_id) makes the
// later write win even under concurrent submissions. The attempt row
// is share-locked for the duration of the write, so a submit racing
// this call either waits or has already flipped is_submitted and the
// write is refused.
func (r *AnswerRepository) Upsert(ctx context.Context, a *model.Answer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var submitted bool
	err = tx.QueryRow(ctx,
		`SELECT is_submitted FROM quiz_attempts WHERE id = $1 FOR SHARE`,
		a.AttemptID,
	).Scan(&submitted)
	if err != nil {
		return fmt.Errorf("lock attempt: %w", err)
	}
	if submitted {
		return apperr.New(apperr.StateConflict, "Attempt has already been submitted and cannot be updated")
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO answers (question_id, quiz_attempt_id, content, points_awarded)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (quiz_attempt_id, question_id)
		 DO UPDATE SET content = EXCLUDED.content,
		               points_awarded = EXCLUDED.points_awarded,
		               updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		a.QuestionID, a.AttemptID, a.Content, a.PointsAwarded,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert answer: %w", err)
	}

	return tx.Commit(ctx)
}

// Get retrieves the answer for a question within an attempt.
func (r *AnswerRepository) Get(ctx context.Context, attemptID, questionID int64) (*model.Answer, error) {
	return scanAnswer(r.pool.QueryRow(ctx,
		`SELECT `+answerColumns+` FROM answers
		 WHERE quiz_attempt_id = $1 AND question_id = $2`, attemptID, questionID))
}

// ListByAttempt retrieves all answers of an attempt.
func (r *AnswerRepository) ListByAttempt(ctx context.Context, attemptID int64) ([]model.Answer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+answerColumns+` FROM answers
		 WHERE quiz_attempt_id = $1
		 ORDER BY question_id`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		answers = append(answers, *a)
	}
	return answers, rows.Err()
}

// SetPointsAwarded persists the score of a single answer.
func (r *AnswerRepository) SetPointsAwarded(ctx context.Context, answerID int64, points float64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE answers SET points_awarded = $1, updated_at = NOW() WHERE id = $2`,
		points, answerID)
	return err
}

// Delete removes the answer for a question within an attempt.
func (r *AnswerRepository) Delete(ctx context.Context, attemptID, questionID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM answers WHERE quiz_attempt_id = $1 AND question_id = $2`,
		attemptID, questionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
