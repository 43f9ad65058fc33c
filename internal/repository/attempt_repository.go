package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizcraft/quizcraft-backend/internal/apperr"
	"github.com/quizcraft/quizcraft-backend/internal/model"
)

// AttemptRepository handles quiz attempt data access.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

const attemptColumns = `id, user_id, quiz_id, started_at, ended_at, score, is_submitted, created_at, updated_at`

func scanAttempt(row interface{ Scan(...any) error }) (*model.QuizAttempt, error) {
	a := &model.QuizAttempt{}
	err := row.Scan(&a.ID, &a.UserID, &a.QuizID, &a.StartedAt, &a.EndedAt,
		&a.Score, &a.IsSubmitted, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateWithinQuota inserts an attempt after re-checking max_attempts and
// max_participants under a row lock on the quiz. Locking the quiz row
// serializes concurrent creates for the same quiz, so two requests racing
// past the count checks cannot both commit.
func (r *AttemptRepository) CreateWithinQuota(ctx context.Context, a *model.QuizAttempt) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var maxAttempts int
	var maxParticipants *int
	err = tx.QueryRow(ctx,
		`SELECT max_attempts, max_participants FROM quizzes WHERE id = $1 FOR UPDATE`,
		a.QuizID,
	).Scan(&maxAttempts, &maxParticipants)
	if err != nil {
		return fmt.Errorf("lock quiz: %w", err)
	}

	var existing int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM quiz_attempts WHERE user_id = $1 AND quiz_id = $2`,
		a.UserID, a.QuizID,
	).Scan(&existing)
	if err != nil {
		return fmt.Errorf("count attempts: %w", err)
	}
	if existing >= maxAttempts {
		return apperr.New(apperr.StateConflict, "You have reached the maximum number of attempts")
	}

	if maxParticipants != nil {
		var participants int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(DISTINCT user_id) FROM quiz_attempts WHERE quiz_id = $1`,
			a.QuizID,
		).Scan(&participants)
		if err != nil {
			return fmt.Errorf("count participants: %w", err)
		}
		// An existing participant starting another attempt does not
		// consume a new seat.
		if existing == 0 && participants >= *maxParticipants {
			return apperr.New(apperr.Forbidden, "Max participants reached for this quiz")
		}
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO quiz_attempts (user_id, quiz_id, started_at, ended_at, score, is_submitted)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		a.UserID, a.QuizID, a.StartedAt, a.EndedAt, a.Score, a.IsSubmitted,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByQuiz retrieves an attempt by id scoped to a quiz (teacher view).
func (r *AttemptRepository) GetByQuiz(ctx context.Context, id, quizID int64) (*model.QuizAttempt, error) {
	return scanAttempt(r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM quiz_attempts
		 WHERE id = $1 AND quiz_id = $2`, id, quizID))
}

// GetByQuizAndUser retrieves an attempt by id scoped to a quiz and its
// owning student.
func (r *AttemptRepository) GetByQuizAndUser(ctx context.Context, id, quizID, userID int64) (*model.QuizAttempt, error) {
	return scanAttempt(r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM quiz_attempts
		 WHERE id = $1 AND quiz_id = $2 AND user_id = $3`, id, quizID, userID))
}

// ListByQuiz retrieves all attempts on a quiz.
func (r *AttemptRepository) ListByQuiz(ctx context.Context, quizID int64) ([]model.QuizAttempt, error) {
	return r.list(ctx,
		`SELECT `+attemptColumns+` FROM quiz_attempts
		 WHERE quiz_id = $1 ORDER BY started_at DESC`, quizID)
}

// ListByQuizAndUser retrieves a student's attempts on a quiz.
func (r *AttemptRepository) ListByQuizAndUser(ctx context.Context, quizID, userID int64) ([]model.QuizAttempt, error) {
	return r.list(ctx,
		`SELECT `+attemptColumns+` FROM quiz_attempts
		 WHERE quiz_id = $1 AND user_id = $2 ORDER BY started_at DESC`, quizID, userID)
}

func (r *AttemptRepository) list(ctx context.Context, query string, args ...any) ([]model.QuizAttempt, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.QuizAttempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, *a)
	}
	return attempts, rows.Err()
}

// ListIDsByQuiz retrieves attempt ids for the teacher quiz view.
func (r *AttemptRepository) ListIDsByQuiz(ctx context.Context, quizID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM quiz_attempts WHERE quiz_id = $1 ORDER BY id`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Update persists score and is_submitted. The WHERE clause refuses to
// touch a submitted attempt so the terminal state is enforced in the
// store as well as in the service.
func (r *AttemptRepository) Update(ctx context.Context, a *model.QuizAttempt) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE quiz_attempts
		 SET score = $1, is_submitted = $2, updated_at = NOW()
		 WHERE id = $3 AND is_submitted = FALSE`,
		a.Score, a.IsSubmitted, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.StateConflict, "Attempt has already been submitted")
	}
	return nil
}

// Delete removes an attempt; its answers cascade at the schema level.
func (r *AttemptRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM quiz_attempts WHERE id = $1`, id)
	return err
}
