package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizcraft/quizcraft-backend/internal/model"
)

// QuizRepository handles quiz data access.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

const quizColumns = `id, title, description, creator_id, start_time, end_time,
	duration_hours, max_attempts, max_participants, is_published, quiz_type,
	created_at, updated_at`

func scanQuiz(row interface{ Scan(...any) error }) (*model.Quiz, error) {
	q := &model.Quiz{}
	err := row.Scan(&q.ID, &q.Title, &q.Description, &q.CreatorID, &q.StartTime,
		&q.EndTime, &q.DurationHours, &q.MaxAttempts, &q.MaxParticipants,
		&q.IsPublished, &q.QuizType, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Create inserts a new quiz.
func (r *QuizRepository) Create(ctx context.Context, q *model.Quiz) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (title, description, creator_id, start_time, end_time,
		                      duration_hours, max_attempts, max_participants, is_published, quiz_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		q.Title, q.Description, q.CreatorID, q.StartTime, q.EndTime,
		q.DurationHours, q.MaxAttempts, q.MaxParticipants, q.IsPublished, q.QuizType,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// GetByID retrieves a quiz by id.
func (r *QuizRepository) GetByID(ctx context.Context, id int64) (*model.Quiz, error) {
	return scanQuiz(r.pool.QueryRow(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, id))
}

// ListByCreator retrieves all quizzes owned by a teacher.
func (r *QuizRepository) ListByCreator(ctx context.Context, creatorID int64) ([]model.Quiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+quizColumns+` FROM quizzes
		 WHERE creator_id = $1
		 ORDER BY created_at DESC`, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, *q)
	}
	return quizzes, rows.Err()
}

// Update persists all mutable quiz fields.
func (r *QuizRepository) Update(ctx context.Context, q *model.Quiz) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE quizzes
		 SET title = $1, description = $2, start_time = $3, end_time = $4,
		     duration_hours = $5, max_attempts = $6, max_participants = $7,
		     is_published = $8, quiz_type = $9, updated_at = NOW()
		 WHERE id = $10`,
		q.Title, q.Description, q.StartTime, q.EndTime, q.DurationHours,
		q.MaxAttempts, q.MaxParticipants, q.IsPublished, q.QuizType, q.ID)
	return err
}

// Delete removes a quiz; questions and attempts cascade at the schema level.
func (r *QuizRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	return err
}
