// AngelaMos | 2026
// repository.go

package quiz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/brightpath-edu/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, progress *Progress) error
	GetByID(ctx context.Context, id string) (*Progress, error)
	GetActive(ctx context.Context, userID, topicID string) (*Progress, error)
	ListByUser(ctx context.Context, userID string) ([]Progress, error)
	RecordAnswer(ctx context.Context, id string, correct bool) error
	Finish(ctx context.Context, id, status string, timeSpentSeconds int) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, progress *Progress) error {
	query := `
		INSERT INTO quiz_progress (
			id, user_id, topic_id, status, score,
			questions_completed, questions_correct, total_questions,
			time_spent_seconds, started_at
		)
		VALUES ($1, $2, $3, $4, 0, 0, 0, $5, 0, NOW())
		RETURNING started_at, created_at, updated_at`

	err := r.db.QueryRowxContext(
		ctx,
		query,
		progress.ID,
		progress.UserID,
		progress.TopicID,
		progress.Status,
		progress.TotalQuestions,
	).Scan(&progress.StartedAt, &progress.CreatedAt, &progress.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create quiz progress: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Progress, error) {
	query := `SELECT * FROM quiz_progress WHERE id = $1`

	var progress Progress
	if err := r.db.GetContext(ctx, &progress, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quiz progress %s: %w", id, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get quiz progress: %w", err)
	}

	return &progress, nil
}

// GetActive returns the user's in_progress row for a topic, if any.
func (r *repository) GetActive(
	ctx context.Context,
	userID, topicID string,
) (*Progress, error) {
	query := `
		SELECT * FROM quiz_progress
		WHERE user_id = $1 AND topic_id = $2 AND status = $3
		ORDER BY started_at DESC
		LIMIT 1`

	var progress Progress
	err := r.db.GetContext(ctx, &progress, query, userID, topicID, StatusInProgress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("active quiz progress: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get active quiz progress: %w", err)
	}

	return &progress, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Progress, error) {
	query := `
		SELECT * FROM quiz_progress
		WHERE user_id = $1
		ORDER BY started_at DESC`

	var rows []Progress
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list quiz progress: %w", err)
	}

	return rows, nil
}

// RecordAnswer bumps the counters and recomputes the score in one
// statement. Only in_progress rows accept answers.
func (r *repository) RecordAnswer(
	ctx context.Context,
	id string,
	correct bool,
) error {
	query := `
		UPDATE quiz_progress
		SET questions_completed = questions_completed + 1,
		    questions_correct = questions_correct + CASE WHEN $2 THEN 1 ELSE 0 END,
		    score = ROUND(
		        (questions_correct + CASE WHEN $2 THEN 1 ELSE 0 END) * 100.0
		        / (questions_completed + 1), 2),
		    updated_at = NOW()
		WHERE id = $1 AND status = $3`

	result, err := r.db.ExecContext(ctx, query, id, correct, StatusInProgress)
	if err != nil {
		return fmt.Errorf("record answer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("record answer rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("quiz progress %s not accepting answers: %w", id, core.ErrConflict)
	}

	return nil
}

// Finish moves an in_progress row to a terminal status. A row already
// terminal is left untouched and reported as a conflict.
func (r *repository) Finish(
	ctx context.Context,
	id, status string,
	timeSpentSeconds int,
) error {
	query := `
		UPDATE quiz_progress
		SET status = $2,
		    time_spent_seconds = $3,
		    completed_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1 AND status = $4`

	result, err := r.db.ExecContext(
		ctx,
		query,
		id,
		status,
		timeSpentSeconds,
		StatusInProgress,
	)
	if err != nil {
		return fmt.Errorf("finish quiz progress: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish quiz progress rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("quiz progress %s is not in progress: %w", id, core.ErrConflict)
	}

	return nil
}
