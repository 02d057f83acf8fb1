// AngelaMos | 2026
// repository.go

package question

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brightpath-edu/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, question *Question) error
	GetByID(ctx context.Context, id string) (*Question, error)
	ListByTopic(ctx context.Context, topicID string) ([]Question, error)
	Update(ctx context.Context, question *Question) error
	Delete(ctx context.Context, id string) error
	CountByTopic(ctx context.Context, topicID string) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, question *Question) error {
	query := `
		INSERT INTO questions (
			id, topic_id, section_id, type, content, options,
			correct_answer, explanation, image_url
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, question, query,
		question.ID,
		question.TopicID,
		question.SectionID,
		question.Type,
		question.Content,
		question.Options,
		question.CorrectAnswer,
		question.Explanation,
		question.ImageURL,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("create question: parent topic: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create question: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Question, error) {
	query := `
		SELECT id, topic_id, section_id, type, content, options,
		       correct_answer, explanation, image_url, created_at, updated_at
		FROM questions
		WHERE id = $1`

	var question Question
	err := r.db.GetContext(ctx, &question, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get question: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	return &question, nil
}

func (r *repository) ListByTopic(
	ctx context.Context,
	topicID string,
) ([]Question, error) {
	query := `
		SELECT id, topic_id, section_id, type, content, options,
		       correct_answer, explanation, image_url, created_at, updated_at
		FROM questions
		WHERE topic_id = $1
		ORDER BY created_at`

	var questions []Question
	if err := r.db.SelectContext(ctx, &questions, query, topicID); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return questions, nil
}

func (r *repository) Update(ctx context.Context, question *Question) error {
	query := `
		UPDATE questions
		SET content = $2, options = $3, correct_answer = $4,
		    explanation = $5, image_url = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &question.UpdatedAt, query,
		question.ID,
		question.Content,
		question.Options,
		question.CorrectAnswer,
		question.Explanation,
		question.ImageURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update question: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM questions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete question: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CountByTopic(
	ctx context.Context,
	topicID string,
) (int, error) {
	query := `SELECT COUNT(*) FROM questions WHERE topic_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, topicID); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}

	return count, nil
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
