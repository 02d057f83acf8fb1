// AngelaMos | 2026
// repository.go

package quote

import (
	"context"
	"fmt"

	"github.com/brightpath-edu/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, request *Request) error
	List(ctx context.Context, limit, offset int) ([]Request, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, request *Request) error {
	query := `
		INSERT INTO quote_requests (id, name, email, organization, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowxContext(
		ctx,
		query,
		request.ID,
		request.Name,
		request.Email,
		request.Organization,
		request.Message,
	).Scan(&request.CreatedAt)
	if err != nil {
		return fmt.Errorf("create quote request: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	limit, offset int,
) ([]Request, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM quote_requests`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, fmt.Errorf("count quote requests: %w", err)
	}

	query := `
		SELECT * FROM quote_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var rows []Request
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list quote requests: %w", err)
	}

	return rows, total, nil
}
