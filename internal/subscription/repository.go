// AngelaMos | 2026
// repository.go

package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brightpath-edu/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id string) (*Subscription, error)
	GetCurrentByUser(ctx context.Context, userID string) (*Subscription, error)
	Cancel(ctx context.Context, id string) error
	ToggleFreeze(ctx context.Context, id string) (string, error)
	ClaimDueTrials(ctx context.Context, now time.Time, limit int) ([]Subscription, error)
	ClearStaleChecks(ctx context.Context, now time.Time) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sub *Subscription) error {
	query := `
		INSERT INTO subscriptions (
			id, user_id, plan_type, billing_cycle, children_count,
			selected_subject, amount_paid, payment_reference, status,
			start_date, end_date, trial_end_date, next_check_at,
			auto_renew, card_last_four
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(
		ctx,
		query,
		sub.ID,
		sub.UserID,
		sub.PlanType,
		sub.BillingCycle,
		sub.ChildrenCount,
		sub.SelectedSubject,
		sub.AmountPaid,
		sub.PaymentReference,
		sub.Status,
		sub.StartDate,
		sub.EndDate,
		sub.TrialEndDate,
		sub.NextCheckAt,
		sub.AutoRenew,
		sub.CardLastFour,
	).Scan(&sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create subscription: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create subscription: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Subscription, error) {
	query := `SELECT * FROM subscriptions WHERE id = $1`

	var sub Subscription
	if err := r.db.GetContext(ctx, &sub, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subscription %s: %w", id, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	return &sub, nil
}

// GetCurrentByUser returns the user's most recent non-cancelled
// subscription, falling back to the most recent one of any status.
func (r *repository) GetCurrentByUser(
	ctx context.Context,
	userID string,
) (*Subscription, error) {
	query := `
		SELECT * FROM subscriptions
		WHERE user_id = $1
		ORDER BY (status != 'cancelled') DESC, created_at DESC
		LIMIT 1`

	var sub Subscription
	if err := r.db.GetContext(ctx, &sub, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subscription for user %s: %w", userID, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get current subscription: %w", err)
	}

	return &sub, nil
}

// Cancel is valid from any state and idempotent. Rows already
// cancelled are updated to the same values.
func (r *repository) Cancel(ctx context.Context, id string) error {
	query := `
		UPDATE subscriptions
		SET status = $2, auto_renew = false, next_check_at = NULL, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, StatusCancelled)
	if err != nil {
		return fmt.Errorf("cancel subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancel subscription rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("subscription %s: %w", id, core.ErrNotFound)
	}

	return nil
}

// ToggleFreeze flips active to frozen and back in one conditional
// statement. Any other status leaves the row untouched; the current
// status is returned either way.
func (r *repository) ToggleFreeze(
	ctx context.Context,
	id string,
) (string, error) {
	query := `
		UPDATE subscriptions
		SET status = CASE WHEN status = $2 THEN $3 ELSE $2 END,
		    updated_at = NOW()
		WHERE id = $1 AND status IN ($2, $3)
		RETURNING status`

	var status string
	err := r.db.GetContext(ctx, &status, query, id, StatusFrozen, StatusActive)
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("toggle freeze: %w", err)
	}

	sub, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	return sub.Status, nil
}

// ClaimDueTrials promotes due, still-eligible trials to active in one
// statement. Duplicate sweeps see no eligible rows and claim nothing.
func (r *repository) ClaimDueTrials(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]Subscription, error) {
	query := `
		UPDATE subscriptions
		SET status = $1, next_check_at = NULL, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM subscriptions
			WHERE next_check_at <= $2
			  AND status = $3
			  AND auto_renew = true
			ORDER BY next_check_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var claimed []Subscription
	err := r.db.SelectContext(ctx, &claimed, query, StatusActive, now, StatusTrial, limit)
	if err != nil {
		return nil, fmt.Errorf("claim due trials: %w", err)
	}

	return claimed, nil
}

// ClearStaleChecks drops next_check_at from due rows that are no
// longer eligible, so the sweeper stops reselecting them.
func (r *repository) ClearStaleChecks(ctx context.Context, now time.Time) error {
	query := `
		UPDATE subscriptions
		SET next_check_at = NULL, updated_at = NOW()
		WHERE next_check_at <= $1
		  AND NOT (status = $2 AND auto_renew = true)`

	if _, err := r.db.ExecContext(ctx, query, now, StatusTrial); err != nil {
		return fmt.Errorf("clear stale checks: %w", err)
	}

	return nil
}
