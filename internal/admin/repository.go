// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/brightpath-edu/backend/internal/core"
)

type PlatformStats struct {
	TotalUsers          int `db:"total_users" json:"total_users"`
	SubscribedUsers     int `db:"subscribed_users" json:"subscribed_users"`
	ActiveSubscriptions int `db:"active_subscriptions" json:"active_subscriptions"`
	TrialSubscriptions  int `db:"trial_subscriptions" json:"trial_subscriptions"`
	TotalQuestions      int `db:"total_questions" json:"total_questions"`
	QuizzesInProgress   int `db:"quizzes_in_progress" json:"quizzes_in_progress"`
	QuoteRequests       int `db:"quote_requests" json:"quote_requests"`
}

type Repository interface {
	PlatformStats(ctx context.Context) (*PlatformStats, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) PlatformStats(ctx context.Context) (*PlatformStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL) AS total_users,
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL AND is_subscribed) AS subscribed_users,
			(SELECT COUNT(*) FROM subscriptions WHERE status = 'active') AS active_subscriptions,
			(SELECT COUNT(*) FROM subscriptions WHERE status = 'trial') AS trial_subscriptions,
			(SELECT COUNT(*) FROM questions) AS total_questions,
			(SELECT COUNT(*) FROM quiz_progress WHERE status = 'in_progress') AS quizzes_in_progress,
			(SELECT COUNT(*) FROM quote_requests) AS quote_requests`

	var stats PlatformStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("platform stats: %w", err)
	}

	return &stats, nil
}
