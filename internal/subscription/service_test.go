// AngelaMos | 2026
// service_test.go

package subscription

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath-edu/backend/internal/core"
	"github.com/brightpath-edu/backend/internal/user"
)

// fakeRepo mirrors the conditional-update semantics of the SQL
// repository in memory.
type fakeRepo struct {
	subs map[string]*Subscription
}

func newFakeRepo(subs ...*Subscription) *fakeRepo {
	r := &fakeRepo{subs: map[string]*Subscription{}}
	for _, sub := range subs {
		r.subs[sub.ID] = sub
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, sub *Subscription) error {
	r.subs[sub.ID] = sub
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Subscription, error) {
	sub, ok := r.subs[id]
	if !ok {
		return nil, fmt.Errorf("subscription %s: %w", id, core.ErrNotFound)
	}
	copied := *sub
	return &copied, nil
}

func (r *fakeRepo) GetCurrentByUser(
	_ context.Context,
	userID string,
) (*Subscription, error) {
	for _, sub := range r.subs {
		if sub.UserID == userID && sub.Status != StatusCancelled {
			copied := *sub
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("subscription for user %s: %w", userID, core.ErrNotFound)
}

func (r *fakeRepo) Cancel(_ context.Context, id string) error {
	sub, ok := r.subs[id]
	if !ok {
		return fmt.Errorf("subscription %s: %w", id, core.ErrNotFound)
	}
	sub.Status = StatusCancelled
	sub.AutoRenew = false
	sub.NextCheckAt = nil
	return nil
}

func (r *fakeRepo) ToggleFreeze(_ context.Context, id string) (string, error) {
	sub, ok := r.subs[id]
	if !ok {
		return "", fmt.Errorf("subscription %s: %w", id, core.ErrNotFound)
	}
	switch sub.Status {
	case StatusActive:
		sub.Status = StatusFrozen
	case StatusFrozen:
		sub.Status = StatusActive
	}
	return sub.Status, nil
}

func (r *fakeRepo) ClaimDueTrials(
	_ context.Context,
	now time.Time,
	limit int,
) ([]Subscription, error) {
	var claimed []Subscription
	for _, sub := range r.subs {
		if len(claimed) >= limit {
			break
		}
		due := sub.NextCheckAt != nil && !sub.NextCheckAt.After(now)
		if due && sub.Status == StatusTrial && sub.AutoRenew {
			sub.Status = StatusActive
			sub.NextCheckAt = nil
			claimed = append(claimed, *sub)
		}
	}
	return claimed, nil
}

func (r *fakeRepo) ClearStaleChecks(_ context.Context, now time.Time) error {
	for _, sub := range r.subs {
		due := sub.NextCheckAt != nil && !sub.NextCheckAt.After(now)
		if due && !(sub.Status == StatusTrial && sub.AutoRenew) {
			sub.NextCheckAt = nil
		}
	}
	return nil
}

// fakeUsers records SetSubscription calls; Cancel is the only path
// the lifecycle tests exercise.
type fakeUsers struct {
	user.Repository
	plans      map[string]string
	subscribed map[string]bool
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		plans:      map[string]string{},
		subscribed: map[string]bool{},
	}
}

func (f *fakeUsers) SetSubscription(
	_ context.Context,
	id, plan string,
	subscribed bool,
) error {
	f.plans[id] = plan
	f.subscribed[id] = subscribed
	return nil
}

func newTestService(repo Repository, users user.Repository) *Service {
	return NewService(
		nil,
		repo,
		users,
		nil,
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		7,
	)
}

func trialSub(id, userID string, nextCheck time.Time) *Subscription {
	trialEnd := nextCheck
	return &Subscription{
		ID:           id,
		UserID:       userID,
		PlanType:     PlanCombo,
		BillingCycle: CycleMonthly,
		Status:       StatusTrial,
		TrialEndDate: &trialEnd,
		NextCheckAt:  &trialEnd,
		AutoRenew:    true,
	}
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels own trial", func(t *testing.T) {
		repo := newFakeRepo(trialSub("sub-1", "user-1", time.Now().Add(time.Hour)))
		users := newFakeUsers()
		svc := newTestService(repo, users)

		sub, err := svc.Cancel(ctx, "sub-1", "user-1", false)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, sub.Status)
		assert.False(t, sub.AutoRenew)
		assert.Nil(t, sub.NextCheckAt)
		assert.False(t, users.subscribed["user-1"])
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		repo := newFakeRepo(trialSub("sub-1", "user-1", time.Now().Add(time.Hour)))
		svc := newTestService(repo, newFakeUsers())

		_, err := svc.Cancel(ctx, "sub-1", "user-1", false)
		require.NoError(t, err)

		sub, err := svc.Cancel(ctx, "sub-1", "user-1", false)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, sub.Status)
	})

	t.Run("other user is rejected", func(t *testing.T) {
		repo := newFakeRepo(trialSub("sub-1", "user-1", time.Now().Add(time.Hour)))
		svc := newTestService(repo, newFakeUsers())

		_, err := svc.Cancel(ctx, "sub-1", "user-2", false)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("admin cancels for any user", func(t *testing.T) {
		repo := newFakeRepo(trialSub("sub-1", "user-1", time.Now().Add(time.Hour)))
		svc := newTestService(repo, newFakeUsers())

		sub, err := svc.Cancel(ctx, "sub-1", "admin-1", true)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, sub.Status)
	})

	t.Run("unknown subscription", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), newFakeUsers())

		_, err := svc.Cancel(ctx, "missing", "user-1", false)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestToggleFreeze(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		before string
		after  string
	}{
		{"active freezes", StatusActive, StatusFrozen},
		{"frozen unfreezes", StatusFrozen, StatusActive},
		{"trial is left unchanged", StatusTrial, StatusTrial},
		{"cancelled is left unchanged", StatusCancelled, StatusCancelled},
		{"upcoming is left unchanged", StatusUpcoming, StatusUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(&Subscription{
				ID:     "sub-1",
				UserID: "user-1",
				Status: tt.before,
			})
			svc := newTestService(repo, newFakeUsers())

			sub, err := svc.ToggleFreeze(ctx, "sub-1")
			require.NoError(t, err)
			assert.Equal(t, tt.after, sub.Status)
		})
	}
}

func TestSweepTrialEnds(t *testing.T) {
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	t.Run("due trial promoted to active", func(t *testing.T) {
		repo := newFakeRepo(trialSub("sub-1", "user-1", past))
		svc := newTestService(repo, newFakeUsers())

		promoted, err := svc.SweepTrialEnds(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, 1, promoted)

		sub, err := repo.GetByID(ctx, "sub-1")
		require.NoError(t, err)
		assert.Equal(t, StatusActive, sub.Status)
		assert.Nil(t, sub.NextCheckAt)
	})

	t.Run("duplicate sweep is a no-op", func(t *testing.T) {
		repo := newFakeRepo(trialSub("sub-1", "user-1", past))
		svc := newTestService(repo, newFakeUsers())

		promoted, err := svc.SweepTrialEnds(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, 1, promoted)

		promoted, err = svc.SweepTrialEnds(ctx, 100)
		require.NoError(t, err)
		assert.Zero(t, promoted)
	})

	t.Run("future trial not touched", func(t *testing.T) {
		repo := newFakeRepo(trialSub("sub-1", "user-1", future))
		svc := newTestService(repo, newFakeUsers())

		promoted, err := svc.SweepTrialEnds(ctx, 100)
		require.NoError(t, err)
		assert.Zero(t, promoted)

		sub, err := repo.GetByID(ctx, "sub-1")
		require.NoError(t, err)
		assert.Equal(t, StatusTrial, sub.Status)
	})

	t.Run("cancelled during trial stays cancelled", func(t *testing.T) {
		sub := trialSub("sub-1", "user-1", past)
		repo := newFakeRepo(sub)
		svc := newTestService(repo, newFakeUsers())

		_, err := svc.Cancel(ctx, "sub-1", "user-1", false)
		require.NoError(t, err)

		promoted, err := svc.SweepTrialEnds(ctx, 100)
		require.NoError(t, err)
		assert.Zero(t, promoted)

		got, err := repo.GetByID(ctx, "sub-1")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)
	})

	t.Run("auto_renew off is cleared without promotion", func(t *testing.T) {
		sub := trialSub("sub-1", "user-1", past)
		sub.AutoRenew = false
		repo := newFakeRepo(sub)
		svc := newTestService(repo, newFakeUsers())

		promoted, err := svc.SweepTrialEnds(ctx, 100)
		require.NoError(t, err)
		assert.Zero(t, promoted)

		got, err := repo.GetByID(ctx, "sub-1")
		require.NoError(t, err)
		assert.Equal(t, StatusTrial, got.Status)
		assert.Nil(t, got.NextCheckAt)
	})
}
