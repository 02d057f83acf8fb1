// AngelaMos | 2026
// service_test.go

package quiz

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath-edu/backend/internal/core"
)

type fakeRepo struct {
	rows map[string]*Progress
}

func newFakeRepo(rows ...*Progress) *fakeRepo {
	r := &fakeRepo{rows: map[string]*Progress{}}
	for _, row := range rows {
		r.rows[row.ID] = row
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, progress *Progress) error {
	r.rows[progress.ID] = progress
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Progress, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("quiz progress %s: %w", id, core.ErrNotFound)
	}
	copied := *row
	return &copied, nil
}

func (r *fakeRepo) GetActive(
	_ context.Context,
	userID, topicID string,
) (*Progress, error) {
	for _, row := range r.rows {
		if row.UserID == userID && row.TopicID == topicID && row.Status == StatusInProgress {
			copied := *row
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("active quiz progress: %w", core.ErrNotFound)
}

func (r *fakeRepo) ListByUser(_ context.Context, userID string) ([]Progress, error) {
	var out []Progress
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeRepo) RecordAnswer(_ context.Context, id string, correct bool) error {
	row, ok := r.rows[id]
	if !ok || row.Status != StatusInProgress {
		return fmt.Errorf("quiz progress %s not accepting answers: %w", id, core.ErrConflict)
	}
	row.QuestionsCompleted++
	if correct {
		row.QuestionsCorrect++
	}
	row.Score = float64(row.QuestionsCorrect) * 100 / float64(row.QuestionsCompleted)
	return nil
}

func (r *fakeRepo) Finish(
	_ context.Context,
	id, status string,
	timeSpentSeconds int,
) error {
	row, ok := r.rows[id]
	if !ok || row.Status != StatusInProgress {
		return fmt.Errorf("quiz progress %s is not in progress: %w", id, core.ErrConflict)
	}
	row.Status = status
	row.TimeSpentSeconds = timeSpentSeconds
	return nil
}

type fakeCounter struct {
	counts map[string]int
}

func (f *fakeCounter) CountByTopic(_ context.Context, topicID string) (int, error) {
	return f.counts[topicID], nil
}

func inProgress(id, userID, topicID string) *Progress {
	return &Progress{
		ID:      id,
		UserID:  userID,
		TopicID: topicID,
		Status:  StatusInProgress,
	}
}

func TestStart(t *testing.T) {
	ctx := context.Background()
	counter := &fakeCounter{counts: map[string]int{"topic-1": 12}}

	t.Run("creates a fresh run", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, counter)

		progress, err := svc.Start(ctx, "user-1", "topic-1")
		require.NoError(t, err)
		assert.Equal(t, StatusInProgress, progress.Status)
		assert.Equal(t, 12, progress.TotalQuestions)
		assert.NotEmpty(t, progress.ID)
	})

	t.Run("returns existing in_progress run", func(t *testing.T) {
		existing := inProgress("quiz-1", "user-1", "topic-1")
		repo := newFakeRepo(existing)
		svc := NewService(repo, counter)

		progress, err := svc.Start(ctx, "user-1", "topic-1")
		require.NoError(t, err)
		assert.Equal(t, "quiz-1", progress.ID)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("terminal run does not block a new one", func(t *testing.T) {
		done := inProgress("quiz-1", "user-1", "topic-1")
		done.Status = StatusCompleted
		repo := newFakeRepo(done)
		svc := NewService(repo, counter)

		progress, err := svc.Start(ctx, "user-1", "topic-1")
		require.NoError(t, err)
		assert.NotEqual(t, "quiz-1", progress.ID)
	})
}

func TestFinish(t *testing.T) {
	ctx := context.Background()
	counter := &fakeCounter{counts: map[string]int{}}

	t.Run("complete records time spent", func(t *testing.T) {
		repo := newFakeRepo(inProgress("quiz-1", "user-1", "topic-1"))
		svc := NewService(repo, counter)

		progress, err := svc.Complete(ctx, "user-1", "quiz-1", 300)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, progress.Status)
		assert.Equal(t, 300, progress.TimeSpentSeconds)
	})

	t.Run("abandon", func(t *testing.T) {
		repo := newFakeRepo(inProgress("quiz-1", "user-1", "topic-1"))
		svc := NewService(repo, counter)

		progress, err := svc.Abandon(ctx, "user-1", "quiz-1")
		require.NoError(t, err)
		assert.Equal(t, StatusAbandoned, progress.Status)
	})

	t.Run("other user's run is rejected", func(t *testing.T) {
		repo := newFakeRepo(inProgress("quiz-1", "user-1", "topic-1"))
		svc := NewService(repo, counter)

		_, err := svc.Complete(ctx, "user-2", "quiz-1", 300)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("double complete conflicts", func(t *testing.T) {
		repo := newFakeRepo(inProgress("quiz-1", "user-1", "topic-1"))
		svc := NewService(repo, counter)

		_, err := svc.Complete(ctx, "user-1", "quiz-1", 300)
		require.NoError(t, err)

		_, err = svc.Complete(ctx, "user-1", "quiz-1", 400)
		assert.ErrorIs(t, err, core.ErrConflict)
	})
}

func TestRecordAnswer(t *testing.T) {
	ctx := context.Background()
	counter := &fakeCounter{counts: map[string]int{}}

	t.Run("tracks correctness against active run", func(t *testing.T) {
		repo := newFakeRepo(inProgress("quiz-1", "user-1", "topic-1"))
		svc := NewService(repo, counter)

		require.NoError(t, svc.RecordAnswer(ctx, "user-1", "topic-1", "q-1", "", true, true))
		require.NoError(t, svc.RecordAnswer(ctx, "user-1", "topic-1", "q-2", "", true, false))

		row := repo.rows["quiz-1"]
		assert.Equal(t, 2, row.QuestionsCompleted)
		assert.Equal(t, 1, row.QuestionsCorrect)
		assert.InDelta(t, 50.0, row.Score, 0.001)
	})

	t.Run("explicit progress id", func(t *testing.T) {
		repo := newFakeRepo(inProgress("quiz-1", "user-1", "topic-1"))
		svc := NewService(repo, counter)

		require.NoError(t, svc.RecordAnswer(ctx, "user-1", "topic-1", "q-1", "quiz-1", true, true))
		assert.Equal(t, 1, repo.rows["quiz-1"].QuestionsCompleted)
	})

	t.Run("progress id owned by someone else", func(t *testing.T) {
		repo := newFakeRepo(inProgress("quiz-1", "user-1", "topic-1"))
		svc := NewService(repo, counter)

		err := svc.RecordAnswer(ctx, "user-2", "topic-1", "q-1", "quiz-1", true, true)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("ungraded submission counts toward completion only", func(t *testing.T) {
		repo := newFakeRepo(inProgress("quiz-1", "user-1", "topic-1"))
		svc := NewService(repo, counter)

		require.NoError(t, svc.RecordAnswer(ctx, "user-1", "topic-1", "q-1", "", false, false))

		row := repo.rows["quiz-1"]
		assert.Equal(t, 1, row.QuestionsCompleted)
		assert.Zero(t, row.QuestionsCorrect)
	})

	t.Run("no active run is accepted silently", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, counter)

		assert.NoError(t, svc.RecordAnswer(ctx, "user-1", "topic-1", "q-1", "", true, true))
		assert.Empty(t, repo.rows)
	})
}
