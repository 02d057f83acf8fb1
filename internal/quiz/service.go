// AngelaMos | 2026
// service.go

package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/brightpath-edu/backend/internal/core"
)

// QuestionCounter reports how many questions a topic holds. Satisfied
// by the question repository.
type QuestionCounter interface {
	CountByTopic(ctx context.Context, topicID string) (int, error)
}

type Service struct {
	repo      Repository
	questions QuestionCounter
}

func NewService(repo Repository, questions QuestionCounter) *Service {
	return &Service{repo: repo, questions: questions}
}

// Start opens a progress row for the topic. If the user already has an
// in_progress run on that topic it is returned instead of a new one.
func (s *Service) Start(
	ctx context.Context,
	userID, topicID string,
) (*Progress, error) {
	existing, err := s.repo.GetActive(ctx, userID, topicID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	total, err := s.questions.CountByTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}

	progress := &Progress{
		ID:             uuid.New().String(),
		UserID:         userID,
		TopicID:        topicID,
		Status:         StatusInProgress,
		TotalQuestions: total,
	}

	if err := s.repo.Create(ctx, progress); err != nil {
		return nil, err
	}

	return progress, nil
}

func (s *Service) Complete(
	ctx context.Context,
	userID, progressID string,
	timeSpentSeconds int,
) (*Progress, error) {
	return s.finish(ctx, userID, progressID, StatusCompleted, timeSpentSeconds)
}

func (s *Service) Abandon(
	ctx context.Context,
	userID, progressID string,
) (*Progress, error) {
	return s.finish(ctx, userID, progressID, StatusAbandoned, 0)
}

func (s *Service) finish(
	ctx context.Context,
	userID, progressID, status string,
	timeSpentSeconds int,
) (*Progress, error) {
	progress, err := s.repo.GetByID(ctx, progressID)
	if err != nil {
		return nil, err
	}
	if progress.UserID != userID {
		return nil, fmt.Errorf("quiz progress %s: %w", progressID, core.ErrForbidden)
	}

	if timeSpentSeconds == 0 {
		timeSpentSeconds = progress.TimeSpentSeconds
	}

	if err := s.repo.Finish(ctx, progressID, status, timeSpentSeconds); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, progressID)
}

func (s *Service) ListMine(
	ctx context.Context,
	userID string,
) ([]Progress, error) {
	return s.repo.ListByUser(ctx, userID)
}

// RecordAnswer attributes a graded submission to the caller's progress
// row. Ungraded types still count toward completion. Submissions made
// outside a quiz run are accepted and simply not tracked.
func (s *Service) RecordAnswer(
	ctx context.Context,
	userID, topicID, questionID, progressID string,
	graded, correct bool,
) error {
	var progress *Progress
	var err error

	if progressID != "" {
		progress, err = s.repo.GetByID(ctx, progressID)
		if err != nil {
			return err
		}
		if progress.UserID != userID {
			return fmt.Errorf("quiz progress %s: %w", progressID, core.ErrForbidden)
		}
	} else {
		progress, err = s.repo.GetActive(ctx, userID, topicID)
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	return s.repo.RecordAnswer(ctx, progress.ID, graded && correct)
}
