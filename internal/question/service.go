// AngelaMos | 2026
// service.go

package question

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/brightpath-edu/backend/internal/core"
)

// ProgressRecorder persists a graded submission into the learner's
// quiz progress. Implemented by the quiz service; wired in main.
type ProgressRecorder interface {
	RecordAnswer(
		ctx context.Context,
		userID, topicID, questionID, progressID string,
		graded, correct bool,
	) error
}

type Service struct {
	repo     Repository
	progress ProgressRecorder
}

func NewService(repo Repository, progress ProgressRecorder) *Service {
	return &Service{repo: repo, progress: progress}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateQuestionRequest,
) (*Question, error) {
	if err := validateAnswerShape(req.Type, req.CorrectAnswer); err != nil {
		return nil, err
	}

	question := &Question{
		ID:            uuid.New().String(),
		TopicID:       req.TopicID,
		SectionID:     req.SectionID,
		Type:          req.Type,
		Content:       req.Content,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		ImageURL:      req.ImageURL,
	}

	if err := s.repo.Create(ctx, question); err != nil {
		return nil, err
	}

	return question, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Question, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByTopic(
	ctx context.Context,
	topicID string,
) ([]Question, error) {
	return s.repo.ListByTopic(ctx, topicID)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateQuestionRequest,
) (*Question, error) {
	question, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		question.Content = *req.Content
	}
	if req.Options != nil {
		question.Options = *req.Options
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = req.CorrectAnswer
	}
	if req.Explanation != nil {
		question.Explanation = *req.Explanation
	}
	if req.ImageURL != nil {
		question.ImageURL = req.ImageURL
	}

	if err := validateAnswerShape(question.Type, question.CorrectAnswer); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, question); err != nil {
		return nil, err
	}

	return question, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// SubmitAnswer grades a submission and records the verdict in the
// learner's progress. Draw and paint submissions are recorded without
// a verdict.
func (s *Service) SubmitAnswer(
	ctx context.Context,
	userID, questionID string,
	req SubmitAnswerRequest,
) (*SubmitAnswerResponse, error) {
	question, err := s.repo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	var correctAnswerRaw string
	if question.CorrectAnswer != nil {
		correctAnswerRaw = *question.CorrectAnswer
	}

	isCorrect, gradeErr := Grade(question.Type, correctAnswerRaw, req.Answer)

	graded := gradeErr == nil
	if gradeErr != nil && !errors.Is(gradeErr, ErrNotAutoGradable) {
		return nil, gradeErr
	}

	if s.progress != nil {
		if err := s.progress.RecordAnswer(
			ctx,
			userID,
			question.TopicID,
			question.ID,
			req.ProgressID,
			graded,
			isCorrect,
		); err != nil {
			return nil, fmt.Errorf("record answer: %w", err)
		}
	}

	resp := &SubmitAnswerResponse{
		IsCorrect:   isCorrect,
		Graded:      graded,
		Explanation: question.Explanation,
	}
	if graded {
		resp.CorrectAnswer = correctAnswerRaw
	}

	return resp, nil
}

// validateAnswerShape enforces the write-time contract: gradable types
// must carry a parseable answer key.
func validateAnswerShape(questionType string, correctAnswer *string) error {
	if !AutoGradable(questionType) {
		return nil
	}

	if correctAnswer == nil {
		return fmt.Errorf(
			"question of type %s requires a correct answer: %w",
			questionType,
			core.ErrInvalidInput,
		)
	}

	if _, err := ParseAnswerKey(questionType, *correctAnswer); err != nil {
		return fmt.Errorf("%v: %w", err, core.ErrInvalidInput)
	}

	return nil
}
