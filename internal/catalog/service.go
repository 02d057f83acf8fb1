// AngelaMos | 2026
// service.go

package catalog

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateGrade(
	ctx context.Context,
	req CreateGradeRequest,
) (*Grade, error) {
	grade := &Grade{
		ID:           uuid.New().String(),
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
	}

	if err := s.repo.CreateGrade(ctx, grade); err != nil {
		return nil, err
	}

	return grade, nil
}

func (s *Service) GetGrade(ctx context.Context, id string) (*Grade, error) {
	return s.repo.GetGrade(ctx, id)
}

func (s *Service) ListGrades(ctx context.Context) ([]Grade, error) {
	return s.repo.ListGrades(ctx)
}

func (s *Service) UpdateGrade(
	ctx context.Context,
	id string,
	req UpdateNodeRequest,
) (*Grade, error) {
	grade, err := s.repo.GetGrade(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		grade.Name = *req.Name
	}
	if req.DisplayOrder != nil {
		grade.DisplayOrder = *req.DisplayOrder
	}

	if err := s.repo.UpdateGrade(ctx, grade); err != nil {
		return nil, err
	}

	return grade, nil
}

func (s *Service) DeleteGrade(ctx context.Context, id string) error {
	return s.repo.DeleteGrade(ctx, id)
}

func (s *Service) CreateSubject(
	ctx context.Context,
	req CreateSubjectRequest,
) (*Subject, error) {
	subject := &Subject{
		ID:           uuid.New().String(),
		GradeID:      req.GradeID,
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}

	if err := s.repo.CreateSubject(ctx, subject); err != nil {
		return nil, err
	}

	return subject, nil
}

func (s *Service) GetSubject(
	ctx context.Context,
	id string,
) (*Subject, error) {
	return s.repo.GetSubject(ctx, id)
}

func (s *Service) ListSubjects(
	ctx context.Context,
	gradeID string,
) ([]Subject, error) {
	return s.repo.ListSubjects(ctx, gradeID)
}

func (s *Service) UpdateSubject(
	ctx context.Context,
	id string,
	req UpdateNodeRequest,
) (*Subject, error) {
	subject, err := s.repo.GetSubject(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Description != nil {
		subject.Description = *req.Description
	}
	if req.DisplayOrder != nil {
		subject.DisplayOrder = *req.DisplayOrder
	}

	if err := s.repo.UpdateSubject(ctx, subject); err != nil {
		return nil, err
	}

	return subject, nil
}

func (s *Service) DeleteSubject(ctx context.Context, id string) error {
	return s.repo.DeleteSubject(ctx, id)
}

func (s *Service) CreateTopic(
	ctx context.Context,
	req CreateTopicRequest,
) (*Topic, error) {
	topic := &Topic{
		ID:           uuid.New().String(),
		SubjectID:    req.SubjectID,
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}

	if err := s.repo.CreateTopic(ctx, topic); err != nil {
		return nil, err
	}

	return topic, nil
}

func (s *Service) GetTopic(ctx context.Context, id string) (*Topic, error) {
	return s.repo.GetTopic(ctx, id)
}

func (s *Service) ListTopics(
	ctx context.Context,
	subjectID string,
) ([]Topic, error) {
	return s.repo.ListTopics(ctx, subjectID)
}

func (s *Service) UpdateTopic(
	ctx context.Context,
	id string,
	req UpdateNodeRequest,
) (*Topic, error) {
	topic, err := s.repo.GetTopic(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		topic.Name = *req.Name
	}
	if req.Description != nil {
		topic.Description = *req.Description
	}
	if req.DisplayOrder != nil {
		topic.DisplayOrder = *req.DisplayOrder
	}

	if err := s.repo.UpdateTopic(ctx, topic); err != nil {
		return nil, err
	}

	return topic, nil
}

func (s *Service) DeleteTopic(ctx context.Context, id string) error {
	return s.repo.DeleteTopic(ctx, id)
}

func (s *Service) CreateSection(
	ctx context.Context,
	req CreateSectionRequest,
) (*Section, error) {
	section := &Section{
		ID:           uuid.New().String(),
		TopicID:      req.TopicID,
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
	}

	if err := s.repo.CreateSection(ctx, section); err != nil {
		return nil, err
	}

	return section, nil
}

func (s *Service) GetSection(
	ctx context.Context,
	id string,
) (*Section, error) {
	return s.repo.GetSection(ctx, id)
}

func (s *Service) ListSections(
	ctx context.Context,
	topicID string,
) ([]Section, error) {
	return s.repo.ListSections(ctx, topicID)
}

func (s *Service) UpdateSection(
	ctx context.Context,
	id string,
	req UpdateNodeRequest,
) (*Section, error) {
	section, err := s.repo.GetSection(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		section.Name = *req.Name
	}
	if req.DisplayOrder != nil {
		section.DisplayOrder = *req.DisplayOrder
	}

	if err := s.repo.UpdateSection(ctx, section); err != nil {
		return nil, err
	}

	return section, nil
}

func (s *Service) DeleteSection(ctx context.Context, id string) error {
	return s.repo.DeleteSection(ctx, id)
}
