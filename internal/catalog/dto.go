// AngelaMos | 2026
// dto.go

package catalog

import (
	"time"
)

type CreateGradeRequest struct {
	Name         string `json:"name"          validate:"required,min=1,max=100"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

type CreateSubjectRequest struct {
	GradeID      string `json:"grade_id"      validate:"required,uuid"`
	Name         string `json:"name"          validate:"required,min=1,max=100"`
	Description  string `json:"description"   validate:"max=1000"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

type CreateTopicRequest struct {
	SubjectID    string `json:"subject_id"    validate:"required,uuid"`
	Name         string `json:"name"          validate:"required,min=1,max=100"`
	Description  string `json:"description"   validate:"max=1000"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

type CreateSectionRequest struct {
	TopicID      string `json:"topic_id"      validate:"required,uuid"`
	Name         string `json:"name"          validate:"required,min=1,max=100"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

type UpdateNodeRequest struct {
	Name         *string `json:"name,omitempty"          validate:"omitempty,min=1,max=100"`
	Description  *string `json:"description,omitempty"   validate:"omitempty,max=1000"`
	DisplayOrder *int    `json:"display_order,omitempty" validate:"omitempty,gte=0"`
}

type GradeResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SubjectResponse struct {
	ID           string    `json:"id"`
	GradeID      string    `json:"grade_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type TopicResponse struct {
	ID           string    `json:"id"`
	SubjectID    string    `json:"subject_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SectionResponse struct {
	ID           string    `json:"id"`
	TopicID      string    `json:"topic_id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toGradeResponse(g *Grade) GradeResponse {
	return GradeResponse{
		ID:           g.ID,
		Name:         g.Name,
		DisplayOrder: g.DisplayOrder,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

func toSubjectResponse(s *Subject) SubjectResponse {
	return SubjectResponse{
		ID:           s.ID,
		GradeID:      s.GradeID,
		Name:         s.Name,
		Description:  s.Description,
		DisplayOrder: s.DisplayOrder,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toTopicResponse(t *Topic) TopicResponse {
	return TopicResponse{
		ID:           t.ID,
		SubjectID:    t.SubjectID,
		Name:         t.Name,
		Description:  t.Description,
		DisplayOrder: t.DisplayOrder,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toSectionResponse(s *Section) SectionResponse {
	return SectionResponse{
		ID:           s.ID,
		TopicID:      s.TopicID,
		Name:         s.Name,
		DisplayOrder: s.DisplayOrder,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
