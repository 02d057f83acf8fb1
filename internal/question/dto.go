// AngelaMos | 2026
// dto.go

package question

import (
	"time"
)

type CreateQuestionRequest struct {
	TopicID       string  `json:"topic_id"       validate:"required,uuid"`
	SectionID     *string `json:"section_id,omitempty" validate:"omitempty,uuid"`
	Type          string  `json:"type"           validate:"required,oneof=text click drag draw paint"`
	Content       string  `json:"content"        validate:"required,min=1"`
	Options       string  `json:"options"        validate:"max=10000"`
	CorrectAnswer *string `json:"correct_answer,omitempty" validate:"omitempty,max=10000"`
	Explanation   string  `json:"explanation"    validate:"max=10000"`
	ImageURL      *string `json:"image_url,omitempty" validate:"omitempty,max=2048"`
}

type UpdateQuestionRequest struct {
	Content       *string `json:"content,omitempty"        validate:"omitempty,min=1"`
	Options       *string `json:"options,omitempty"        validate:"omitempty,max=10000"`
	CorrectAnswer *string `json:"correct_answer,omitempty" validate:"omitempty,max=10000"`
	Explanation   *string `json:"explanation,omitempty"    validate:"omitempty,max=10000"`
	ImageURL      *string `json:"image_url,omitempty"      validate:"omitempty,max=2048"`
}

type SubmitAnswerRequest struct {
	Answer     string `json:"answer"`
	ProgressID string `json:"progress_id,omitempty" validate:"omitempty,uuid"`
}

type SubmitAnswerResponse struct {
	IsCorrect     bool   `json:"is_correct"`
	Graded        bool   `json:"graded"`
	Explanation   string `json:"explanation,omitempty"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
}

// QuestionResponse is the learner view: the correct answer is withheld.
type QuestionResponse struct {
	ID        string    `json:"id"`
	TopicID   string    `json:"topic_id"`
	SectionID *string   `json:"section_id,omitempty"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Options   string    `json:"options,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminQuestionResponse includes the answer key and explanation.
type AdminQuestionResponse struct {
	QuestionResponse
	CorrectAnswer *string `json:"correct_answer,omitempty"`
	Explanation   string  `json:"explanation,omitempty"`
}

func toQuestionResponse(q *Question) QuestionResponse {
	return QuestionResponse{
		ID:        q.ID,
		TopicID:   q.TopicID,
		SectionID: q.SectionID,
		Type:      q.Type,
		Content:   q.Content,
		Options:   q.Options,
		ImageURL:  q.ImageURL,
		CreatedAt: q.CreatedAt,
	}
}

func toAdminQuestionResponse(q *Question) AdminQuestionResponse {
	return AdminQuestionResponse{
		QuestionResponse: toQuestionResponse(q),
		CorrectAnswer:    q.CorrectAnswer,
		Explanation:      q.Explanation,
	}
}
