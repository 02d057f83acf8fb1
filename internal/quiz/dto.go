// AngelaMos | 2026
// dto.go

package quiz

import "time"

type StartQuizRequest struct {
	TopicID string `json:"topic_id" validate:"required,uuid"`
}

type CompleteQuizRequest struct {
	TimeSpentSeconds int `json:"time_spent_seconds" validate:"gte=0"`
}

type ProgressResponse struct {
	ID                 string     `json:"id"`
	TopicID            string     `json:"topic_id"`
	Status             string     `json:"status"`
	Score              float64    `json:"score"`
	QuestionsCompleted int        `json:"questions_completed"`
	QuestionsCorrect   int        `json:"questions_correct"`
	TotalQuestions     int        `json:"total_questions"`
	TimeSpentSeconds   int        `json:"time_spent_seconds"`
	StartedAt          time.Time  `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

func toProgressResponse(p *Progress) ProgressResponse {
	return ProgressResponse{
		ID:                 p.ID,
		TopicID:            p.TopicID,
		Status:             p.Status,
		Score:              p.Score,
		QuestionsCompleted: p.QuestionsCompleted,
		QuestionsCorrect:   p.QuestionsCorrect,
		TotalQuestions:     p.TotalQuestions,
		TimeSpentSeconds:   p.TimeSpentSeconds,
		StartedAt:          p.StartedAt,
		CompletedAt:        p.CompletedAt,
	}
}
