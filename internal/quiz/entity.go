// AngelaMos | 2026
// entity.go

package quiz

import "time"

const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusAbandoned  = "abandoned"
)

// Progress tracks one user's run through one topic's questions.
type Progress struct {
	ID                 string     `db:"id"`
	UserID             string     `db:"user_id"`
	TopicID            string     `db:"topic_id"`
	Status             string     `db:"status"`
	Score              float64    `db:"score"`
	QuestionsCompleted int        `db:"questions_completed"`
	QuestionsCorrect   int        `db:"questions_correct"`
	TotalQuestions     int        `db:"total_questions"`
	TimeSpentSeconds   int        `db:"time_spent_seconds"`
	StartedAt          time.Time  `db:"started_at"`
	CompletedAt        *time.Time `db:"completed_at"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

func (p *Progress) Terminal() bool {
	return p.Status == StatusCompleted || p.Status == StatusAbandoned
}
