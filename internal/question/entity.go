// AngelaMos | 2026
// entity.go

package question

import (
	"time"
)

const (
	TypeText  = "text"
	TypeClick = "click"
	TypeDrag  = "drag"
	TypeDraw  = "draw"
	TypePaint = "paint"
)

func ValidType(questionType string) bool {
	switch questionType {
	case TypeText, TypeClick, TypeDrag, TypeDraw, TypePaint:
		return true
	}
	return false
}

// AutoGradable reports whether answers of this type can be compared
// mechanically. Draw and paint submissions are reviewed, not graded.
func AutoGradable(questionType string) bool {
	switch questionType {
	case TypeText, TypeClick, TypeDrag:
		return true
	}
	return false
}

type Question struct {
	ID            string     `db:"id"`
	TopicID       string     `db:"topic_id"`
	SectionID     *string    `db:"section_id"`
	Type          string     `db:"type"`
	Content       string     `db:"content"`
	Options       string     `db:"options"`
	CorrectAnswer *string    `db:"correct_answer"`
	Explanation   string     `db:"explanation"`
	ImageURL      *string    `db:"image_url"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}
