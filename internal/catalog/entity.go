// AngelaMos | 2026
// entity.go

package catalog

import (
	"time"
)

// The content tree is strict: every child references exactly one parent.
// Grade -> Subject -> Topic -> Section; questions hang off topics.

type Grade struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Subject struct {
	ID           string    `db:"id"`
	GradeID      string    `db:"grade_id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Topic struct {
	ID           string    `db:"id"`
	SubjectID    string    `db:"subject_id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Section struct {
	ID           string    `db:"id"`
	TopicID      string    `db:"topic_id"`
	Name         string    `db:"name"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
