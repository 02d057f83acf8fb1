// AngelaMos | 2026
// repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brightpath-edu/backend/internal/core"
)

type Repository interface {
	CreateGrade(ctx context.Context, grade *Grade) error
	GetGrade(ctx context.Context, id string) (*Grade, error)
	ListGrades(ctx context.Context) ([]Grade, error)
	UpdateGrade(ctx context.Context, grade *Grade) error
	DeleteGrade(ctx context.Context, id string) error

	CreateSubject(ctx context.Context, subject *Subject) error
	GetSubject(ctx context.Context, id string) (*Subject, error)
	ListSubjects(ctx context.Context, gradeID string) ([]Subject, error)
	UpdateSubject(ctx context.Context, subject *Subject) error
	DeleteSubject(ctx context.Context, id string) error

	CreateTopic(ctx context.Context, topic *Topic) error
	GetTopic(ctx context.Context, id string) (*Topic, error)
	ListTopics(ctx context.Context, subjectID string) ([]Topic, error)
	UpdateTopic(ctx context.Context, topic *Topic) error
	DeleteTopic(ctx context.Context, id string) error

	CreateSection(ctx context.Context, section *Section) error
	GetSection(ctx context.Context, id string) (*Section, error)
	ListSections(ctx context.Context, topicID string) ([]Section, error)
	UpdateSection(ctx context.Context, section *Section) error
	DeleteSection(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CreateGrade(ctx context.Context, grade *Grade) error {
	query := `
		INSERT INTO grades (id, name, display_order)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, grade, query,
		grade.ID,
		grade.Name,
		grade.DisplayOrder,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create grade: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create grade: %w", err)
	}

	return nil
}

func (r *repository) GetGrade(ctx context.Context, id string) (*Grade, error) {
	query := `
		SELECT id, name, display_order, created_at, updated_at
		FROM grades
		WHERE id = $1`

	var grade Grade
	err := r.db.GetContext(ctx, &grade, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get grade: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get grade: %w", err)
	}

	return &grade, nil
}

func (r *repository) ListGrades(ctx context.Context) ([]Grade, error) {
	query := `
		SELECT id, name, display_order, created_at, updated_at
		FROM grades
		ORDER BY display_order, name`

	var grades []Grade
	if err := r.db.SelectContext(ctx, &grades, query); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}

	return grades, nil
}

func (r *repository) UpdateGrade(ctx context.Context, grade *Grade) error {
	query := `
		UPDATE grades
		SET name = $2, display_order = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &grade.UpdatedAt, query,
		grade.ID,
		grade.Name,
		grade.DisplayOrder,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update grade: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update grade: %w", err)
	}

	return nil
}

func (r *repository) DeleteGrade(ctx context.Context, id string) error {
	return r.deleteNode(ctx, "grades", "grade", id)
}

func (r *repository) CreateSubject(
	ctx context.Context,
	subject *Subject,
) error {
	query := `
		INSERT INTO subjects (id, grade_id, name, description, display_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, subject, query,
		subject.ID,
		subject.GradeID,
		subject.Name,
		subject.Description,
		subject.DisplayOrder,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("create subject: parent grade: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create subject: %w", err)
	}

	return nil
}

func (r *repository) GetSubject(
	ctx context.Context,
	id string,
) (*Subject, error) {
	query := `
		SELECT id, grade_id, name, description, display_order,
		       created_at, updated_at
		FROM subjects
		WHERE id = $1`

	var subject Subject
	err := r.db.GetContext(ctx, &subject, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get subject: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}

	return &subject, nil
}

func (r *repository) ListSubjects(
	ctx context.Context,
	gradeID string,
) ([]Subject, error) {
	query := `
		SELECT id, grade_id, name, description, display_order,
		       created_at, updated_at
		FROM subjects
		WHERE ($1 = '' OR grade_id = $1)
		ORDER BY display_order, name`

	var subjects []Subject
	if err := r.db.SelectContext(ctx, &subjects, query, gradeID); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	return subjects, nil
}

func (r *repository) UpdateSubject(
	ctx context.Context,
	subject *Subject,
) error {
	query := `
		UPDATE subjects
		SET name = $2, description = $3, display_order = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &subject.UpdatedAt, query,
		subject.ID,
		subject.Name,
		subject.Description,
		subject.DisplayOrder,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update subject: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update subject: %w", err)
	}

	return nil
}

func (r *repository) DeleteSubject(ctx context.Context, id string) error {
	return r.deleteNode(ctx, "subjects", "subject", id)
}

func (r *repository) CreateTopic(ctx context.Context, topic *Topic) error {
	query := `
		INSERT INTO topics (id, subject_id, name, description, display_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, topic, query,
		topic.ID,
		topic.SubjectID,
		topic.Name,
		topic.Description,
		topic.DisplayOrder,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("create topic: parent subject: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create topic: %w", err)
	}

	return nil
}

func (r *repository) GetTopic(ctx context.Context, id string) (*Topic, error) {
	query := `
		SELECT id, subject_id, name, description, display_order,
		       created_at, updated_at
		FROM topics
		WHERE id = $1`

	var topic Topic
	err := r.db.GetContext(ctx, &topic, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get topic: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}

	return &topic, nil
}

func (r *repository) ListTopics(
	ctx context.Context,
	subjectID string,
) ([]Topic, error) {
	query := `
		SELECT id, subject_id, name, description, display_order,
		       created_at, updated_at
		FROM topics
		WHERE ($1 = '' OR subject_id = $1)
		ORDER BY display_order, name`

	var topics []Topic
	if err := r.db.SelectContext(ctx, &topics, query, subjectID); err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	return topics, nil
}

func (r *repository) UpdateTopic(ctx context.Context, topic *Topic) error {
	query := `
		UPDATE topics
		SET name = $2, description = $3, display_order = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &topic.UpdatedAt, query,
		topic.ID,
		topic.Name,
		topic.Description,
		topic.DisplayOrder,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update topic: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update topic: %w", err)
	}

	return nil
}

func (r *repository) DeleteTopic(ctx context.Context, id string) error {
	return r.deleteNode(ctx, "topics", "topic", id)
}

func (r *repository) CreateSection(
	ctx context.Context,
	section *Section,
) error {
	query := `
		INSERT INTO sections (id, topic_id, name, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, section, query,
		section.ID,
		section.TopicID,
		section.Name,
		section.DisplayOrder,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("create section: parent topic: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create section: %w", err)
	}

	return nil
}

func (r *repository) GetSection(
	ctx context.Context,
	id string,
) (*Section, error) {
	query := `
		SELECT id, topic_id, name, display_order, created_at, updated_at
		FROM sections
		WHERE id = $1`

	var section Section
	err := r.db.GetContext(ctx, &section, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get section: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get section: %w", err)
	}

	return &section, nil
}

func (r *repository) ListSections(
	ctx context.Context,
	topicID string,
) ([]Section, error) {
	query := `
		SELECT id, topic_id, name, display_order, created_at, updated_at
		FROM sections
		WHERE ($1 = '' OR topic_id = $1)
		ORDER BY display_order, name`

	var sections []Section
	if err := r.db.SelectContext(ctx, &sections, query, topicID); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}

	return sections, nil
}

func (r *repository) UpdateSection(
	ctx context.Context,
	section *Section,
) error {
	query := `
		UPDATE sections
		SET name = $2, display_order = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &section.UpdatedAt, query,
		section.ID,
		section.Name,
		section.DisplayOrder,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update section: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update section: %w", err)
	}

	return nil
}

func (r *repository) DeleteSection(ctx context.Context, id string) error {
	return r.deleteNode(ctx, "sections", "section", id)
}

// deleteNode relies on RESTRICT foreign keys: deleting a parent with
// children surfaces as ErrConflict rather than cascading.
func (r *repository) deleteNode(
	ctx context.Context,
	table, label, id string,
) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("delete %s: has children: %w", label, core.ErrConflict)
		}
		return fmt.Errorf("delete %s: %w", label, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", label, err)
	}

	if rows == 0 {
		return fmt.Errorf("delete %s: %w", label, core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
