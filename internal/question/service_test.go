// AngelaMos | 2026
// service_test.go

package question

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath-edu/backend/internal/core"
)

type fakeRepo struct {
	questions map[string]*Question
}

func newFakeRepo(questions ...*Question) *fakeRepo {
	r := &fakeRepo{questions: map[string]*Question{}}
	for _, q := range questions {
		r.questions[q.ID] = q
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, q *Question) error {
	r.questions[q.ID] = q
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, fmt.Errorf("question %s: %w", id, core.ErrNotFound)
	}
	copied := *q
	return &copied, nil
}

func (r *fakeRepo) ListByTopic(_ context.Context, topicID string) ([]Question, error) {
	var out []Question
	for _, q := range r.questions {
		if q.TopicID == topicID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, q *Question) error {
	if _, ok := r.questions[q.ID]; !ok {
		return fmt.Errorf("question %s: %w", q.ID, core.ErrNotFound)
	}
	r.questions[q.ID] = q
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.questions[id]; !ok {
		return fmt.Errorf("question %s: %w", id, core.ErrNotFound)
	}
	delete(r.questions, id)
	return nil
}

func (r *fakeRepo) CountByTopic(_ context.Context, topicID string) (int, error) {
	count := 0
	for _, q := range r.questions {
		if q.TopicID == topicID {
			count++
		}
	}
	return count, nil
}

type recordedAnswer struct {
	userID     string
	questionID string
	graded     bool
	correct    bool
}

type fakeRecorder struct {
	calls []recordedAnswer
}

func (f *fakeRecorder) RecordAnswer(
	_ context.Context,
	userID, _, questionID, _ string,
	graded, correct bool,
) error {
	f.calls = append(f.calls, recordedAnswer{
		userID:     userID,
		questionID: questionID,
		graded:     graded,
		correct:    correct,
	})
	return nil
}

func strPtr(s string) *string { return &s }

func textQuestion(id, answer string) *Question {
	return &Question{
		ID:            id,
		TopicID:       "topic-1",
		Type:          TypeText,
		Content:       "What is the capital of France?",
		CorrectAnswer: strPtr(answer),
		Explanation:   "Paris has been the capital since 508.",
	}
}

func TestCreate_ValidatesAnswerKey(t *testing.T) {
	ctx := context.Background()

	t.Run("gradable type with key", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nil)

		q, err := svc.Create(ctx, CreateQuestionRequest{
			TopicID:       "topic-1",
			Type:          TypeDrag,
			Content:       "Order the planets",
			CorrectAnswer: strPtr("mercury,venus,earth"),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, q.ID)
	})

	t.Run("gradable type without key rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nil)

		_, err := svc.Create(ctx, CreateQuestionRequest{
			TopicID: "topic-1",
			Type:    TypeText,
			Content: "No answer stored",
		})
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("malformed drag key rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nil)

		_, err := svc.Create(ctx, CreateQuestionRequest{
			TopicID:       "topic-1",
			Type:          TypeDrag,
			Content:       "Order things",
			CorrectAnswer: strPtr(" , , "),
		})
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("draw needs no key", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nil)

		q, err := svc.Create(ctx, CreateQuestionRequest{
			TopicID: "topic-1",
			Type:    TypeDraw,
			Content: "Draw a triangle",
		})
		require.NoError(t, err)
		assert.Nil(t, q.CorrectAnswer)
	})
}

func TestUpdate_RevalidatesAnswerKey(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(textQuestion("q-1", "paris"))
	svc := NewService(repo, nil)

	_, err := svc.Update(ctx, "q-1", UpdateQuestionRequest{
		CorrectAnswer: strPtr("   "),
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	q, err := svc.Update(ctx, "q-1", UpdateQuestionRequest{
		CorrectAnswer: strPtr("Lyon"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Lyon", *q.CorrectAnswer)
}

func TestSubmitAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("correct submission", func(t *testing.T) {
		recorder := &fakeRecorder{}
		svc := NewService(newFakeRepo(textQuestion("q-1", "Paris")), recorder)

		resp, err := svc.SubmitAnswer(ctx, "user-1", "q-1", SubmitAnswerRequest{
			Answer: " paris ",
		})
		require.NoError(t, err)
		assert.True(t, resp.IsCorrect)
		assert.True(t, resp.Graded)
		assert.Equal(t, "Paris", resp.CorrectAnswer)
		assert.NotEmpty(t, resp.Explanation)

		require.Len(t, recorder.calls, 1)
		assert.True(t, recorder.calls[0].correct)
	})

	t.Run("wrong submission still records", func(t *testing.T) {
		recorder := &fakeRecorder{}
		svc := NewService(newFakeRepo(textQuestion("q-1", "Paris")), recorder)

		resp, err := svc.SubmitAnswer(ctx, "user-1", "q-1", SubmitAnswerRequest{
			Answer: "London",
		})
		require.NoError(t, err)
		assert.False(t, resp.IsCorrect)
		assert.True(t, resp.Graded)

		require.Len(t, recorder.calls, 1)
		assert.False(t, recorder.calls[0].correct)
	})

	t.Run("draw submission is ungraded and withholds the key", func(t *testing.T) {
		recorder := &fakeRecorder{}
		repo := newFakeRepo(&Question{
			ID:      "q-1",
			TopicID: "topic-1",
			Type:    TypeDraw,
			Content: "Draw a triangle",
		})
		svc := NewService(repo, recorder)

		resp, err := svc.SubmitAnswer(ctx, "user-1", "q-1", SubmitAnswerRequest{
			Answer: "data:image/png;base64,...",
		})
		require.NoError(t, err)
		assert.False(t, resp.Graded)
		assert.False(t, resp.IsCorrect)
		assert.Empty(t, resp.CorrectAnswer)

		require.Len(t, recorder.calls, 1)
		assert.False(t, recorder.calls[0].graded)
	})

	t.Run("unknown question", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &fakeRecorder{})

		_, err := svc.SubmitAnswer(ctx, "user-1", "missing", SubmitAnswerRequest{
			Answer: "anything",
		})
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("empty submission", func(t *testing.T) {
		recorder := &fakeRecorder{}
		svc := NewService(newFakeRepo(textQuestion("q-1", "Paris")), recorder)

		_, err := svc.SubmitAnswer(ctx, "user-1", "q-1", SubmitAnswerRequest{
			Answer: "   ",
		})
		assert.ErrorIs(t, err, ErrMissingAnswer)
		assert.Empty(t, recorder.calls)
	})

	t.Run("stored answer missing", func(t *testing.T) {
		repo := newFakeRepo(&Question{
			ID:      "q-1",
			TopicID: "topic-1",
			Type:    TypeText,
			Content: "Broken question",
		})
		svc := NewService(repo, &fakeRecorder{})

		_, err := svc.SubmitAnswer(ctx, "user-1", "q-1", SubmitAnswerRequest{
			Answer: "anything",
		})
		assert.ErrorIs(t, err, ErrInvalidQuestionState)
	})
}
