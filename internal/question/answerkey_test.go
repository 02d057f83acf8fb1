// AngelaMos | 2026
// answerkey_test.go

package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswerKey(t *testing.T) {
	t.Run("text key normalized", func(t *testing.T) {
		key, err := ParseAnswerKey(TypeText, "  Photosynthesis ")
		require.NoError(t, err)
		assert.Equal(t, "photosynthesis", key.Exact)
	})

	t.Run("drag key tokenized and sorted", func(t *testing.T) {
		key, err := ParseAnswerKey(TypeDrag, "Cat, dog, Bird")
		require.NoError(t, err)
		assert.Equal(t, []string{"bird", "cat", "dog"}, key.Tokens)
	})

	t.Run("drag key drops empty tokens", func(t *testing.T) {
		key, err := ParseAnswerKey(TypeDrag, "a,,b,")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, key.Tokens)
	})

	t.Run("draw key carries no comparison data", func(t *testing.T) {
		key, err := ParseAnswerKey(TypeDraw, "")
		require.NoError(t, err)
		assert.Empty(t, key.Exact)
		assert.Empty(t, key.Tokens)
	})

	t.Run("empty text key rejected", func(t *testing.T) {
		_, err := ParseAnswerKey(TypeText, "   ")
		assert.ErrorIs(t, err, ErrInvalidQuestionState)
	})

	t.Run("empty drag key rejected", func(t *testing.T) {
		_, err := ParseAnswerKey(TypeDrag, " , , ")
		assert.ErrorIs(t, err, ErrInvalidQuestionState)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		_, err := ParseAnswerKey("essay", "anything")
		assert.ErrorIs(t, err, ErrInvalidQuestionState)
	})
}
