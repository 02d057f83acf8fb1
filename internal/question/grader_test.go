// AngelaMos | 2026
// grader_test.go

package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrade_TextAndClick(t *testing.T) {
	tests := []struct {
		name      string
		kind      string
		stored    string
		submitted string
		want      bool
	}{
		{"exact match", TypeText, "photosynthesis", "photosynthesis", true},
		{"case insensitive", TypeText, "Photosynthesis", "photosynthesis", true},
		{"surrounding whitespace", TypeText, "  mitochondria  ", "mitochondria", true},
		{"both sides messy", TypeClick, " Paris ", "paris  ", true},
		{"wrong answer", TypeText, "red", "blue", false},
		{"interior whitespace is significant", TypeText, "ice cream", "icecream", false},
		{"click match", TypeClick, "option_b", "OPTION_B", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Grade(tt.kind, tt.stored, tt.submitted)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGrade_Drag(t *testing.T) {
	tests := []struct {
		name      string
		stored    string
		submitted string
		want      bool
	}{
		{"same order", "a,b,c", "a,b,c", true},
		{"permuted order", "a,b,c", "c,a,b", true},
		{"case and spaces", "Cat, dog", "dog,cat", true},
		{"single token", "paris", "Paris", true},
		{"missing token", "a,b,c", "a,b", false},
		{"extra token", "a,b", "a,b,c", false},
		{"wrong token", "a,b,c", "a,b,d", false},
		{"empty tokens dropped", "a,,b", "b,a", true},
		{"duplicates must match", "a,a,b", "a,b,b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Grade(TypeDrag, tt.stored, tt.submitted)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGrade_NotAutoGradable(t *testing.T) {
	for _, kind := range []string{TypeDraw, TypePaint} {
		t.Run(kind, func(t *testing.T) {
			got, err := Grade(kind, "", "anything")
			assert.ErrorIs(t, err, ErrNotAutoGradable)
			assert.False(t, got)
		})
	}
}

func TestGrade_Errors(t *testing.T) {
	t.Run("missing stored answer", func(t *testing.T) {
		_, err := Grade(TypeText, "", "something")
		assert.ErrorIs(t, err, ErrInvalidQuestionState)
	})

	t.Run("whitespace-only stored answer", func(t *testing.T) {
		_, err := Grade(TypeText, "   ", "something")
		assert.ErrorIs(t, err, ErrInvalidQuestionState)
	})

	t.Run("missing submission", func(t *testing.T) {
		_, err := Grade(TypeText, "answer", "")
		assert.ErrorIs(t, err, ErrMissingAnswer)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := Grade("essay", "answer", "answer")
		assert.ErrorIs(t, err, ErrInvalidQuestionState)
	})
}
