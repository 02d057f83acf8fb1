// AngelaMos | 2026
// grader.go

package question

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidQuestionState means the stored correct answer is missing
	// or malformed for the question's type; grading cannot proceed.
	ErrInvalidQuestionState = errors.New("invalid question state")

	// ErrMissingAnswer means the client submitted no answer.
	ErrMissingAnswer = errors.New("missing answer")

	// ErrNotAutoGradable means the question type has no mechanical
	// comparison (draw, paint).
	ErrNotAutoGradable = errors.New("question is not auto-gradable")
)

// Grade decides whether a submitted answer matches the stored correct
// answer. It is pure: no side effects, persistence is the caller's job.
//
// Comparison semantics by type:
//   - text, click: trim + lowercase, exact equality
//   - drag: comma-split tokens, trim + lowercase, sorted independently
//     on both sides, then element-wise equality
//   - draw, paint: not graded here
func Grade(questionType, correctAnswerRaw, submittedAnswer string) (bool, error) {
	if !AutoGradable(questionType) {
		if !ValidType(questionType) {
			return false, fmt.Errorf(
				"grade: unknown question type %q: %w",
				questionType,
				ErrInvalidQuestionState,
			)
		}
		return false, ErrNotAutoGradable
	}

	if strings.TrimSpace(correctAnswerRaw) == "" {
		return false, fmt.Errorf(
			"grade: no stored answer for %s question: %w",
			questionType,
			ErrInvalidQuestionState,
		)
	}

	if strings.TrimSpace(submittedAnswer) == "" {
		return false, ErrMissingAnswer
	}

	switch questionType {
	case TypeText, TypeClick:
		return normalize(submittedAnswer) == normalize(correctAnswerRaw), nil

	case TypeDrag:
		return tokensEqual(
			normalizeTokens(submittedAnswer),
			normalizeTokens(correctAnswerRaw),
		), nil
	}

	return false, fmt.Errorf(
		"grade: unreachable type %q: %w",
		questionType,
		ErrInvalidQuestionState,
	)
}

func tokensEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
