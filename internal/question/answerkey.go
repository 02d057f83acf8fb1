// AngelaMos | 2026
// answerkey.go

package question

import (
	"fmt"
	"sort"
	"strings"
)

// AnswerKey is the parsed, type-tagged form of a question's stored
// correct answer. Parsing happens at write time so malformed keys are
// rejected before they can reach grading.
type AnswerKey struct {
	Type string

	// Exact is the normalized expected answer for text and click.
	Exact string

	// Tokens is the sorted normalized token sequence for drag.
	Tokens []string
}

func ParseAnswerKey(questionType, raw string) (*AnswerKey, error) {
	if !ValidType(questionType) {
		return nil, fmt.Errorf(
			"parse answer key: unknown question type %q: %w",
			questionType,
			ErrInvalidQuestionState,
		)
	}

	switch questionType {
	case TypeText, TypeClick:
		normalized := normalize(raw)
		if normalized == "" {
			return nil, fmt.Errorf(
				"parse answer key: empty %s answer: %w",
				questionType,
				ErrInvalidQuestionState,
			)
		}
		return &AnswerKey{Type: questionType, Exact: normalized}, nil

	case TypeDrag:
		tokens := normalizeTokens(raw)
		if len(tokens) == 0 {
			return nil, fmt.Errorf(
				"parse answer key: empty drag answer: %w",
				ErrInvalidQuestionState,
			)
		}
		return &AnswerKey{Type: questionType, Tokens: tokens}, nil

	default:
		// draw/paint carry no machine-checkable key
		return &AnswerKey{Type: questionType}, nil
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeTokens splits on commas, normalizes each token, and sorts.
// Sorting (rather than set comparison) is the comparison contract:
// duplicate tokens survive and must match positionally after the sort.
func normalizeTokens(s string) []string {
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := normalize(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	sort.Strings(tokens)
	return tokens
}
