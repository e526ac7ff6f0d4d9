package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedQuizData = errors.New("invalid quiz data")

// Question is one multiple-choice item embedded in a quiz lesson payload.
// CorrectAnswer is a zero-based index into Options.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// ParseQuestions decodes the serialized question array stored on a quiz lesson.
// Anything other than a non-empty array of answerable questions is rejected.
func ParseQuestions(raw string) ([]Question, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed[0] != '[' {
		return nil, ErrMalformedQuizData
	}

	var questions []Question
	if err := json.Unmarshal([]byte(trimmed), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedQuizData, err)
	}
	if len(questions) == 0 {
		return nil, ErrMalformedQuizData
	}

	for i, q := range questions {
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("%w: question %d has no options", ErrMalformedQuizData, i+1)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("%w: question %d answer index out of range", ErrMalformedQuizData, i+1)
		}
	}

	return questions, nil
}

// EncodeQuestions is the inverse of ParseQuestions, used when admins author quiz lessons.
func EncodeQuestions(questions []Question) (string, error) {
	if len(questions) == 0 {
		return "", ErrMalformedQuizData
	}
	b, err := json.Marshal(questions)
	if err != nil {
		return "", err
	}
	if _, err := ParseQuestions(string(b)); err != nil {
		return "", err
	}
	return string(b), nil
}
