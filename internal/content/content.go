// Package content decodes the overloaded lesson payload column into a typed value
// once, at load time, so callers never re-parse raw storage.
package content

import (
	"learnhub_backend/internal/quiz"
	"learnhub_backend/internal/video"
)

type Type string

const (
	TypeVideo Type = "video"
	TypeQuiz  Type = "quiz"
	TypeLink  Type = "link"
)

// Normalize maps the stored type tag to a known type. Untyped rows are videos.
func Normalize(t string) Type {
	switch Type(t) {
	case TypeQuiz:
		return TypeQuiz
	case TypeLink:
		return TypeLink
	default:
		return TypeVideo
	}
}

// Playable reports whether lessons of this type go in the lesson playlist
// rather than the materials list.
func (t Type) Playable() bool {
	return t == TypeVideo || t == TypeQuiz
}

// LessonContent is one of Video, Quiz or Link.
type LessonContent interface {
	Type() Type
}

type Video struct {
	URL string
	// ID is empty when the URL does not resolve to a YouTube video.
	ID string
}

func (Video) Type() Type { return TypeVideo }

func (v Video) Valid() bool { return v.ID != "" }

type Quiz struct {
	Questions []quiz.Question
	// Err is set to a quiz.ErrMalformedQuizData wrapper when the payload was rejected.
	Err error
}

func (Quiz) Type() Type { return TypeQuiz }

func (q Quiz) Valid() bool { return q.Err == nil && len(q.Questions) > 0 }

type Link struct {
	URL string
}

func (Link) Type() Type { return TypeLink }

// Decode turns a stored (content_type, payload) pair into a LessonContent.
// It never fails: malformed payloads are carried inside the result.
func Decode(contentType, payload string) LessonContent {
	switch Normalize(contentType) {
	case TypeQuiz:
		questions, err := quiz.ParseQuestions(payload)
		return Quiz{Questions: questions, Err: err}
	case TypeLink:
		return Link{URL: payload}
	default:
		id, _ := video.ResolveID(payload)
		return Video{URL: payload, ID: id}
	}
}
