package quiz

import (
	"errors"
	"fmt"
)

type State int

const (
	StateAnswering State = iota
	StateCompleted
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateAnswering:
		return "answering"
	case StateCompleted:
		return "completed"
	case StateInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// DefaultPassPercent is the share of correct answers required to pass.
const DefaultPassPercent = 60

var (
	ErrNoSelection      = errors.New("no option selected")
	ErrOptionOutOfRange = errors.New("option index out of range")
	ErrNotAnswering     = errors.New("quiz is not accepting answers")
	ErrNotCompleted     = errors.New("quiz is not completed")
)

// Result is the outcome reported when a session reaches Completed.
type Result struct {
	Score  int
	Total  int
	Passed bool
}

// PassHook is invoked once each time a playthrough completes with a passing score.
type PassHook func(Result)

// CompleteHook is invoked once each time a playthrough completes, pass or fail.
type CompleteHook func(Result)

type Option func(*Session)

func WithPassPercent(percent int) Option {
	return func(s *Session) {
		if percent > 0 && percent <= 100 {
			s.passPercent = percent
		}
	}
}

func WithPassHook(hook PassHook) Option {
	return func(s *Session) { s.onPass = hook }
}

func WithCompleteHook(hook CompleteHook) Option {
	return func(s *Session) { s.onComplete = hook }
}

// Session drives one single-question-at-a-time playthrough of a quiz lesson.
// It is not safe for concurrent use.
type Session struct {
	questions   []Question
	current     int
	selected    int
	hasSelected bool
	score       int
	state       State
	passPercent int
	onPass      PassHook
	onComplete  CompleteHook
}

// NewSession starts a playthrough at the first question. A nil or empty
// question set yields a session in the terminal Invalid state.
func NewSession(questions []Question, opts ...Option) *Session {
	s := &Session{
		questions:   questions,
		passPercent: DefaultPassPercent,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(questions) == 0 {
		s.state = StateInvalid
		return s
	}
	s.reset()
	return s
}

// FromPayload parses a raw quiz payload and starts a session on it.
func FromPayload(raw string, opts ...Option) *Session {
	questions, err := ParseQuestions(raw)
	if err != nil {
		return NewSession(nil, opts...)
	}
	return NewSession(questions, opts...)
}

func (s *Session) reset() {
	s.current = 0
	s.selected = 0
	s.hasSelected = false
	s.score = 0
	s.state = StateAnswering
}

func (s *Session) State() State { return s.state }

func (s *Session) Score() int { return s.score }

func (s *Session) Total() int { return len(s.questions) }

func (s *Session) Questions() []Question { return s.questions }

// CurrentIndex is the zero-based index of the question being answered.
func (s *Session) CurrentIndex() int { return s.current }

// Selected returns the pending option, if any.
func (s *Session) Selected() (int, bool) { return s.selected, s.hasSelected }

func (s *Session) CurrentQuestion() (Question, error) {
	if s.state != StateAnswering {
		return Question{}, ErrNotAnswering
	}
	return s.questions[s.current], nil
}

// SelectOption records the learner's choice for the current question without advancing.
func (s *Session) SelectOption(index int) error {
	if s.state != StateAnswering {
		return ErrNotAnswering
	}
	if index < 0 || index >= len(s.questions[s.current].Options) {
		return ErrOptionOutOfRange
	}
	s.selected = index
	s.hasSelected = true
	return nil
}

// ConfirmAndAdvance scores the pending selection and moves to the next question,
// or completes the playthrough after the last one.
func (s *Session) ConfirmAndAdvance() (State, error) {
	if s.state != StateAnswering {
		return s.state, ErrNotAnswering
	}
	if !s.hasSelected {
		return s.state, ErrNoSelection
	}

	if s.selected == s.questions[s.current].CorrectAnswer {
		s.score++
	}

	if s.current+1 < len(s.questions) {
		s.current++
		s.selected = 0
		s.hasSelected = false
		return s.state, nil
	}

	s.hasSelected = false
	s.state = StateCompleted

	result := s.result()
	if s.onComplete != nil {
		s.onComplete(result)
	}
	if result.Passed && s.onPass != nil {
		s.onPass(result)
	}
	return s.state, nil
}

// Passed reports whether a completed playthrough met the pass threshold.
func (s *Session) Passed() (bool, error) {
	if s.state != StateCompleted {
		return false, ErrNotCompleted
	}
	return s.passed(), nil
}

func (s *Session) Result() (Result, error) {
	if s.state != StateCompleted {
		return Result{}, ErrNotCompleted
	}
	return s.result(), nil
}

// Retry restarts a completed playthrough on the same questions in the same order.
func (s *Session) Retry() error {
	if s.state != StateCompleted {
		return ErrNotCompleted
	}
	s.reset()
	return nil
}

func (s *Session) result() Result {
	return Result{Score: s.score, Total: len(s.questions), Passed: s.passed()}
}

// passed compares score*100 against total*percent so that e.g. 2 of 4 at 60%
// (2 < 2.4) fails and 3 of 5 (3 >= 3.0) passes without float rounding.
func (s *Session) passed() bool {
	return PassedScore(s.score, len(s.questions), s.passPercent)
}

// PassedScore applies the pass rule to a raw score.
func PassedScore(score, total, percent int) bool {
	if total == 0 {
		return false
	}
	return score*100 >= total*percent
}
