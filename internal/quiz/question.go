package quiz

import (
	"errors"
	"strings"
)

const (
	KindMultipleChoice = "Multiple Choice"
	KindOpenEnded      = "Open-Ended"
	KindTrueFalse      = "True or False"
)

var (
	ErrEmptyText          = errors.New("question text is required")
	ErrNoChoices          = errors.New("at least one choice is required")
	ErrInvalidChoiceIndex = errors.New("invalid correct choice index")
	ErrInvalidBoolean     = errors.New("invalid boolean, expected true or false")
	ErrUnknownKind        = errors.New("unknown question kind")
)

// Question is one quiz entry. Every kind knows how to judge a candidate answer
// and how to print its own correct answer.
type Question interface {
	Text() string
	Kind() string
	CheckAnswer(candidate string) bool
	CorrectAnswerText() string
}

type MultipleChoice struct {
	Prompt       string
	Choices      []string
	CorrectIndex int
}

type OpenEnded struct {
	Prompt        string
	CorrectAnswer string
}

type TrueFalse struct {
	Prompt        string
	CorrectAnswer bool
}

func (q MultipleChoice) Text() string { return q.Prompt }
func (q MultipleChoice) Kind() string { return KindMultipleChoice }

func (q MultipleChoice) CheckAnswer(candidate string) bool {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
		return false
	}
	return strings.EqualFold(candidate, q.Choices[q.CorrectIndex])
}

func (q MultipleChoice) CorrectAnswerText() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
		return ""
	}
	return q.Choices[q.CorrectIndex]
}

func (q OpenEnded) Text() string { return q.Prompt }
func (q OpenEnded) Kind() string { return KindOpenEnded }

func (q OpenEnded) CheckAnswer(candidate string) bool {
	return strings.EqualFold(candidate, q.CorrectAnswer)
}

func (q OpenEnded) CorrectAnswerText() string { return q.CorrectAnswer }

func (q TrueFalse) Text() string { return q.Prompt }
func (q TrueFalse) Kind() string { return KindTrueFalse }

func (q TrueFalse) CheckAnswer(candidate string) bool {
	value, err := ParseBoolLiteral(candidate)
	if err != nil {
		return false
	}
	return value == q.CorrectAnswer
}

func (q TrueFalse) CorrectAnswerText() string {
	if q.CorrectAnswer {
		return "True"
	}
	return "False"
}

// ParseBoolLiteral accepts only "true" or "false" in any letter case, with
// surrounding whitespace ignored. Unlike strconv.ParseBool it rejects "1", "t"
// and friends.
func ParseBoolLiteral(value string) (bool, error) {
	value = strings.TrimSpace(value)
	switch {
	case strings.EqualFold(value, "true"):
		return true, nil
	case strings.EqualFold(value, "false"):
		return false, nil
	default:
		return false, ErrInvalidBoolean
	}
}

// NewMultipleChoice builds a multiple choice question from a 1-based choice
// number, the way the console shell asks for it.
func NewMultipleChoice(prompt string, choices []string, choiceNumber int) (MultipleChoice, error) {
	if strings.TrimSpace(prompt) == "" {
		return MultipleChoice{}, ErrEmptyText
	}
	if len(choices) == 0 {
		return MultipleChoice{}, ErrNoChoices
	}
	if choiceNumber < 1 || choiceNumber > len(choices) {
		return MultipleChoice{}, ErrInvalidChoiceIndex
	}
	copied := make([]string, len(choices))
	copy(copied, choices)
	return MultipleChoice{
		Prompt:       prompt,
		Choices:      copied,
		CorrectIndex: choiceNumber - 1,
	}, nil
}
