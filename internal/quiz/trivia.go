package quiz

import (
	"html"
	"math/rand"
	"strings"

	"quiz-manager/internal/opentdb"
)

const triviaTypeBoolean = "boolean"

// FromTrivia converts Open Trivia DB questions. Boolean questions become
// TrueFalse, everything else becomes MultipleChoice with shuffled choices.
func FromTrivia(raw []opentdb.RawQuestion) []Question {
	questions := make([]Question, 0, len(raw))
	for _, item := range raw {
		question, ok := buildTriviaQuestion(item)
		if !ok {
			continue
		}
		questions = append(questions, question)
	}
	return questions
}

func buildTriviaQuestion(raw opentdb.RawQuestion) (Question, bool) {
	prompt := strings.TrimSpace(html.UnescapeString(raw.Question))
	if prompt == "" {
		return nil, false
	}

	if raw.Type == triviaTypeBoolean {
		value, err := ParseBoolLiteral(raw.CorrectAnswer)
		if err != nil {
			return nil, false
		}
		return TrueFalse{Prompt: prompt, CorrectAnswer: value}, true
	}

	type choice struct {
		text      string
		isCorrect bool
	}

	choices := make([]choice, 0, len(raw.IncorrectAnswers)+1)
	for _, incorrect := range raw.IncorrectAnswers {
		choices = append(choices, choice{
			text:      html.UnescapeString(incorrect),
			isCorrect: false,
		})
	}
	choices = append(choices, choice{
		text:      html.UnescapeString(raw.CorrectAnswer),
		isCorrect: true,
	})

	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	texts := make([]string, len(choices))
	correctIndex := -1
	for idx, candidate := range choices {
		texts[idx] = candidate.text
		if candidate.isCorrect {
			correctIndex = idx
		}
	}

	return MultipleChoice{
		Prompt:       prompt,
		Choices:      texts,
		CorrectIndex: correctIndex,
	}, true
}
