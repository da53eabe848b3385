package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"quiz-manager/internal/quiz"
)

const choiceCount = 4

var errUnknownKindOption = errors.New("unknown question kind option")

func printKindMenu(out io.Writer) {
	fmt.Fprintln(out, "Select the type of question:")
	fmt.Fprintf(out, "1. %s\n", quiz.KindMultipleChoice)
	fmt.Fprintf(out, "2. %s\n", quiz.KindOpenEnded)
	fmt.Fprintf(out, "3. %s\n", quiz.KindTrueFalse)
}

// authorQuestion walks the user through every field of a new question and
// returns it only once all fields are valid.
func (a *app) authorQuestion(reader *bufio.Reader) (quiz.Question, error) {
	printKindMenu(a.out)
	kind, err := readLine(reader)
	if err != nil {
		return nil, err
	}

	switch strings.TrimSpace(kind) {
	case "1":
		return a.authorMultipleChoice(reader)
	case "2":
		return a.authorOpenEnded(reader)
	case "3":
		return a.authorTrueFalse(reader)
	default:
		return nil, errUnknownKindOption
	}
}

func (a *app) authorText(reader *bufio.Reader) (string, error) {
	return promptValid(reader, a.out, "Enter the question:", "The question text cannot be empty.", a.maxInvalid, parseRequired)
}

func (a *app) authorMultipleChoice(reader *bufio.Reader) (quiz.Question, error) {
	text, err := a.authorText(reader)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "Enter the choices (Max %d):\n", choiceCount)
	choices := make([]string, 0, choiceCount)
	for i := 1; i <= choiceCount; i++ {
		choice, err := promptValid(reader, a.out, fmt.Sprintf("Enter choice %d:", i), "A choice cannot be empty.", a.maxInvalid, parseRequired)
		if err != nil {
			return nil, err
		}
		choices = append(choices, choice)
	}

	number, err := promptValid(reader, a.out,
		"Enter the index of the correct choice:",
		fmt.Sprintf("Invalid correct choice index. Please enter a number from 1 to %d.", choiceCount),
		a.maxInvalid,
		parseChoiceNumber(len(choices)),
	)
	if err != nil {
		return nil, err
	}

	return quiz.NewMultipleChoice(text, choices, number)
}

func (a *app) authorOpenEnded(reader *bufio.Reader) (quiz.Question, error) {
	text, err := a.authorText(reader)
	if err != nil {
		return nil, err
	}
	answer, err := promptValid(reader, a.out, "Enter the correct answer:", "The correct answer cannot be empty.", a.maxInvalid, parseRequired)
	if err != nil {
		return nil, err
	}
	return quiz.OpenEnded{Prompt: text, CorrectAnswer: answer}, nil
}

func (a *app) authorTrueFalse(reader *bufio.Reader) (quiz.Question, error) {
	text, err := a.authorText(reader)
	if err != nil {
		return nil, err
	}
	value, err := promptValid(reader, a.out,
		"Enter the correct answer (true/false):",
		"Invalid input. Please enter true or false.",
		a.maxInvalid,
		quiz.ParseBoolLiteral,
	)
	if err != nil {
		return nil, err
	}
	return quiz.TrueFalse{Prompt: text, CorrectAnswer: value}, nil
}
