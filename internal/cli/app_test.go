package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"quiz-manager/internal/opentdb"
	"quiz-manager/internal/quiz"
	"quiz-manager/internal/quiz/sqlite"
)

type fakeTrivia struct {
	questions []opentdb.RawQuestion
	err       error
	amount    int
}

func (f *fakeTrivia) FetchQuestions(_ context.Context, amount int) ([]opentdb.RawQuestion, error) {
	f.amount = amount
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

func runScript(t *testing.T, opts Options, lines ...string) (string, *quiz.Session) {
	t.Helper()
	if opts.Session == nil {
		opts.Session = quiz.NewSession(quiz.NewStore(nil), nil, nil)
	}
	if opts.ColorMode == "" {
		opts.ColorMode = "never"
	}
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	if err := Run(context.Background(), in, &out, opts); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return out.String(), opts.Session
}

func TestRunAddPlayAndReview(t *testing.T) {
	out, session := runScript(t, Options{},
		"1", "3", "The sky is blue", "true",
		"1", "2", "Capital of France?", "Paris",
		"4", "TRUE", "lyon",
		"5",
		"9",
	)

	if session.Store().Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", session.Store().Len())
	}
	for _, want := range []string{
		"Question added successfully.",
		"[True or False] The sky is blue",
		"[Open-Ended] Capital of France?",
		"Your score: 1/2",
		"Time taken: 0 minute 0 seconds",
		"Correct Answers:",
		"The sky is blue [True or False]: True",
		"Capital of France? [Open-Ended]: Paris",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunMultipleChoiceRetriesInvalidIndex(t *testing.T) {
	out, session := runScript(t, Options{},
		"1", "1", "Pick a color", "Red", "Green", "Blue", "Yellow", "7", "abc", "2",
		"4", "green",
	)

	if session.Store().Len() != 1 {
		t.Fatalf("expected 1 question, got %d", session.Store().Len())
	}
	if got := session.Store().At(0).CorrectAnswerText(); got != "Green" {
		t.Fatalf("expected Green, got %q", got)
	}
	if strings.Count(out, "Invalid correct choice index.") != 2 {
		t.Fatalf("expected two invalid index messages:\n%s", out)
	}
	if !strings.Contains(out, "  - Yellow") || !strings.Contains(out, "Your score: 1/1") {
		t.Fatalf("unexpected play output:\n%s", out)
	}
}

func TestRunTrueFalseGivesUpAfterMaxInvalidInputs(t *testing.T) {
	out, session := runScript(t, Options{MaxInvalidInputs: 2},
		"1", "3", "Is it?", "maybe", "perhaps",
		"9",
	)
	if session.Store().Len() != 0 {
		t.Fatalf("expected no question to be added")
	}
	if strings.Count(out, "Invalid input. Please enter true or false.") != 2 {
		t.Fatalf("expected two invalid boolean messages:\n%s", out)
	}
	if !strings.Contains(out, "Too many invalid inputs. The question was not saved.") {
		t.Fatalf("expected give-up message:\n%s", out)
	}
}

func TestRunUnknownOptions(t *testing.T) {
	out, session := runScript(t, Options{}, "42", "1", "9", "9")
	if session.Store().Len() != 0 {
		t.Fatalf("expected empty store")
	}
	if strings.Count(out, "Invalid option. Please try again.") != 2 {
		t.Fatalf("expected two invalid option messages:\n%s", out)
	}
}

func TestRunDeleteAndEdit(t *testing.T) {
	store := quiz.NewStore(nil)
	store.Add(quiz.OpenEnded{Prompt: "First", CorrectAnswer: "1"})
	store.Add(quiz.OpenEnded{Prompt: "Second", CorrectAnswer: "2"})
	session := quiz.NewSession(store, nil, nil)

	out, _ := runScript(t, Options{Session: session},
		"2", "x",
		"2", "5",
		"2", "0",
		"3", "3",
		"3", "0", "3", "Replaced", "false",
		"6",
	)

	for _, want := range []string{
		"Invalid index. Please enter a valid integer.",
		"No question at index 5.",
		"Question deleted successfully.",
		"No question at index 3.",
		"Question edited successfully.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 question, got %d", store.Len())
	}
	if got := store.At(0); got.Text() != "Replaced" || got.Kind() != quiz.KindTrueFalse {
		t.Fatalf("unexpected question after edit: %#v", got)
	}
	if !strings.Contains(out, "0\tTrue or False\tReplaced") {
		t.Fatalf("expected list output:\n%s", out)
	}
}

func TestRunShowAnswersBeforePlay(t *testing.T) {
	out, _ := runScript(t, Options{}, "5", "4")
	if !strings.Contains(out, "No answers recorded yet. Play the quiz first.") {
		t.Fatalf("expected review notice:\n%s", out)
	}
	if !strings.Contains(out, "There are no questions yet. Add some first.") {
		t.Fatalf("expected empty play notice:\n%s", out)
	}
}

func TestRunImportTrivia(t *testing.T) {
	trivia := &fakeTrivia{questions: []opentdb.RawQuestion{
		{Type: "boolean", Question: "Go has generics.", CorrectAnswer: "True", IncorrectAnswers: []string{"False"}},
		{Type: "multiple", Question: "2+2?", CorrectAnswer: "4", IncorrectAnswers: []string{"3", "5", "6"}},
	}}

	out, session := runScript(t, Options{Trivia: trivia, TriviaAmount: 2}, "7")
	if trivia.amount != 2 {
		t.Fatalf("expected amount 2, got %d", trivia.amount)
	}
	if session.Store().Len() != 2 {
		t.Fatalf("expected 2 imported questions, got %d", session.Store().Len())
	}
	if !strings.Contains(out, "Imported 2 questions.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRunImportTriviaFailureAndDisabled(t *testing.T) {
	out, session := runScript(t, Options{Trivia: &fakeTrivia{err: errors.New("offline")}}, "7")
	if session.Store().Len() != 0 || !strings.Contains(out, "Could not fetch trivia questions: offline") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	out, _ = runScript(t, Options{}, "7")
	if !strings.Contains(out, "Trivia import is disabled.") {
		t.Fatalf("expected disabled notice:\n%s", out)
	}
}

func TestRunHistory(t *testing.T) {
	history, err := sqlite.NewSQLiteStore("")
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { _ = history.Close() })

	store := quiz.NewStore(nil)
	store.Add(quiz.TrueFalse{Prompt: "Yes?", CorrectAnswer: true})
	session := quiz.NewSession(store, history, nil)

	out, _ := runScript(t, Options{Session: session}, "8", "4", "false", "4", "true", "8")
	if !strings.Contains(out, "No play-throughs yet.") {
		t.Fatalf("expected empty history notice:\n%s", out)
	}
	if !strings.Contains(out, "Recent play-throughs:") || !strings.Contains(out, "Best score: 1/1") {
		t.Fatalf("unexpected history output:\n%s", out)
	}
}

func TestRunEndOfInputDuringPlay(t *testing.T) {
	store := quiz.NewStore(nil)
	store.Add(quiz.OpenEnded{Prompt: "One", CorrectAnswer: "1"})
	store.Add(quiz.OpenEnded{Prompt: "Two", CorrectAnswer: "2"})

	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader("4\n1"), &out, Options{
		Session:   quiz.NewSession(store, nil, nil),
		ColorMode: "never",
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Your score: 1/2") {
		t.Fatalf("expected partial score:\n%s", out.String())
	}
}

func TestRunRejectsUnknownColorMode(t *testing.T) {
	err := Run(context.Background(), strings.NewReader(""), &bytes.Buffer{}, Options{ColorMode: "rainbow"})
	if err == nil {
		t.Fatalf("expected error for unknown color mode")
	}
}

func TestRunColorOutputRendersTable(t *testing.T) {
	store := quiz.NewStore(nil)
	store.Add(quiz.OpenEnded{Prompt: "Capital of France?", CorrectAnswer: "Paris"})

	out, _ := runScript(t, Options{Session: quiz.NewSession(store, nil, nil), ColorMode: "always"}, "4", "paris", "5")
	if !strings.Contains(out, "Paris") || !strings.Contains(out, "Answer") {
		t.Fatalf("expected review table:\n%s", out)
	}
}

func TestRunTrimsKindSelection(t *testing.T) {
	_, session := runScript(t, Options{}, " 1 ", " 2 ", "Capital of Italy?", "Rome", "9")
	if session.Store().Len() != 1 {
		t.Fatalf("expected 1 question, got %d", session.Store().Len())
	}
	if got := session.Store().At(0).Kind(); got != quiz.KindOpenEnded {
		t.Fatalf("expected %q, got %q", quiz.KindOpenEnded, got)
	}
}
