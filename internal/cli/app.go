package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"quiz-manager/internal/opentdb"
	"quiz-manager/internal/quiz"
)

const (
	defaultMaxInvalid   = 3
	defaultTriviaAmount = 10
	defaultHistoryLimit = 10
)

// TriviaFetcher is satisfied by *opentdb.Client.
type TriviaFetcher interface {
	FetchQuestions(ctx context.Context, amount int) ([]opentdb.RawQuestion, error)
}

type Options struct {
	Session          *quiz.Session
	Trivia           TriviaFetcher
	Logger           *zap.Logger
	ColorMode        string
	MaxInvalidInputs int
	TriviaAmount     int
	HistoryLimit     int
}

type app struct {
	session      *quiz.Session
	trivia       TriviaFetcher
	logger       *zap.Logger
	out          io.Writer
	render       renderer
	maxInvalid   int
	triviaAmount int
	historyLimit int
}

type menuItem struct {
	key    string
	label  string
	action func(ctx context.Context, reader *bufio.Reader) error
}

// Run drives the interactive menu until the user exits or input ends.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) error {
	color, err := resolveColor(opts.ColorMode, out)
	if err != nil {
		return err
	}

	a := &app{
		session:      opts.Session,
		trivia:       opts.Trivia,
		logger:       opts.Logger,
		out:          out,
		render:       renderer{color: color},
		maxInvalid:   opts.MaxInvalidInputs,
		triviaAmount: opts.TriviaAmount,
		historyLimit: opts.HistoryLimit,
	}
	if a.session == nil {
		a.session = quiz.NewSession(nil, nil, opts.Logger)
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	if a.maxInvalid <= 0 {
		a.maxInvalid = defaultMaxInvalid
	}
	if a.triviaAmount <= 0 {
		a.triviaAmount = defaultTriviaAmount
	}
	if a.historyLimit <= 0 {
		a.historyLimit = defaultHistoryLimit
	}

	return a.loop(ctx, bufio.NewReader(in))
}

func (a *app) menu() []menuItem {
	items := []menuItem{
		{label: "Add a new question", action: a.addQuestion},
		{label: "Delete a question", action: a.deleteQuestion},
		{label: "Edit a question", action: a.editQuestion},
		{label: "Play the quiz", action: a.play},
		{label: "Show correct answers", action: a.showCorrectAnswers},
		{label: "List questions", action: a.listQuestions},
		{label: "Import trivia questions", action: a.importTrivia},
		{label: "Show play history", action: a.showHistory},
		{label: "Exit"},
	}
	for i := range items {
		items[i].key = strconv.Itoa(i + 1)
	}
	return items
}

func (a *app) loop(ctx context.Context, reader *bufio.Reader) error {
	items := a.menu()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, a.render.heading("Select an option:"))
		for _, item := range items {
			fmt.Fprintf(a.out, "%s. %s\n", item.key, item.label)
		}

		line, err := readLine(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		choice := strings.TrimSpace(line)
		item, ok := findItem(items, choice)
		if !ok {
			fmt.Fprintln(a.out, "Invalid option. Please try again.")
			continue
		}
		if item.action == nil {
			return nil
		}
		if err := item.action(ctx, reader); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func findItem(items []menuItem, key string) (menuItem, bool) {
	for _, item := range items {
		if item.key == key {
			return item, true
		}
	}
	return menuItem{}, false
}

// handleAuthoringError prints the user facing message for a failed authoring
// flow. Input errors are returned so the loop can stop.
func (a *app) handleAuthoringError(err error) error {
	switch {
	case errors.Is(err, errUnknownKindOption):
		fmt.Fprintln(a.out, "Invalid option. Please try again.")
	case errors.Is(err, errTooManyInvalid):
		fmt.Fprintln(a.out, "Too many invalid inputs. The question was not saved.")
	case errors.Is(err, quiz.ErrInvalidChoiceIndex),
		errors.Is(err, quiz.ErrEmptyText),
		errors.Is(err, quiz.ErrNoChoices):
		fmt.Fprintf(a.out, "The question was not saved: %v.\n", err)
	default:
		return err
	}
	return nil
}

func (a *app) addQuestion(_ context.Context, reader *bufio.Reader) error {
	question, err := a.authorQuestion(reader)
	if err != nil {
		return a.handleAuthoringError(err)
	}
	a.session.Store().Add(question)
	fmt.Fprintln(a.out, "Question added successfully.")
	return nil
}

func (a *app) promptIndex(reader *bufio.Reader, label string) (int, bool, error) {
	line, err := promptLine(reader, a.out, label)
	if err != nil {
		return 0, false, err
	}
	index, err := parseInt(line)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid index. Please enter a valid integer.")
		return 0, false, nil
	}
	return index, true, nil
}

func (a *app) deleteQuestion(_ context.Context, reader *bufio.Reader) error {
	index, ok, err := a.promptIndex(reader, "Enter the index of the question to delete:")
	if err != nil || !ok {
		return err
	}
	if !a.session.Store().Delete(index) {
		fmt.Fprintf(a.out, "No question at index %d.\n", index)
		return nil
	}
	fmt.Fprintln(a.out, "Question deleted successfully.")
	return nil
}

func (a *app) editQuestion(_ context.Context, reader *bufio.Reader) error {
	index, ok, err := a.promptIndex(reader, "Enter the index of the question to edit:")
	if err != nil || !ok {
		return err
	}
	if _, exists := a.session.Store().EntryAt(index); !exists {
		fmt.Fprintf(a.out, "No question at index %d.\n", index)
		return nil
	}

	question, err := a.authorQuestion(reader)
	if err != nil {
		return a.handleAuthoringError(err)
	}
	if !a.session.Store().Replace(index, question) {
		fmt.Fprintf(a.out, "No question at index %d.\n", index)
		return nil
	}
	fmt.Fprintln(a.out, "Question edited successfully.")
	return nil
}

// consoleAnswers shows each question and reads the reply from the console.
type consoleAnswers struct {
	reader *bufio.Reader
	out    io.Writer
	render renderer
}

func (c consoleAnswers) ReadAnswer(_ context.Context, _ int, question quiz.Question) (string, error) {
	fmt.Fprintf(c.out, "%s %s\n", c.render.kindTag(question.Kind()), question.Text())
	if mc, ok := question.(quiz.MultipleChoice); ok {
		for _, choice := range mc.Choices {
			fmt.Fprintf(c.out, "  - %s\n", choice)
		}
	}
	return readLine(c.reader)
}

func (a *app) play(ctx context.Context, reader *bufio.Reader) error {
	if a.session.Store().Len() == 0 {
		fmt.Fprintln(a.out, a.render.notice("There are no questions yet. Add some first."))
		return nil
	}

	result, err := a.session.Play(ctx, consoleAnswers{reader: reader, out: a.out, render: a.render})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.render.score(result.Score, result.Total))
	fmt.Fprintf(a.out, "Time taken: %s\n", formatElapsed(result.Elapsed))
	return nil
}

func (a *app) showCorrectAnswers(_ context.Context, _ *bufio.Reader) error {
	review := a.session.Review()
	if len(review) == 0 {
		fmt.Fprintln(a.out, a.render.notice("No answers recorded yet. Play the quiz first."))
		return nil
	}

	fmt.Fprintln(a.out, a.render.heading("Correct Answers:"))
	if !a.render.color {
		for _, entry := range review {
			fmt.Fprintf(a.out, "%s [%s]: %s\n", entry.Text, entry.Kind, entry.Answer)
		}
		return nil
	}
	rows := make([][]string, 0, len(review))
	for _, entry := range review {
		rows = append(rows, []string{strconv.Itoa(entry.Position), entry.Text, entry.Kind, entry.Answer})
	}
	fmt.Fprint(a.out, a.render.table([]string{"#", "Question", "Kind", "Answer"}, rows))
	return nil
}

func (a *app) listQuestions(_ context.Context, _ *bufio.Reader) error {
	entries := a.session.Store().Entries()
	if len(entries) == 0 {
		fmt.Fprintln(a.out, a.render.notice("There are no questions yet."))
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for index, entry := range entries {
		rows = append(rows, []string{strconv.Itoa(index), entry.Question.Kind(), entry.Question.Text()})
	}
	fmt.Fprint(a.out, a.render.table([]string{"Index", "Kind", "Question"}, rows))
	return nil
}

func (a *app) importTrivia(ctx context.Context, _ *bufio.Reader) error {
	if a.trivia == nil {
		fmt.Fprintln(a.out, a.render.notice("Trivia import is disabled."))
		return nil
	}
	raw, err := a.trivia.FetchQuestions(ctx, a.triviaAmount)
	if err != nil {
		a.logger.Warn("trivia import failed", zap.Error(err))
		fmt.Fprintf(a.out, "Could not fetch trivia questions: %v\n", err)
		return nil
	}
	questions := quiz.FromTrivia(raw)
	a.session.Store().AddAll(questions)
	a.logger.Info("trivia imported", zap.Int("fetched", len(raw)), zap.Int("added", len(questions)))
	fmt.Fprintf(a.out, "Imported %d questions.\n", len(questions))
	return nil
}

func (a *app) showHistory(ctx context.Context, _ *bufio.Reader) error {
	plays, err := a.session.History(ctx, a.historyLimit)
	if err != nil && !errors.Is(err, quiz.ErrNoPlays) {
		return err
	}
	if len(plays) == 0 {
		fmt.Fprintln(a.out, a.render.notice("No play-throughs yet."))
		return nil
	}

	rows := make([][]string, 0, len(plays))
	for _, play := range plays {
		rows = append(rows, []string{
			play.StartedAt.Local().Format("15:04:05"),
			fmt.Sprintf("%d/%d", play.Score, play.Total),
			formatElapsed(play.Elapsed),
		})
	}
	fmt.Fprintln(a.out, a.render.heading("Recent play-throughs:"))
	fmt.Fprint(a.out, a.render.table([]string{"Started", "Score", "Time"}, rows))

	best, err := a.session.BestPlay(ctx)
	if err != nil {
		if errors.Is(err, quiz.ErrNoPlays) {
			return nil
		}
		return err
	}
	fmt.Fprintf(a.out, "Best score: %d/%d in %s\n", best.Score, best.Total, formatElapsed(best.Elapsed))
	return nil
}
