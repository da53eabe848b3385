package quiz

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnswerSource supplies one line of user input per question. Implementations
// typically show the question and then block on a line read.
type AnswerSource interface {
	ReadAnswer(ctx context.Context, position int, question Question) (string, error)
}

type AnswerSourceFunc func(ctx context.Context, position int, question Question) (string, error)

func (f AnswerSourceFunc) ReadAnswer(ctx context.Context, position int, question Question) (string, error) {
	return f(ctx, position, question)
}

type Outcome struct {
	Position      int
	EntryID       string
	Kind          string
	Given         string
	Correct       bool
	CorrectAnswer string
}

type Result struct {
	PlayID    string
	Score     int
	Total     int
	Elapsed   time.Duration
	StartedAt time.Time
	Outcomes  []Outcome
}

type ReviewEntry struct {
	Position int
	Text     string
	Kind     string
	Answer   string
}

// Session owns the store and the answers recorded by the latest play-through.
type Session struct {
	store   *Store
	history HistoryRepository
	logger  *zap.Logger
	now     func() time.Time

	// recorded maps entry id to the canonical correct answer captured on the
	// most recent completed Play. An aborted Play leaves it untouched.
	recorded map[string]string
	order    []string
}

func NewSession(store *Store, history HistoryRepository, logger *zap.Logger) *Session {
	if store == nil {
		store = NewStore(logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		store:    store,
		history:  history,
		logger:   logger,
		now:      time.Now,
		recorded: make(map[string]string),
	}
}

func (s *Session) Store() *Store {
	return s.store
}

// Play asks every question in store order, scores the answers and records the
// correct answer of each question for Review. End of input marks the remaining
// questions wrong; any other read error aborts the play-through and keeps the
// answers of the previous one.
func (s *Session) Play(ctx context.Context, answers AnswerSource) (Result, error) {
	entries := s.store.Entries()
	started := s.now()

	recorded := make(map[string]string, len(entries))
	order := make([]string, 0, len(entries))

	result := Result{
		PlayID:    uuid.NewString(),
		Total:     len(entries),
		StartedAt: started,
		Outcomes:  make([]Outcome, 0, len(entries)),
	}

	exhausted := false
	for position, entry := range entries {
		var given string
		if !exhausted {
			line, err := answers.ReadAnswer(ctx, position, entry.Question)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					return Result{}, err
				}
				exhausted = true
			}
			given = line
		}

		correct := entry.Question.CheckAnswer(given)
		if correct {
			result.Score++
		}

		correctText := entry.Question.CorrectAnswerText()
		recorded[entry.ID] = correctText
		order = append(order, correctText)

		result.Outcomes = append(result.Outcomes, Outcome{
			Position:      position,
			EntryID:       entry.ID,
			Kind:          entry.Question.Kind(),
			Given:         given,
			Correct:       correct,
			CorrectAnswer: correctText,
		})
	}

	// time.Time carries a monotonic reading, so Sub ignores wall clock jumps.
	result.Elapsed = s.now().Sub(started)
	s.recorded = recorded
	s.order = order

	s.logger.Info("play-through finished",
		zap.String("play_id", result.PlayID),
		zap.Int("score", result.Score),
		zap.Int("total", result.Total),
		zap.Duration("elapsed", result.Elapsed),
	)

	if s.history != nil {
		err := s.history.RecordPlay(ctx, PlayRecord{
			PlayID:    result.PlayID,
			Score:     result.Score,
			Total:     result.Total,
			Elapsed:   result.Elapsed,
			StartedAt: result.StartedAt,
		})
		if err != nil {
			s.logger.Warn("failed to record play-through", zap.String("play_id", result.PlayID), zap.Error(err))
		}
	}

	return result, nil
}

// RecordedAnswers returns the correct answers captured by the latest Play in the
// order the questions were asked.
func (s *Session) RecordedAnswers() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Review pairs every stored question with the answer recorded for it by the
// latest Play. Questions added or replaced since then have nothing recorded and
// are left out, so the report never misaligns.
func (s *Session) Review() []ReviewEntry {
	entries := s.store.Entries()
	review := make([]ReviewEntry, 0, len(entries))
	for position, entry := range entries {
		answer, ok := s.recorded[entry.ID]
		if !ok {
			continue
		}
		review = append(review, ReviewEntry{
			Position: position,
			Text:     entry.Question.Text(),
			Kind:     entry.Question.Kind(),
			Answer:   answer,
		})
	}
	return review
}

func (s *Session) History(ctx context.Context, limit int) ([]PlayRecord, error) {
	if s.history == nil {
		return nil, ErrNoPlays
	}
	return s.history.ListPlays(ctx, limit)
}

func (s *Session) BestPlay(ctx context.Context) (PlayRecord, error) {
	if s.history == nil {
		return PlayRecord{}, ErrNoPlays
	}
	return s.history.BestPlay(ctx)
}
