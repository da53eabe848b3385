package quiz

import (
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entry pairs a stored question with the id it was given when it entered the
// store. Replacing a question issues a new id.
type Entry struct {
	ID       string
	Question Question
}

// Store is the ordered, index addressed question list of one quiz. Indices stay
// dense: deleting shifts later entries down by one.
type Store struct {
	entries []Entry
	logger  *zap.Logger
}

func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

func (s *Store) Add(question Question) Entry {
	entry := Entry{ID: uuid.NewString(), Question: question}
	s.entries = append(s.entries, entry)
	return entry
}

func (s *Store) AddAll(questions []Question) {
	for _, question := range questions {
		s.Add(question)
	}
}

// Delete removes the question at index. An index outside [0, Len) leaves the
// store untouched and reports false.
func (s *Store) Delete(index int) bool {
	if !s.inRange(index) {
		s.logger.Debug("delete ignored, index out of range", zap.Int("index", index), zap.Int("len", len(s.entries)))
		return false
	}
	s.entries = slices.Delete(s.entries, index, index+1)
	return true
}

// Replace swaps the question at index for question. Out of range indices are
// ignored the same way Delete ignores them.
func (s *Store) Replace(index int, question Question) bool {
	if !s.inRange(index) {
		s.logger.Debug("replace ignored, index out of range", zap.Int("index", index), zap.Int("len", len(s.entries)))
		return false
	}
	s.entries[index] = Entry{ID: uuid.NewString(), Question: question}
	return true
}

func (s *Store) Len() int {
	return len(s.entries)
}

// At returns the question at index, or nil when index is out of range.
func (s *Store) At(index int) Question {
	if !s.inRange(index) {
		return nil
	}
	return s.entries[index].Question
}

func (s *Store) EntryAt(index int) (Entry, bool) {
	if !s.inRange(index) {
		return Entry{}, false
	}
	return s.entries[index], true
}

// Entries returns a copy of the current entries in store order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) inRange(index int) bool {
	return index >= 0 && index < len(s.entries)
}
