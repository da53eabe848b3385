package quiz

import (
	"context"
	"errors"
	"time"
)

var ErrNoPlays = errors.New("no play-throughs recorded")

type PlayRecord struct {
	PlayID    string
	Score     int
	Total     int
	Elapsed   time.Duration
	StartedAt time.Time
}

type HistoryRepository interface {
	RecordPlay(ctx context.Context, record PlayRecord) error
	ListPlays(ctx context.Context, limit int) ([]PlayRecord, error)
	BestPlay(ctx context.Context) (PlayRecord, error)
}
