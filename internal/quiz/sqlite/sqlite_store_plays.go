package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"quiz-manager/internal/quiz"
)

const defaultListLimit = 10

func (s *SQLiteStore) RecordPlay(ctx context.Context, record quiz.PlayRecord) error {
	if record.PlayID == "" {
		return errors.New("play id is required")
	}
	if record.StartedAt.IsZero() {
		record.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO plays (play_id, score, total, elapsed_ns, started_at_unix) VALUES (?, ?, ?, ?, ?)`,
		record.PlayID,
		record.Score,
		record.Total,
		int64(record.Elapsed),
		record.StartedAt.UTC().UnixNano(),
	)
	return err
}

// ListPlays returns the most recent plays first.
func (s *SQLiteStore) ListPlays(ctx context.Context, limit int) ([]quiz.PlayRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT play_id, score, total, elapsed_ns, started_at_unix
		 FROM plays
		 ORDER BY started_at_unix DESC, play_id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plays := make([]quiz.PlayRecord, 0)
	for rows.Next() {
		record, err := scanPlay(rows)
		if err != nil {
			return nil, err
		}
		plays = append(plays, record)
	}

	return plays, rows.Err()
}

// BestPlay ranks by score, then by the faster run, then by the earlier start.
func (s *SQLiteStore) BestPlay(ctx context.Context) (quiz.PlayRecord, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT play_id, score, total, elapsed_ns, started_at_unix
		 FROM plays
		 ORDER BY score DESC, elapsed_ns ASC, started_at_unix ASC
		 LIMIT 1`,
	)
	record, err := scanPlay(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.PlayRecord{}, quiz.ErrNoPlays
		}
		return quiz.PlayRecord{}, err
	}
	return record, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlay(row rowScanner) (quiz.PlayRecord, error) {
	var (
		record        quiz.PlayRecord
		elapsedNs     int64
		startedAtUnix int64
	)
	if err := row.Scan(&record.PlayID, &record.Score, &record.Total, &elapsedNs, &startedAtUnix); err != nil {
		return quiz.PlayRecord{}, err
	}
	record.Elapsed = time.Duration(elapsedNs)
	record.StartedAt = time.Unix(0, startedAtUnix).UTC()
	return record, nil
}
