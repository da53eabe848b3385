package sqlite

import (
	"context"
)

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS plays (
			play_id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			total INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			started_at_unix INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_plays_started_at ON plays(started_at_unix DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_plays_score ON plays(score DESC, elapsed_ns ASC);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
