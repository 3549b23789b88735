package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"jobradar/internal/database"

	"github.com/google/uuid"
)

// MatchRun records one scrape-and-match pass for auditing. The core
// pipeline never touches this; the HTTP layer writes it after the fact.
type MatchRun struct {
	ID           uuid.UUID
	Location     string
	SkillCount   int
	JobCount     int
	GapCount     int
	SourceErrors int
	Duration     time.Duration
	CreatedAt    time.Time
}

type MatchRunRepository interface {
	Save(ctx context.Context, run MatchRun) error
	CountSince(ctx context.Context, since time.Time) (int, error)
}

type PostgresMatchRunRepository struct {
	db database.DB

	initOnce sync.Once
	initErr  error
}

func NewPostgresMatchRunRepository(db database.DB) *PostgresMatchRunRepository {
	return &PostgresMatchRunRepository{db: db}
}

func (r *PostgresMatchRunRepository) ensureTable(ctx context.Context) error {
	r.initOnce.Do(func() {
		_, r.initErr = r.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS match_runs (
			id UUID PRIMARY KEY,
			location TEXT,
			skill_count INT NOT NULL,
			job_count INT NOT NULL,
			gap_count INT NOT NULL,
			source_errors INT NOT NULL,
			duration_ms BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	})
	return r.initErr
}

func (r *PostgresMatchRunRepository) Save(ctx context.Context, run MatchRun) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("nil repository/db")
	}
	if err := r.ensureTable(ctx); err != nil {
		return err
	}

	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO match_runs (id, location, skill_count, job_count, gap_count, source_errors, duration_ms, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		run.ID,
		nullableText(run.Location),
		run.SkillCount,
		run.JobCount,
		run.GapCount,
		run.SourceErrors,
		run.Duration.Milliseconds(),
		createdAt,
	)
	return err
}

func (r *PostgresMatchRunRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("nil repository/db")
	}
	if err := r.ensureTable(ctx); err != nil {
		return 0, err
	}

	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM match_runs WHERE created_at >= $1`, since)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func nullableText(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

var _ MatchRunRepository = (*PostgresMatchRunRepository)(nil)
