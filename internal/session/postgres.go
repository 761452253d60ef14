package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"designforge/internal/domain"
)

const sessionsSchema = `
CREATE TABLE IF NOT EXISTS design_sessions (
    id         TEXT PRIMARY KEY,
    state      JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`

const (
	qInsertSession = `INSERT INTO design_sessions (id, state, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	qSelectSession = `SELECT state FROM design_sessions WHERE id = $1`
	qUpdateSession = `UPDATE design_sessions SET state = $2, updated_at = $3 WHERE id = $1`
	qDeleteSession = `DELETE FROM design_sessions WHERE id = $1`
)

// PostgresStore persists sessions as JSONB rows so they survive restarts and
// can be shared between instances.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("session: pgx pool is required")
	}
	if _, err := pool.Exec(ctx, sessionsSchema); err != nil {
		return nil, fmt.Errorf("session: ensure schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (p *PostgresStore) Create(ctx context.Context, s *Session) error {
	state, err := s.MarshalBinary()
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", s.ID, err)
	}
	if _, err := p.pool.Exec(ctx, qInsertSession, s.ID, state, s.CreatedAt, s.UpdatedAt); err != nil {
		return fmt.Errorf("session: insert %s: %w", s.ID, err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, id string) (*Session, error) {
	var state []byte
	err := p.pool.QueryRow(ctx, qSelectSession, id).Scan(&state)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("session: load %s: %w", id, err)
	}
	var s Session
	if err := s.UnmarshalBinary(state); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", id, err)
	}
	return &s, nil
}

func (p *PostgresStore) Save(ctx context.Context, s *Session) error {
	s.UpdatedAt = time.Now().UTC()
	state, err := s.MarshalBinary()
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", s.ID, err)
	}
	tag, err := p.pool.Exec(ctx, qUpdateSession, s.ID, state, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("session: update %s: %w", s.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", s.ID, domain.ErrNotFound)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := p.pool.Exec(ctx, qDeleteSession, id); err != nil {
		return fmt.Errorf("session: delete %s: %w", id, err)
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
