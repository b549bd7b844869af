package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // sqlite driver (pure Go)

	"shopfront/internal/domain"
)

// currentKey is the fixed row key: the store holds at most one identity.
const currentKey = "current"

// Store is the durable record of the signed-in identity, surviving
// process restarts the way browser localStorage survives page loads.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the session database at path and
// applies the schema.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping session db: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS session (
		key TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		role TEXT NOT NULL,
		saved_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply session schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save records the identity, replacing any previous one.
func (s *Store) Save(ctx context.Context, id domain.Identity) error {
	const q = `INSERT INTO session (key, user_id, name, email, role, saved_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			user_id = excluded.user_id,
			name = excluded.name,
			email = excluded.email,
			role = excluded.role,
			saved_at = excluded.saved_at;`
	if _, err := s.db.ExecContext(ctx, q, currentKey, id.ID, id.Name, id.Email, id.Role); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the saved identity, or domain.ErrNotFound when nobody is
// signed in.
func (s *Store) Load(ctx context.Context) (*domain.Identity, error) {
	const q = `SELECT user_id, name, email, role FROM session WHERE key = ?;`
	var id domain.Identity
	err := s.db.QueryRowContext(ctx, q, currentKey).Scan(&id.ID, &id.Name, &id.Email, &id.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &id, nil
}

// Clear removes the saved identity. Clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?;`, currentKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
