package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Secret is a sealed value stored under a key.
type Secret struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// SecretRepo handles the secrets table.
type SecretRepo struct {
	db *sql.DB
}

func NewSecretRepo(db *sql.DB) *SecretRepo { return &SecretRepo{db: db} }

// Get returns nil, nil when the key is absent.
func (r *SecretRepo) Get(ctx context.Context, key string) (*Secret, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM secrets WHERE key = ?`, key)
	var s Secret
	if err := row.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SecretRepo) Upsert(ctx context.Context, s Secret) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO secrets(key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;
	`, s.Key, s.Value, s.UpdatedAt)
	return err
}

func (r *SecretRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM secrets WHERE key = ?`, key)
	return err
}
