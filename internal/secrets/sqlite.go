package secrets

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/idcard/internal/database"
	"github.com/jask/idcard/internal/database/repository"
)

// SQLiteStore keeps sealed secrets in the local sqlite database.
type SQLiteStore struct {
	repo   *repository.SecretRepo
	sealer *Sealer
}

func NewSQLiteStore(db *sql.DB, sealer *Sealer) *SQLiteStore {
	return &SQLiteStore{repo: repository.NewSecretRepo(db), sealer: sealer}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	key, err := normKey(key)
	if err != nil {
		return "", err
	}
	row, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	if row == nil {
		return "", ErrNotFound
	}
	pt, err := s.sealer.Open(row.Value)
	if err != nil {
		return "", fmt.Errorf("unseal %s: %w", key, err)
	}
	return string(pt), nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	key, err := normKey(key)
	if err != nil {
		return err
	}
	ct, err := s.sealer.Seal([]byte(value))
	if err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, repository.Secret{Key: key, Value: ct, UpdatedAt: database.Now()}); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	key, err := normKey(key)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
