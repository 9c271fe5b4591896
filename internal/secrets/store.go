// Package secrets keeps small credentials (the session token) on the local
// machine behind a get/set/delete capability.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jask/idcard/internal/config"
	"github.com/jask/idcard/internal/database"
)

// TokenKey is the only key the app writes.
const TokenKey = "token"

var (
	ErrNotFound    = errors.New("secrets: key not found")
	ErrKeyRequired = errors.New("secrets: key required")
)

// Store is a small key-value capability for secrets. Implementations are safe
// for use from the command goroutines bubbletea spawns.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Open builds the backend named by cfg.Backend. The closer releases any
// underlying handle and is never nil on success.
func Open(cfg config.StoreConfig) (Store, io.Closer, error) {
	switch cfg.Backend {
	case "", "file":
		sealer, err := NewSealer(cfg.Passphrase)
		if err != nil {
			return nil, nil, err
		}
		return NewFileStore(filepath.Join(cfg.Path, fileName), sealer), nopCloser{}, nil
	case "sqlite":
		sealer, err := NewSealer(cfg.Passphrase)
		if err != nil {
			return nil, nil, err
		}
		db, err := database.OpenMigrated(filepath.Join(cfg.Path, dbName))
		if err != nil {
			return nil, nil, fmt.Errorf("open secrets db: %w", err)
		}
		return NewSQLiteStore(db, sealer), db, nil
	case "memory":
		return NewMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("secrets: unknown backend %q", cfg.Backend)
	}
}

func norm(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func normKey(key string) (string, error) {
	if key = norm(key); key == "" {
		return "", ErrKeyRequired
	}
	return key, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
