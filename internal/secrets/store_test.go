package secrets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/jask/idcard/internal/config"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	out := map[string]Store{}
	for _, name := range []string{"memory", "file", "sqlite"} {
		s, closer, err := Open(config.StoreConfig{Backend: name, Path: t.TempDir(), Passphrase: "test"})
		require.NoError(t, err, name)
		t.Cleanup(func() { _ = closer.Close() })
		out[name] = s
	}
	return out
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, TokenKey)
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, TokenKey, "abc"))
			got, err := s.Get(ctx, TokenKey)
			require.NoError(t, err)
			require.Equal(t, "abc", got)

			require.NoError(t, s.Set(ctx, " TOKEN ", "def"))
			got, err = s.Get(ctx, TokenKey)
			require.NoError(t, err)
			require.Equal(t, "def", got)

			require.NoError(t, s.Delete(ctx, TokenKey))
			_, err = s.Get(ctx, TokenKey)
			require.ErrorIs(t, err, ErrNotFound)

			// deleting twice is fine
			require.NoError(t, s.Delete(ctx, TokenKey))
		})
	}
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "  ")
			require.ErrorIs(t, err, ErrKeyRequired)
			require.ErrorIs(t, s.Set(ctx, "", "x"), ErrKeyRequired)
			require.ErrorIs(t, s.Delete(ctx, ""), ErrKeyRequired)
		})
	}
}

func TestFileStoreDoesNotWritePlaintext(t *testing.T) {
	dir := t.TempDir()
	sealer, err := NewSealer("pass")
	require.NoError(t, err)
	path := filepath.Join(dir, "sub", fileName)
	s := NewFileStore(path, sealer)

	require.NoError(t, s.Set(context.Background(), TokenKey, "super-secret-token"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.False(t, strings.Contains(string(data), "super-secret-token"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreWrongPassphraseFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)
	a, err := NewSealer("one")
	require.NoError(t, err)
	b, err := NewSealer("two")
	require.NoError(t, err)

	require.NoError(t, NewFileStore(path, a).Set(context.Background(), TokenKey, "abc"))
	_, err = NewFileStore(path, b).Get(context.Background(), TokenKey)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotFound))
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	sealer, err := NewSealer("")
	require.NoError(t, err)

	_, err = NewFileStore(path, sealer).Get(context.Background(), TokenKey)
	require.Error(t, err)
}

func TestSealerRoundTrip(t *testing.T) {
	s, err := NewSealer("")
	require.NoError(t, err)
	ct, err := s.Seal([]byte("hello"))
	require.NoError(t, err)
	pt, err := s.Open(ct)
	require.NoError(t, err)
	require.Equal(t, "hello", string(pt))

	_, err = s.Open([]byte{1, 2})
	require.Error(t, err)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, _, err := Open(config.StoreConfig{Backend: "etcd"})
	require.Error(t, err)
}

func TestSQLiteStoreWrapsQueryErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sealer, err := NewSealer("x")
	require.NoError(t, err)
	s := NewSQLiteStore(db, sealer)

	boom := errors.New("disk I/O error")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value, updated_at FROM secrets WHERE key = ?`)).
		WithArgs(TokenKey).
		WillReturnError(boom)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM secrets WHERE key = ?`)).
		WithArgs(TokenKey).
		WillReturnError(boom)

	_, err = s.Get(context.Background(), TokenKey)
	require.ErrorIs(t, err, boom)
	require.False(t, errors.Is(err, ErrNotFound))

	err = s.Delete(context.Background(), TokenKey)
	require.ErrorIs(t, err, boom)

	require.NoError(t, mock.ExpectationsWereMet())
}
