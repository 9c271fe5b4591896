package secrets

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	fileName = "keys.json"
	dbName   = "secrets.db"
)

type secretFile struct {
	Keys map[string]string `json:"keys"` // key -> base64(ciphertext)
}

// FileStore is a per-user secret file (0600) with sealed values.
type FileStore struct {
	path   string
	sealer *Sealer
	mu     sync.Mutex
}

func NewFileStore(path string, sealer *Sealer) *FileStore {
	return &FileStore{path: path, sealer: sealer}
}

func (f *FileStore) Get(_ context.Context, key string) (string, error) {
	key, err := normKey(key)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	sf, err := load(f.path)
	if err != nil {
		return "", err
	}
	enc, ok := sf.Keys[key]
	if !ok {
		return "", ErrNotFound
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", key, err)
	}
	pt, err := f.sealer.Open(raw)
	if err != nil {
		return "", fmt.Errorf("unseal %s: %w", key, err)
	}
	return string(pt), nil
}

func (f *FileStore) Set(_ context.Context, key, value string) error {
	key, err := normKey(key)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	sf, err := load(f.path)
	if err != nil {
		return err
	}
	if sf.Keys == nil {
		sf.Keys = map[string]string{}
	}
	ct, err := f.sealer.Seal([]byte(value))
	if err != nil {
		return err
	}
	sf.Keys[key] = base64.StdEncoding.EncodeToString(ct)
	return save(f.path, sf)
}

// Delete is a no-op for absent keys.
func (f *FileStore) Delete(_ context.Context, key string) error {
	key, err := normKey(key)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	sf, err := load(f.path)
	if err != nil {
		return err
	}
	if _, ok := sf.Keys[key]; !ok {
		return nil
	}
	delete(sf.Keys, key)
	return save(f.path, sf)
}

func load(path string) (secretFile, error) {
	var sf secretFile
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return secretFile{}, nil
		}
		return sf, err
	}
	if err := json.Unmarshal(data, &sf); err != nil {
		return sf, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return sf, nil
}

func save(path string, sf secretFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil { // restrict directory
		return err
	}
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
