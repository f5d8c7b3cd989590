// AngelaMos | 2026
// store.go

package avatar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists processed avatars and returns the URL clients should use.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

const localURLPrefix = "/avatars/"

// LocalStore writes avatars under <publicDir>/avatars, served statically at
// /avatars/.
type LocalStore struct {
	dir string
}

func NewLocalStore(publicDir string) (*LocalStore, error) {
	dir := filepath.Join(publicDir, "avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create avatar dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Put(
	_ context.Context,
	key string,
	data []byte,
	_ string,
) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".put-*")
	if err != nil {
		return "", fmt.Errorf("create avatar temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()        //nolint:errcheck // cleanup on write failure
		_ = os.Remove(tmpName) //nolint:errcheck // cleanup on write failure
		return "", fmt.Errorf("write avatar: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // cleanup on close failure
		return "", fmt.Errorf("close avatar: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, key)); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // cleanup on rename failure
		return "", fmt.Errorf("move avatar into place: %w", err)
	}

	return localURLPrefix + key, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete avatar: %w", err)
	}
	return nil
}

func (s *LocalStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat avatar dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("avatar path %s is not a directory", s.dir)
	}
	return nil
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key != filepath.Base(key) ||
		strings.HasPrefix(key, ".") {
		return fmt.Errorf("invalid avatar key %q", key)
	}
	return nil
}
