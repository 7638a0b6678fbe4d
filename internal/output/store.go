// Package output writes generated artifacts and enforces per-type retention.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ObjectInfo describes one stored artifact.
type ObjectInfo struct {
	Name      string
	Size      int64
	CreatedAt time.Time
}

// Store is where artifacts live. Names are flat; no directories.
type Store interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
	List(ctx context.Context) ([]ObjectInfo, error)
	Delete(ctx context.Context, name string) error
}

// LocalStore keeps artifacts in a single directory.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Dir() string { return s.dir }

// Put writes data to dir/name and returns the path.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if filepath.Base(name) != name {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

// List returns regular files in the directory. Artifacts are written once
// and never modified, so the modification time stands in for creation time.
func (s *LocalStore) List(ctx context.Context) ([]ObjectInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]ObjectInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		out = append(out, ObjectInfo{Name: e.Name(), Size: info.Size(), CreatedAt: info.ModTime()})
	}
	return out, nil
}

func (s *LocalStore) Delete(ctx context.Context, name string) error {
	return os.Remove(filepath.Join(s.dir, name))
}
