// Package profilefile reads the candidate profile from a YAML file.
package profilefile

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cv-generator/internal/domain"

	"go.yaml.in/yaml/v3"
)

// Store re-reads its file on every call so edits apply to the next request.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) LoadProfile(ctx context.Context) (domain.ProfileSnapshot, error) {
	var p domain.ProfileSnapshot
	if err := ctx.Err(); err != nil {
		return p, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, fmt.Errorf("%w: %s does not exist", domain.ErrNoProfile, s.path)
		}
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", s.path, err)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}
