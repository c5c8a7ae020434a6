package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/tasklist/internal/model"
)

var (
	ErrIO             = errors.New("storage: io failure")
	ErrMalformedLine  = errors.New("storage: malformed line")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Repository loads and saves the full ordered task list. Save always
// replaces everything previously stored.
type Repository interface {
	Load(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
	Close() error
}

// Open returns the repository for backend rooted at path. An empty backend
// selects the flat file.
func Open(backend, path string) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		repo, err := NewFlatFile(path)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case BackendSQLite:
		repo, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		if err := MigrateUp(repo.db); err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("%w: migrate %s: %w", ErrIO, path, err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func ioErr(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}
