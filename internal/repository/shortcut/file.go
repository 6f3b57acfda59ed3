package shortcut

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/pandora-installer/internal/config"
)

// Repository defines persistence operations for the desktop entry.
type Repository interface {
	Load(ctx context.Context) (*Entry, error)
	Save(ctx context.Context, entry *Entry) error
}

// FileRepository persists the desktop entry to a file on disk.
type FileRepository struct {
	// path is the filesystem location of the descriptor.
	path string
	// mu protects concurrent access to the descriptor.
	mu sync.Mutex
}

// ErrNotFound is returned when no descriptor has been written yet.
var ErrNotFound = errors.New("desktop entry not found")

// NewFileRepository creates a repository for the descriptor at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the descriptor from disk.
func (r *FileRepository) Load(_ context.Context) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read desktop entry: %w", err)
	}

	values, err := Parse(bytes.NewReader(contents))
	if err != nil {
		return nil, err
	}

	return &Entry{
		Name:    values["Name"],
		Exec:    unquoteExec(values["Exec"]),
		Icon:    values["Icon"],
		Release: values[versionKey],
	}, nil
}

// Save writes the descriptor to disk.
func (r *FileRepository) Save(_ context.Context, entry *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var buf bytes.Buffer
	if err := entry.Render(&buf); err != nil {
		return fmt.Errorf("render desktop entry: %w", err)
	}

	if err := os.WriteFile(r.path, buf.Bytes(), config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write desktop entry: %w", err)
	}

	return nil
}
