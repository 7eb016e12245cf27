package file

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/gridfile"
)

// Store implements ports.MazeStore using the local filesystem.
// Each maze lives in <BasePath>/<name>.txt using the digit grid format.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".wayfinder/mazes".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".wayfinder", "mazes")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	return filepath.Join(s.BasePath, name+gridfile.Ext), nil
}

// Save writes the grid atomically: temp file, fsync, then rename over the target.
func (s *Store) Save(ctx context.Context, name string, grid *domain.Grid) error {
	destPath, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure maze directory: %w", err)
	}

	var buf bytes.Buffer
	if err := gridfile.Encode(&buf, grid); err != nil {
		return fmt.Errorf("failed to encode maze: %w", err)
	}

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+name+"-*"+gridfile.Ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows refuses to rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename does not replace an existing target on Windows.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing maze file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to maze file: %w", err)
	}
	return nil
}

// Load reads and decodes the maze file.
func (s *Store) Load(ctx context.Context, name string) (*domain.Grid, error) {
	filePath, err := s.path(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrMazeNotFound
		}
		return nil, fmt.Errorf("failed to open maze file: %w", err)
	}
	defer f.Close()

	grid, err := gridfile.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode maze %q: %w", name, err)
	}
	return grid, nil
}

// Delete removes the maze file.
func (s *Store) Delete(ctx context.Context, name string) error {
	filePath, err := s.path(name)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete maze file: %w", err)
	}
	return nil
}

// List returns the names of all maze files, skipping in-flight temp files.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list mazes: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || filepath.Ext(fileName) != gridfile.Ext || strings.HasPrefix(fileName, "tmp-") {
			continue
		}
		names = append(names, strings.TrimSuffix(fileName, gridfile.Ext))
	}
	sort.Strings(names)
	return names, nil
}
