package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LocalSource serves files already on disk. Each field maps to a path
// relative to the base directory; paths escaping it are rejected.
type LocalSource struct {
	baseDir string

	mu     sync.RWMutex
	files  map[string]string
	errors map[string]error
}

// NewLocalSource creates a LocalSource rooted at baseDir.
func NewLocalSource(baseDir string) (*LocalSource, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	return &LocalSource{
		baseDir: abs,
		files:   make(map[string]string),
		errors:  make(map[string]error),
	}, nil
}

// Attach maps field to a file path relative to the base directory.
func (s *LocalSource) Attach(field, path string) *LocalSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[field] = path
	delete(s.errors, field)
	return s
}

// Fail records a transport error for field, as a failed upload would.
func (s *LocalSource) Fail(field string, err error) *LocalSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors[field] = err
	return s
}

func (s *LocalSource) Lookup(_ context.Context, field string) (Info, error) {
	s.mu.RLock()
	path, ok := s.files[field]
	uploadErr := s.errors[field]
	s.mu.RUnlock()

	if uploadErr != nil {
		return Info{Field: field, Err: uploadErr}, nil
	}
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrFileNotFound, field)
	}

	abs, err := s.resolvePath(path)
	if err != nil {
		return Info{}, err
	}

	stat, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Info{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Info{}, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if stat.IsDir() {
		return Info{}, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	return NewInfo(field, stat.Name(), abs, stat.Size(), func(context.Context) (io.ReadCloser, error) {
		f, err := os.Open(abs)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
		}
		return f, nil
	}), nil
}

// resolvePath keeps every resolved path inside baseDir.
func (s *LocalSource) resolvePath(path string) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(s.baseDir, filepath.Clean(path)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) && absPath != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	return absPath, nil
}
