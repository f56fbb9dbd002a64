package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// TranslationAdapter loads a catalog keyed by language code.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves an in-memory catalog.
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// FileAdapter loads a single catalog file from the local file system.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter creates a FileAdapter. A nil parser is picked from the file extension.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	if parser == nil {
		parser = ParserForFile(path)
	}
	return &FileAdapter{parser: parser, path: path}
}

func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if a.parser == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, a.path)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return a.parser.Parse(ctx, content)
}

// FSAdapter loads every supported catalog file found under dir in fsys.
// Files for the same language are merged; later files win on conflicting keys.
type FSAdapter struct {
	fsys fs.FS
	dir  string
}

// NewFSAdapter creates an FSAdapter. Works with os.DirFS and embed.FS alike.
func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir}
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if a.fsys == nil {
		return nil, ErrNilAdapter
	}

	result := make(map[string]map[string]any)
	found := false

	err := fs.WalkDir(a.fsys, a.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Join(ErrFailedToReadDir, err)
		}
		if err := ctx.Err(); err != nil {
			return errors.Join(ErrLoadingCancelled, err)
		}
		if d.IsDir() {
			return nil
		}

		parser := ParserForFile(p)
		if parser == nil {
			return nil
		}

		content, err := fs.ReadFile(a.fsys, p)
		if err != nil {
			return errors.Join(ErrFailedToReadFile, err)
		}
		catalog, err := parser.Parse(ctx, content)
		if err != nil {
			return fmt.Errorf("%s: %w", path.Base(p), err)
		}

		found = true
		for lang, messages := range catalog {
			if result[lang] == nil {
				result[lang] = make(map[string]any)
			}
			mergeMaps(result[lang], messages)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w in %s", ErrNoTranslationFiles, a.dir)
	}

	return result, nil
}

func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			mergeMaps(dstMap, srcMap)
			continue
		}
		dst[k] = v
	}
}
