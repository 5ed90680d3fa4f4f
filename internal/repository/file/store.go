package file

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-cli/internal/domain"
)

const saveExt = ".json"

// Store keeps saves as JSON files under a directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve save directory %s", dir)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create save directory %s", abs)
	}
	return &Store{dir: abs, logger: logger.Named("file-store")}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes the payload to a temp file first and renames it into place, so
// a reader never sees a half written save.
func (s *Store) Save(ctx context.Context, name string, payload []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create directory for %s", name)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".save-*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return "", errors.Wrapf(err, "failed to write save %s", name)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to close save %s", name)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", errors.Wrapf(err, "failed to move save into %s", path)
	}

	s.logger.Info("game saved", zap.String("path", path), zap.Int("bytes", len(payload)))
	return path, nil
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(domain.ErrSaveNotFound, "%s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read save %s", path)
	}

	s.logger.Info("game read", zap.String("path", path), zap.Int("bytes", len(data)))
	return data, nil
}

// List returns the .json files directly under the save directory.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", s.dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), saveExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// resolve keeps every save inside the store directory.
func (s *Store) resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || !filepath.IsLocal(name) {
		return "", errors.Wrapf(domain.ErrInvalidSaveName, "%q", name)
	}
	return filepath.Join(s.dir, name), nil
}
