package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zeusync/sceneedit/internal/core/observability/log"
)

var _ KeyValue = (*FileStore)(nil)

var ErrCorruptStore = errors.New("store file is corrupt")

// FileStore persists every key in one JSON object file. The file is rewritten
// whole on each change through a temp file and rename. A file that cannot be
// decoded fails reads; the next write moves it aside and starts over.
type FileStore struct {
	mx     sync.Mutex
	path   string
	logger log.Log
}

func NewFileStore(path string, logger log.Log) *FileStore {
	return &FileStore{path: path, logger: logger.Named("storage")}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	values, err := s.read()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return ErrEmptyKey
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	values, err := s.readForWrite()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	values, err := s.readForWrite()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.write(values)
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", s.path, err)
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err = json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptStore, s.path, err)
	}
	return values, nil
}

// readForWrite is read, except that a corrupt file is renamed out of the way
// and an empty store is returned.
func (s *FileStore) readForWrite() (map[string]string, error) {
	values, err := s.read()
	if !errors.Is(err, ErrCorruptStore) {
		return values, err
	}

	aside := fmt.Sprintf("%s.corrupt-%d", s.path, time.Now().UnixNano())
	if rerr := os.Rename(s.path, aside); rerr != nil {
		return nil, fmt.Errorf("move corrupt store %s: %w", s.path, rerr)
	}
	s.logger.Warn("store file is corrupt, starting empty",
		log.String("path", s.path),
		log.String("moved_to", aside),
		log.Error(err),
	)
	return make(map[string]string), nil
}

func (s *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace store %s: %w", s.path, err)
	}
	return nil
}
