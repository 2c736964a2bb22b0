package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"pediacenter/pkg/logger"
	"pediacenter/pkg/model"
)

type bookingsFile struct {
	Bookings []*model.Booking `json:"bookings"`
}

// FileStore keeps the collection in a single JSON document of the form
// {"bookings": [...]}.
type FileStore struct {
	path string
	log  *logger.Logger
}

func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

func (s *FileStore) Load(ctx context.Context) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("Bookings file unreadable, starting empty", "path", s.path, "error", err)
		}
		return []*model.Booking{}, nil
	}

	var doc bookingsFile
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn("Bookings file is corrupt, starting empty", "path", s.path, "error", err)
		return []*model.Booking{}, nil
	}

	return prepare(doc.Bookings), nil
}

func (s *FileStore) Save(ctx context.Context, bookings []*model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}
	data, err := json.MarshalIndent(bookingsFile{Bookings: bookings}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bookings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".bookings-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace bookings file: %w", err)
	}
	return nil
}
