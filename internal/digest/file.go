package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"marketmind/internal/model"
)

// FileStore keeps the digest as a single JSON file at a configured path.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save replaces the document atomically: write to a temp file in the same
// directory, then rename over the old one. Concurrent readers keep the
// previous snapshot until the rename lands.
func (s *FileStore) Save(ctx context.Context, d *model.DailyDigest) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal digest: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create digest dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".digest-*.json")
	if err != nil {
		return fmt.Errorf("create temp digest: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp digest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp digest: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace digest: %w", err)
	}

	return nil
}

func (s *FileStore) Load(ctx context.Context) (*model.DailyDigest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read digest: %w", err)
	}

	var d model.DailyDigest
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal digest: %w", err)
	}

	return &d, nil
}
