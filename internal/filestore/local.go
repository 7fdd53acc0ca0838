package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

func init() {
	Register("local", newLocalStore)
}

type localConfig struct {
	Dir string `json:"dir"`
}

// localStore keeps exports as flat files under a single directory.
// Keys are service-generated hex ids, never user input, but path
// separators are rejected anyway.
type localStore struct {
	dir string
}

func newLocalStore(args interface{}) (Store, error) {
	var cfg localConfig
	if err := decodeConfig(args, &cfg); err != nil {
		return nil, err
	}
	if cfg.Dir == "" {
		return nil, fmt.Errorf("local store dir is required")
	}
	return &localStore{dir: cfg.Dir}, nil
}

func (s *localStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid file key: %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

func (s *localStore) Save(_ context.Context, key string, r ReadSeekCloser, _ int64) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, r)
	return err
}

func (s *localStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}
