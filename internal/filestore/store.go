// Package filestore holds uploaded source exports between the upload
// call and the background import job that consumes them. Backends are
// selected by config and registered at init time.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mireo/fitvault/internal/config"
)

type Store interface {
	Save(ctx context.Context, key string, r ReadSeekCloser, size int64) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

type Factory func(args interface{}) (Store, error)

// Backends register from init, before any New call, so the map needs
// no locking.
var backends = map[string]Factory{}

func Register(name string, factory Factory) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || factory == nil {
		panic("filestore: bad registration")
	}
	backends[name] = factory
}

func New(cfg config.FileStoreConfig) (Store, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Type))
	if name == "" {
		return nil, fmt.Errorf("file_store.type is required")
	}
	factory, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown file store type: %s", cfg.Type)
	}
	return factory(cfg.Data)
}

// ReadAll opens a stored export and slurps it into memory. Exports are
// bounded by the upload size limit, so whole-file reads are fine.
func ReadAll(ctx context.Context, store Store, key string) (string, error) {
	rc, err := store.Open(ctx, key)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeConfig maps the free-form file_store.data block onto a backend
// config struct via a json round trip.
func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("store config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode store config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode store config: %w", err)
	}
	return nil
}
