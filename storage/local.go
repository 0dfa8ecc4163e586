package storage

import (
	"cblls_server/lib"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileBackend stores each document as one JSON file under a data
// directory. It is the server-side analog of browser local storage,
// including the capacity limit: a write that would push the directory
// past the quota fails with ErrStorageFull and leaves the previous
// document intact.
type FileBackend struct {
	mu    sync.Mutex
	dir   string
	quota int64 // total byte budget across all documents, 0 disables
}

func OpenFile(dir string, quota int64) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileBackend{dir: dir, quota: quota}, nil
}

func (fb *FileBackend) path(key string) string {
	// keys are fixed constants, but never trust them as raw paths
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, key)
	return filepath.Join(fb.dir, safe+".json")
}

func (fb *FileBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	data, err := os.ReadFile(fb.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (fb *FileBackend) Set(ctx context.Context, key string, value []byte) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if fb.quota > 0 {
		used, err := fb.usedBytes(key)
		if err != nil {
			return err
		}
		if used+int64(len(value)) > fb.quota {
			return lib.ErrStorageFull
		}
	}

	// temp file + rename so a failed write never corrupts the document
	target := fb.path(key)
	tmp, err := os.CreateTemp(fb.dir, ".write-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, target)
}

// usedBytes sums the document sizes, excluding the one about to be replaced.
func (fb *FileBackend) usedBytes(excludeKey string) (int64, error) {
	entries, err := os.ReadDir(fb.dir)
	if err != nil {
		return 0, err
	}

	exclude := filepath.Base(fb.path(excludeKey))
	var total int64
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == exclude || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return 0, err
		}
		total += info.Size()
	}
	return total, nil
}

func (fb *FileBackend) Delete(ctx context.Context, key string) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	err := os.Remove(fb.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (fb *FileBackend) Ping(ctx context.Context) error {
	_, err := os.Stat(fb.dir)
	return err
}

func (fb *FileBackend) Close() error {
	return nil
}
