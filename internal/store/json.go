package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/idilsaglam/shoplist/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// Every operation holds an exclusive flock on <path>.lock, so a second
// process gets ErrLocked instead of clobbering the file.

const (
	lockRetry   = 100 * time.Millisecond
	lockTimeout = 2 * time.Second
)

type jsonDoc struct {
	Version int                  `json:"version"`
	NextID  int64                `json:"next_id"`
	Items   []model.ShoppingItem `json:"items"`
}

// JSONStore implements Store on a single JSON file.
type JSONStore struct {
	path        string
	mu          sync.Mutex
	lock        *flock.Flock
	lockTimeout time.Duration
	logger      *slog.Logger
}

// NewJSONStore prepares a store at path; the file is created on first write.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	s := &JSONStore{
		path:        path,
		lock:        flock.New(path + ".lock"),
		lockTimeout: lockTimeout,
		logger:      slog.Default().With("component", "store", "driver", DriverJSON),
	}
	// Fail early on an unreadable or too-new file.
	if err := s.with(context.Background(), func(*jsonDoc) bool { return false }); err != nil {
		return nil, err
	}
	s.logger.Info("JSON store initialized", "path", path)
	return s, nil
}

// with loads the document under both locks, runs fn and saves when fn
// reports a change.
func (s *JSONStore) with(ctx context.Context, fn func(doc *jsonDoc) (dirty bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()
	locked, err := s.lock.TryLockContext(lctx, lockRetry)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return ErrLocked
	}
	defer func() { _ = s.lock.Unlock() }()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if !fn(doc) {
		return nil
	}
	return s.save(doc)
}

func (s *JSONStore) load() (*jsonDoc, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &jsonDoc{Version: schemaVersion, NextID: 1}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var doc jsonDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if doc.Version > schemaVersion {
		return nil, fmt.Errorf("%w: file has %d, want %d", ErrUnsupportedSchema, doc.Version, schemaVersion)
	}
	doc.Version = schemaVersion
	if doc.NextID < 1 {
		doc.NextID = 1
	}
	return &doc, nil
}

func (s *JSONStore) save(doc *jsonDoc) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}
	return nil
}

func indexOf(items []model.ShoppingItem, id int64) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// List returns all items ordered by id descending.
func (s *JSONStore) List(ctx context.Context) ([]model.ShoppingItem, error) {
	var out []model.ShoppingItem
	err := s.with(ctx, func(doc *jsonDoc) bool {
		out = make([]model.ShoppingItem, len(doc.Items))
		copy(out, doc.Items)
		return false
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Insert assigns the next id when item.ID is zero; otherwise an existing
// entry with that id is replaced.
func (s *JSONStore) Insert(ctx context.Context, item model.ShoppingItem) (model.ShoppingItem, error) {
	err := s.with(ctx, func(doc *jsonDoc) bool {
		if item.ID == 0 {
			item.ID = doc.NextID
		}
		if item.ID >= doc.NextID {
			doc.NextID = item.ID + 1
		}
		if i := indexOf(doc.Items, item.ID); i >= 0 {
			doc.Items[i] = item
		} else {
			doc.Items = append(doc.Items, item)
		}
		return true
	})
	if err != nil {
		return model.ShoppingItem{}, err
	}
	return item, nil
}

// Update overwrites the entry with item.ID, if any.
func (s *JSONStore) Update(ctx context.Context, item model.ShoppingItem) error {
	return s.with(ctx, func(doc *jsonDoc) bool {
		i := indexOf(doc.Items, item.ID)
		if i < 0 {
			return false
		}
		doc.Items[i] = item
		return true
	})
}

// Delete removes the entry with item.ID, if any.
func (s *JSONStore) Delete(ctx context.Context, item model.ShoppingItem) error {
	return s.with(ctx, func(doc *jsonDoc) bool {
		i := indexOf(doc.Items, item.ID)
		if i < 0 {
			return false
		}
		doc.Items = append(doc.Items[:i], doc.Items[i+1:]...)
		return true
	})
}

// Close removes the lock file.
func (s *JSONStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.lock.Close()
	_ = os.Remove(s.path + ".lock")
	return nil
}
