package store

import (
	"context"
	"sort"
	"sync"

	"github.com/idilsaglam/shoplist/internal/model"
)

// MemoryStore is an in-memory Store, used by tests and the "memory" driver.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[int64]model.ShoppingItem
	nextID int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:  make(map[int64]model.ShoppingItem),
		nextID: 1,
	}
}

func (m *MemoryStore) List(ctx context.Context) ([]model.ShoppingItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.ShoppingItem, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MemoryStore) Insert(ctx context.Context, item model.ShoppingItem) (model.ShoppingItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item.ID == 0 {
		item.ID = m.nextID
	}
	if item.ID >= m.nextID {
		m.nextID = item.ID + 1
	}
	m.items[item.ID] = item
	return item, nil
}

func (m *MemoryStore) Update(ctx context.Context, item model.ShoppingItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[item.ID]; ok {
		m.items[item.ID] = item
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, item model.ShoppingItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, item.ID)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
