package drafts

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps drafts in a map. It is the store of tests and of
// daemons started without a database.
type MemoryStore struct {
	mu     sync.Mutex
	drafts map[string]Draft
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]Draft)}
}

func (m *MemoryStore) List(_ context.Context) ([]Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]Draft, 0, len(m.drafts))
	for _, d := range m.drafts {
		list = append(list, d.clone())
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Draft, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.drafts[id]
	if !ok {
		return Draft{}, false, nil
	}
	return d.clone(), true, nil
}

func (m *MemoryStore) Insert(_ context.Context, d Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.drafts[d.ID] = d.clone()
	return nil
}

func (m *MemoryStore) Update(_ context.Context, id string, apply func(*Draft) error) (Draft, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.drafts[id]
	if !ok {
		return Draft{}, false, nil
	}
	d = d.clone()
	if err := apply(&d); err != nil {
		return Draft{}, true, err
	}
	m.drafts[id] = d
	return d.clone(), true, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.drafts[id]; !ok {
		return false, nil
	}
	delete(m.drafts, id)
	return true, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }
