package history

import (
	"context"
	"iter"
	"slices"
	"sync"
)

// Memory is an in-memory Store. It is safe for concurrent use and intended
// primarily for testing.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Put(_ context.Context, rec Record) error {
	data, err := encode(rec)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[rec.Digest] = data
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(_ context.Context, digest string) (*Record, error) {
	m.mu.RLock()
	data, ok := m.data[digest]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	rec, err := decode(data)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (m *Memory) List(_ context.Context) iter.Seq2[Record, error] {
	// Snapshot under read lock.
	m.mu.RLock()
	digests := make([]string, 0, len(m.data))
	values := make(map[string][]byte, len(m.data))
	for d, v := range m.data {
		digests = append(digests, d)
		values[d] = v
	}
	m.mu.RUnlock()
	slices.Sort(digests)

	return func(yield func(Record, error) bool) {
		for _, d := range digests {
			rec, err := decode(values[d])
			if !yield(rec, err) {
				return
			}
		}
	}
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	clear(m.data)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error {
	return nil
}
