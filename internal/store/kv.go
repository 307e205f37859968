package store

import "sync"

// KV — локальное key-value хранилище непрозрачных документов.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

type MemoryKV struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{docs: map[string][]byte{}}
}

func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte{}, b...), true, nil
}

func (m *MemoryKV) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append([]byte{}, value...)
	return nil
}
