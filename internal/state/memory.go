package state

import (
	"context"
	"sync"
)

// MemoryManager is an in-process Manager used in tests and when no Redis is
// configured. Progress is lost on restart.
type MemoryManager struct {
	mu     sync.Mutex
	offset int
}

func NewMemoryManager() *MemoryManager {
	return &MemoryManager{}
}

func (m *MemoryManager) ScanOffset(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.offset, nil
}

func (m *MemoryManager) AdvanceScanOffset(_ context.Context, offset int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset > m.offset {
		m.offset = offset
	}
	return nil
}
