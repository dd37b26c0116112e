package storage

import (
	"context"
	"sync"
)

// Memory is a process-local Storage. It backs tests and the "memory" driver.
type Memory struct {
	mu       sync.RWMutex
	entries  map[string]string
	saveErr  error
	loadErr  error
	saveHits int
}

func NewMemory() *Memory {
	return &Memory{entries: map[string]string{}}
}

// NewMemoryWith seeds the store with existing entries.
func NewMemoryWith(entries map[string]string) *Memory {
	m := NewMemory()
	for k, v := range entries {
		m.entries[k] = v
	}
	return m
}

func (m *Memory) Load(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.loadErr != nil {
		return "", false, m.loadErr
	}
	value, ok := m.entries[key]
	return value, ok, nil
}

func (m *Memory) Save(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveHits++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	delete(m.entries, key)
	return nil
}

// FailSaves makes every subsequent Save and Delete return err. Pass nil to
// restore normal behaviour.
func (m *Memory) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// FailLoads makes every subsequent Load return err.
func (m *Memory) FailLoads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// Raw returns the stored payload for key.
func (m *Memory) Raw(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[key]
	return value, ok
}

// SaveCount reports how many Save calls were attempted.
func (m *Memory) SaveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saveHits
}
