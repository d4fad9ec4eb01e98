package memory

import "sync"

// Memory is a bounded history that drops its oldest entries once full
type Memory[T any] struct {
	stream   []T
	capacity int
	mu       sync.RWMutex
}

func New[T any](capacity int) *Memory[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Memory[T]{
		stream:   make([]T, 0, capacity),
		capacity: capacity,
	}
}

// All returns a copy of everything in memory, oldest first
func (m *Memory[T]) All() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modifications
	items := make([]T, len(m.stream))
	copy(items, m.stream)
	return items
}

func (m *Memory[T]) Store(item T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stream = append(m.stream, item)
	if len(m.stream) > m.capacity {
		m.stream = m.stream[len(m.stream)-m.capacity:]
	}
}

// Last returns the most recently stored item
func (m *Memory[T]) Last() (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var zero T
	if len(m.stream) == 0 {
		return zero, false
	}
	return m.stream[len(m.stream)-1], true
}

func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stream)
}

func (m *Memory[T]) Capacity() int {
	return m.capacity
}
