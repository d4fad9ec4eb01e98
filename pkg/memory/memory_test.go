package memory

import (
	"sync"
	"testing"
)

func TestMemory(t *testing.T) {
	t.Run("stores in order", func(t *testing.T) {
		m := New[string](3)
		m.Store("a")
		m.Store("b")

		got := m.All()
		if len(got) != 2 || got[0] != "a" || got[1] != "b" {
			t.Errorf("All() = %v, want [a b]", got)
		}
		if last, ok := m.Last(); !ok || last != "b" {
			t.Errorf("Last() = %q, %v, want b, true", last, ok)
		}
	})

	t.Run("evicts oldest past capacity", func(t *testing.T) {
		m := New[int](3)
		for i := 0; i < 5; i++ {
			m.Store(i)
		}
		got := m.All()
		want := []int{2, 3, 4}
		if len(got) != len(want) {
			t.Fatalf("All() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("All()[%d] = %d, want %d", i, got[i], want[i])
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		m := New[int](0)
		if m.Capacity() != 1 {
			t.Errorf("Capacity() = %d, want 1", m.Capacity())
		}
		if _, ok := m.Last(); ok {
			t.Error("Last() on empty memory should report false")
		}
		if m.Len() != 0 {
			t.Errorf("Len() = %d, want 0", m.Len())
		}
	})

	t.Run("copies are independent", func(t *testing.T) {
		m := New[int](2)
		m.Store(1)
		got := m.All()
		got[0] = 42
		if m.All()[0] != 1 {
			t.Error("modifying All() result changed memory")
		}
	})

	t.Run("concurrent stores", func(t *testing.T) {
		m := New[int](50)
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				for j := 0; j < 20; j++ {
					m.Store(i*100 + j)
				}
			}(i)
		}
		wg.Wait()
		if m.Len() != 50 {
			t.Errorf("Len() = %d, want 50", m.Len())
		}
	})
}
