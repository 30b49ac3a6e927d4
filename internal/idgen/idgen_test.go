package idgen

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestSequence_Next(t *testing.T) {
	t.Run("starts at one", func(t *testing.T) {
		gen := NewSequence()

		for want := int64(1); want <= 3; want++ {
			got, err := gen.Next()
			if err != nil {
				t.Fatalf("Next() unexpected error: %v", err)
			}
			if got != want {
				t.Fatalf("Next() = %d, want %d", got, want)
			}
		}
	})

	t.Run("honours StartAfter", func(t *testing.T) {
		gen := NewSequence(StartAfter(41))

		got, err := gen.Next()
		if err != nil {
			t.Fatalf("Next() unexpected error: %v", err)
		}
		if got != 42 {
			t.Fatalf("Next() = %d, want 42", got)
		}
	})

	t.Run("ignores negative StartAfter", func(t *testing.T) {
		gen := NewSequence(StartAfter(-10))

		got, _ := gen.Next()
		if got != 1 {
			t.Fatalf("Next() = %d, want 1", got)
		}
	})

	t.Run("reports exhaustion", func(t *testing.T) {
		gen := NewSequence(StartAfter(math.MaxInt64 - 1))

		if _, err := gen.Next(); err != nil {
			t.Fatalf("Next() unexpected error: %v", err)
		}
		if _, err := gen.Next(); !errors.Is(err, ErrExhausted) {
			t.Fatalf("Next() error = %v, want %v", err, ErrExhausted)
		}
	})
}

func TestSequence_Observe(t *testing.T) {
	t.Run("skips past observed ids", func(t *testing.T) {
		gen := NewSequence()
		gen.Observe(10)

		got, _ := gen.Next()
		if got != 11 {
			t.Fatalf("Next() = %d, want 11", got)
		}
	})

	t.Run("lower ids do not rewind", func(t *testing.T) {
		gen := NewSequence(StartAfter(20))
		gen.Observe(3)

		got, _ := gen.Next()
		if got != 21 {
			t.Fatalf("Next() = %d, want 21", got)
		}
	})
}

func TestSequence_Concurrent(t *testing.T) {
	gen := NewSequence()

	const workers, perWorker = 8, 250
	var (
		mu   sync.Mutex
		seen = make(map[int64]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				id, err := gen.Next()
				if err != nil {
					t.Errorf("Next() unexpected error: %v", err)
					return
				}
				mu.Lock()
				if _, dup := seen[id]; dup {
					t.Errorf("duplicate id %d", id)
				}
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Fatalf("generated %d ids, want %d", len(seen), workers*perWorker)
	}
}
