package siteconfig

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sundayezeilo/websitio/internal/errx"
	"github.com/sundayezeilo/websitio/internal/idgen"
)

func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func newTestMemoryStore() *MemoryStore {
	return NewMemoryStore(&MemoryStoreConfig{
		Clock: fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	})
}

func TestMemoryStore_CreateAssignsIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestMemoryStore()

	a, err := store.Create(ctx, New("Tacos"))
	require.NoError(t, err)
	b, err := store.Create(ctx, New("Tortas"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
}

func TestMemoryStore_ExplicitID(t *testing.T) {
	ctx := context.Background()
	store := newTestMemoryStore()

	cfg := New("Clínica")
	cfg.ID = 43
	_, err := store.Create(ctx, cfg)
	require.NoError(t, err)

	_, err = store.Create(ctx, cfg)
	assert.True(t, errx.Is(err, errx.Conflict), "got %v", err)

	next, err := store.Create(ctx, New("After"))
	require.NoError(t, err)
	assert.Equal(t, int64(44), next.ID, "sequence must skip explicitly used ids")
}

func TestMemoryStore_UpdateKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := newTestMemoryStore()

	created, err := store.Create(ctx, New("Tacos"))
	require.NoError(t, err)

	created.Phone = "555"
	created.CreatedAt = time.Time{}
	updated, err := store.Update(ctx, created)
	require.NoError(t, err)

	assert.Equal(t, "555", updated.Phone)
	assert.False(t, updated.CreatedAt.IsZero())
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestMemoryStore()

	_, err := store.Get(ctx, 7)
	assert.True(t, errx.Is(err, errx.NotFound))

	_, err = store.Update(ctx, WebsiteConfig{ID: 7, Name: "x"})
	assert.True(t, errx.Is(err, errx.NotFound))

	assert.True(t, errx.Is(store.Delete(ctx, 7), errx.NotFound))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := newTestMemoryStore()

	created, err := store.Create(ctx, New("Tacos"))
	require.NoError(t, err)
	created.Services = append(created.Services, BusinessService{Icon: "leak"})

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Services)
}

func TestMemoryStore_ListOrderedByID(t *testing.T) {
	ctx := context.Background()
	store := newTestMemoryStore()

	for _, id := range []int64{30, 4, 17} {
		cfg := New("c")
		cfg.ID = id
		_, err := store.Create(ctx, cfg)
		require.NoError(t, err)
	}

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []int64{4, 17, 30}, []int64{items[0].ID, items[1].ID, items[2].ID})
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestMemoryStore().List(ctx)
	assert.True(t, errx.Is(err, errx.Unavailable))
}

func TestMemoryStore_ExhaustedGenerator(t *testing.T) {
	store := NewMemoryStore(&MemoryStoreConfig{
		IDGenerator: idgen.NewSequence(idgen.StartAfter(math.MaxInt64)),
	})

	_, err := store.Create(context.Background(), New("Tacos"))
	assert.True(t, errx.Is(err, errx.Unavailable))
}

func TestMemoryStore_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	store := newTestMemoryStore()

	const n = 50
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, New("Tacos"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, n)
}
