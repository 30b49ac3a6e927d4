package siteconfig

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/sundayezeilo/websitio/internal/errx"
	"github.com/sundayezeilo/websitio/internal/idgen"
)

// MemoryStore keeps configs in a map. It is the default for development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[int64]WebsiteConfig
	ids  idgen.Generator
	now  func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// MemoryStoreConfig holds optional collaborators for the memory store.
type MemoryStoreConfig struct {
	IDGenerator idgen.Generator
	Clock       func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore(cfg *MemoryStoreConfig) *MemoryStore {
	if cfg == nil {
		cfg = &MemoryStoreConfig{}
	}
	ids := cfg.IDGenerator
	if ids == nil {
		ids = idgen.NewSequence()
	}
	now := cfg.Clock
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	return &MemoryStore{
		byID: make(map[int64]WebsiteConfig),
		ids:  ids,
		now:  now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (WebsiteConfig, error) {
	const op = "siteconfig.memory.Get"

	if err := ctx.Err(); err != nil {
		return WebsiteConfig{}, errx.E(op, errx.Unavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.byID[id]
	if !ok {
		return WebsiteConfig{}, errx.Ef(op, errx.NotFound, "config %d not found", id)
	}
	return cfg.Clone(), nil
}

func (s *MemoryStore) Create(ctx context.Context, cfg WebsiteConfig) (WebsiteConfig, error) {
	const op = "siteconfig.memory.Create"

	if err := ctx.Err(); err != nil {
		return WebsiteConfig{}, errx.E(op, errx.Unavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg.ID == 0 {
		id, err := s.ids.Next()
		if err != nil {
			return WebsiteConfig{}, errx.E(op, errx.Unavailable, err)
		}
		cfg.ID = id
	} else {
		if _, exists := s.byID[cfg.ID]; exists {
			return WebsiteConfig{}, errx.Ef(op, errx.Conflict, "config %d already exists", cfg.ID)
		}
		s.ids.Observe(cfg.ID)
	}

	now := s.now()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now

	s.byID[cfg.ID] = cfg.Clone()
	return cfg.Clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, cfg WebsiteConfig) (WebsiteConfig, error) {
	const op = "siteconfig.memory.Update"

	if err := ctx.Err(); err != nil {
		return WebsiteConfig{}, errx.E(op, errx.Unavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[cfg.ID]
	if !ok {
		return WebsiteConfig{}, errx.Ef(op, errx.NotFound, "config %d not found", cfg.ID)
	}

	cfg.CreatedAt = current.CreatedAt
	cfg.UpdatedAt = s.now()

	s.byID[cfg.ID] = cfg.Clone()
	return cfg.Clone(), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	const op = "siteconfig.memory.Delete"

	if err := ctx.Err(); err != nil {
		return errx.E(op, errx.Unavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return errx.Ef(op, errx.NotFound, "config %d not found", id)
	}
	delete(s.byID, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]WebsiteConfig, error) {
	const op = "siteconfig.memory.List"

	if err := ctx.Err(); err != nil {
		return nil, errx.E(op, errx.Unavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]WebsiteConfig, 0, len(s.byID))
	for _, cfg := range s.byID {
		items = append(items, cfg.Clone())
	}
	slices.SortFunc(items, func(a, b WebsiteConfig) int { return cmp.Compare(a.ID, b.ID) })
	return items, nil
}
