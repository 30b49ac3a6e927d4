package siteconfig

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/sundayezeilo/websitio/internal/cache"
)

// Cache is the byte cache CachedStore writes through. *cache.Redis satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	// Add sets key only if it is absent.
	Add(ctx context.Context, key string, val []byte, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

const (
	DefaultCacheTTL    = 5 * time.Minute
	DefaultCachePrefix = "websitio:config:"
)

// CachedStore caches single-config reads in front of another Store.
// Writes go to the inner store first. Update then writes the new config to
// the cache; Create and Delete drop the entry. Read fills only add missing
// entries, so a slow read cannot replace what a concurrent Update stored.
// A read that races a Delete can still cache the deleted row until the TTL.
// A cache fault is logged and never fails the call.
type CachedStore struct {
	next   Store
	cache  Cache
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

var _ Store = (*CachedStore)(nil)

type CachedStoreConfig struct {
	TTL    time.Duration
	Prefix string
	Logger *slog.Logger
}

func NewCachedStore(next Store, c Cache, cfg *CachedStoreConfig) *CachedStore {
	if cfg == nil {
		cfg = &CachedStoreConfig{}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultCachePrefix
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CachedStore{
		next:   next,
		cache:  c,
		ttl:    ttl,
		prefix: prefix,
		logger: logger,
	}
}

func (s *CachedStore) key(id int64) string {
	return s.prefix + strconv.FormatInt(id, 10)
}

func (s *CachedStore) Get(ctx context.Context, id int64) (WebsiteConfig, error) {
	key := s.key(id)

	raw, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var cfg WebsiteConfig
		if err := json.Unmarshal(raw, &cfg); err == nil {
			return cfg, nil
		}
		s.logger.WarnContext(ctx, "dropping undecodable cache entry", "key", key)
		s.invalidate(ctx, id)
	case !errors.Is(err, cache.ErrMiss):
		s.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err.Error())
	}

	cfg, err := s.next.Get(ctx, id)
	if err != nil {
		return WebsiteConfig{}, err
	}
	s.fill(ctx, cfg)
	return cfg, nil
}

func (s *CachedStore) Create(ctx context.Context, cfg WebsiteConfig) (WebsiteConfig, error) {
	created, err := s.next.Create(ctx, cfg)
	if err != nil {
		return WebsiteConfig{}, err
	}
	s.invalidate(ctx, created.ID)
	return created, nil
}

func (s *CachedStore) Update(ctx context.Context, cfg WebsiteConfig) (WebsiteConfig, error) {
	updated, err := s.next.Update(ctx, cfg)
	if err != nil {
		return WebsiteConfig{}, err
	}
	s.store(ctx, updated)
	return updated, nil
}

func (s *CachedStore) Delete(ctx context.Context, id int64) error {
	if err := s.next.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CachedStore) List(ctx context.Context) ([]WebsiteConfig, error) {
	return s.next.List(ctx)
}

func (s *CachedStore) fill(ctx context.Context, cfg WebsiteConfig) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		s.logger.WarnContext(ctx, "cache encode failed", "id", cfg.ID, "error", err.Error())
		return
	}
	if _, err := s.cache.Add(ctx, s.key(cfg.ID), raw, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "id", cfg.ID, "error", err.Error())
	}
}

// store replaces the cached entry with cfg, dropping it if the write fails.
func (s *CachedStore) store(ctx context.Context, cfg WebsiteConfig) {
	raw, err := json.Marshal(cfg)
	if err == nil {
		err = s.cache.Set(ctx, s.key(cfg.ID), raw, s.ttl)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "id", cfg.ID, "error", err.Error())
		s.invalidate(ctx, cfg.ID)
	}
}

func (s *CachedStore) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, s.key(id)); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed", "id", id, "error", err.Error())
	}
}
