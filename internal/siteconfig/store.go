package siteconfig

import "context"

// Store persists website configs. Implementations report failures as errx
// errors: NotFound for a missing ID, Conflict when an explicit ID is taken
// and Unavailable when the backend cannot be reached.
type Store interface {
	Get(ctx context.Context, id int64) (WebsiteConfig, error)
	// Create assigns the next ID when cfg.ID is zero and keeps cfg.ID otherwise.
	Create(ctx context.Context, cfg WebsiteConfig) (WebsiteConfig, error)
	Update(ctx context.Context, cfg WebsiteConfig) (WebsiteConfig, error)
	Delete(ctx context.Context, id int64) error
	// List returns every config ordered by ID.
	List(ctx context.Context) ([]WebsiteConfig, error)
}
