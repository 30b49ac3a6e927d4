package siteconfig

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/sundayezeilo/websitio/clientslug"
	"github.com/sundayezeilo/websitio/internal/errx"
)

// Messages surfaced to API clients verbatim.
const (
	MsgInvalidClientID = "Invalid client ID"
	MsgClientNotFound  = "Client not found"
	MsgInvalidURL      = "Invalid URL format"
)

// ClientURL is the public address of one config.
type ClientURL struct {
	ClientID     int64        `json:"clientId"`
	BusinessName string       `json:"businessName"`
	ClientURL    string       `json:"clientUrl"`
	FullURL      string       `json:"fullUrl"`
	AbsoluteURL  string       `json:"absoluteUrl,omitempty"`
	TemplateType TemplateType `json:"templateType"`
}

// SlugValidation reports whether a slug is the canonical address of its config.
// When the slug cannot be tied to a config only Valid and Error are set.
type SlugValidation struct {
	Valid        bool         `json:"valid"`
	ClientID     int64        `json:"clientId,omitempty"`
	BusinessName string       `json:"businessName,omitempty"`
	ExpectedURL  string       `json:"expectedUrl,omitempty"`
	ActualURL    string       `json:"actualUrl,omitempty"`
	TemplateType TemplateType `json:"templateType,omitempty"`
	Error        string       `json:"error,omitempty"`
}

// Resolution is the outcome of routing a top-level path segment.
// Redirect is set when the request should move to Canonical instead.
type Resolution struct {
	Config    WebsiteConfig
	Canonical string
	Redirect  bool
}

// DuplicateGroup is a set of configs sharing a name. Keep is the newest one.
type DuplicateGroup struct {
	Name   string          `json:"name"`
	Keep   WebsiteConfig   `json:"keep"`
	Remove []WebsiteConfig `json:"remove"`
}

type CleanupFailure struct {
	ID  int64  `json:"id"`
	Err string `json:"error"`
}

type CleanupReport struct {
	Groups  []DuplicateGroup `json:"groups"`
	Deleted []int64          `json:"deleted"`
	Failed  []CleanupFailure `json:"failed"`
	DryRun  bool             `json:"dryRun"`
}

// SlugAudit flags client configs whose canonical slug does not route back to them.
type SlugAudit struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	OK      bool   `json:"ok"`
	Problem string `json:"problem,omitempty"`
}

type SeedReport struct {
	Deleted []int64         `json:"deleted"`
	Created []WebsiteConfig `json:"created"`
}

// Service defines the website configuration operations used by the API and the admin CLI.
type Service interface {
	Default(ctx context.Context) (WebsiteConfig, error)
	Get(ctx context.Context, id int64) (WebsiteConfig, error)
	Create(ctx context.Context, in Input) (WebsiteConfig, error)
	Update(ctx context.Context, id int64, in Input) (WebsiteConfig, error)
	Delete(ctx context.Context, id int64) error

	ListClients(ctx context.Context) ([]ClientURL, error)
	ClientURL(ctx context.Context, id int64) (ClientURL, error)
	ValidateSlug(ctx context.Context, slug string) (SlugValidation, error)
	ResolveSlug(ctx context.Context, slug string) (Resolution, error)

	FindDuplicates(ctx context.Context) ([]DuplicateGroup, error)
	CleanupDuplicates(ctx context.Context, dryRun bool) (CleanupReport, error)
	AuditSlugs(ctx context.Context) ([]SlugAudit, error)
	Seed(ctx context.Context, inputs []Input, reset bool) (SeedReport, error)
}

type service struct {
	store   Store
	baseURL string
	logger  *slog.Logger
}

// ServiceConfig holds configuration for the service.
type ServiceConfig struct {
	BaseURL string // public origin used for absolute client URLs, e.g. "https://websitiopro.com"
	Logger  *slog.Logger
}

// NewService creates a new service instance.
func NewService(store Store, config *ServiceConfig) Service {
	if config == nil {
		config = &ServiceConfig{}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		store:   store,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		logger:  logger,
	}
}

func (s *service) Default(ctx context.Context) (WebsiteConfig, error) {
	const op = "siteconfig.service.Default"

	cfg, err := s.store.Get(ctx, HomepageID)
	if err == nil {
		return cfg, nil
	}
	if !errx.Is(err, errx.NotFound) {
		return WebsiteConfig{}, errx.Wrap(op, err)
	}

	seed := New(HomepageName)
	seed.ID = HomepageID
	created, err := s.store.Create(ctx, seed)
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "seeded homepage config", "id", created.ID)
		return created, nil
	case errx.Is(err, errx.Conflict):
		// Another request seeded it first.
		cfg, err := s.store.Get(ctx, HomepageID)
		if err != nil {
			return WebsiteConfig{}, errx.Wrap(op, err)
		}
		return cfg, nil
	default:
		return WebsiteConfig{}, errx.Wrap(op, err)
	}
}

func (s *service) Get(ctx context.Context, id int64) (WebsiteConfig, error) {
	const op = "siteconfig.service.Get"

	if id <= 0 {
		return WebsiteConfig{}, errx.Ef(op, errx.Invalid, "id must be positive")
	}
	cfg, err := s.store.Get(ctx, id)
	if err != nil {
		return WebsiteConfig{}, errx.Wrap(op, err)
	}
	return cfg, nil
}

func (s *service) Create(ctx context.Context, in Input) (WebsiteConfig, error) {
	const op = "siteconfig.service.Create"

	cfg := Apply(New(""), in)
	if err := Validate(cfg); err != nil {
		return WebsiteConfig{}, errx.E(op, errx.Invalid, err)
	}

	// ID 1 belongs to the homepage; claim it before the store hands out IDs.
	if _, err := s.Default(ctx); err != nil {
		return WebsiteConfig{}, errx.Wrap(op, err)
	}

	created, err := s.store.Create(ctx, cfg)
	if err != nil {
		return WebsiteConfig{}, errx.Wrap(op, err)
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, in Input) (WebsiteConfig, error) {
	const op = "siteconfig.service.Update"

	if id <= 0 {
		return WebsiteConfig{}, errx.Ef(op, errx.Invalid, "id must be positive")
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return WebsiteConfig{}, errx.Wrap(op, err)
	}

	next := Apply(current, in)
	if err := Validate(next); err != nil {
		return WebsiteConfig{}, errx.E(op, errx.Invalid, err)
	}

	updated, err := s.store.Update(ctx, next)
	if err != nil {
		return WebsiteConfig{}, errx.Wrap(op, err)
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	const op = "siteconfig.service.Delete"

	if id <= 0 {
		return errx.Ef(op, errx.Invalid, "id must be positive")
	}
	if id == HomepageID {
		return errx.Ef(op, errx.Forbidden, "the homepage config cannot be deleted")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return errx.Wrap(op, err)
	}
	return nil
}

/***************
 * Client URLs
 ***************/

func (s *service) clientURL(cfg WebsiteConfig) (ClientURL, bool) {
	slug, ok := clientslug.Canonical(cfg.Name, cfg.ID)
	if !ok {
		return ClientURL{}, false
	}

	out := ClientURL{
		ClientID:     cfg.ID,
		BusinessName: cfg.Name,
		ClientURL:    slug,
		FullURL:      "/" + slug,
		TemplateType: cfg.TemplateType,
	}
	if s.baseURL != "" {
		out.AbsoluteURL = s.baseURL + "/" + slug
	}
	return out, true
}

func (s *service) ListClients(ctx context.Context) ([]ClientURL, error) {
	const op = "siteconfig.service.ListClients"

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, errx.Wrap(op, err)
	}

	out := make([]ClientURL, 0, len(all))
	for _, cfg := range all {
		if !IsClient(cfg) {
			continue
		}
		u, ok := s.clientURL(cfg)
		if !ok {
			s.logger.WarnContext(ctx, "client has no addressable slug", "id", cfg.ID, "name", cfg.Name)
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *service) ClientURL(ctx context.Context, id int64) (ClientURL, error) {
	const op = "siteconfig.service.ClientURL"

	if id <= 0 {
		return ClientURL{}, errx.E(op, errx.Invalid, errors.New(MsgInvalidClientID))
	}

	cfg, err := s.store.Get(ctx, id)
	if errx.Is(err, errx.NotFound) {
		return ClientURL{}, errx.E(op, errx.NotFound, errors.New(MsgClientNotFound))
	}
	if err != nil {
		return ClientURL{}, errx.Wrap(op, err)
	}

	u, ok := s.clientURL(cfg)
	if !ok {
		return ClientURL{}, errx.Ef(op, errx.Invalid, "business name %q has no letters or digits", cfg.Name)
	}
	return u, nil
}

func (s *service) ValidateSlug(ctx context.Context, slug string) (SlugValidation, error) {
	const op = "siteconfig.service.ValidateSlug"

	parsed := clientslug.Decode(slug)
	if !parsed.HasID || parsed.ID == 0 {
		return SlugValidation{Error: MsgInvalidURL}, nil
	}

	cfg, err := s.store.Get(ctx, parsed.ID)
	if errx.Is(err, errx.NotFound) {
		return SlugValidation{Error: MsgClientNotFound}, nil
	}
	if err != nil {
		return SlugValidation{}, errx.Wrap(op, err)
	}

	expected, _ := clientslug.Canonical(cfg.Name, cfg.ID)
	return SlugValidation{
		Valid:        expected != "" && slug == expected,
		ClientID:     cfg.ID,
		BusinessName: cfg.Name,
		ExpectedURL:  expected,
		ActualURL:    slug,
		TemplateType: cfg.TemplateType,
	}, nil
}

func (s *service) ResolveSlug(ctx context.Context, slug string) (Resolution, error) {
	const op = "siteconfig.service.ResolveSlug"

	if IsReservedPath(slug) {
		return Resolution{}, errx.Ef(op, errx.NotFound, "%q is not a client address", slug)
	}

	parsed := clientslug.Decode(slug)
	if !parsed.HasID || parsed.ID == 0 {
		return Resolution{}, errx.Ef(op, errx.NotFound, "%q is not a client address", slug)
	}

	cfg, err := s.store.Get(ctx, parsed.ID)
	if err != nil {
		return Resolution{}, errx.Wrap(op, err)
	}

	canonical, ok := clientslug.Canonical(cfg.Name, cfg.ID)
	if !ok {
		return Resolution{}, errx.Ef(op, errx.NotFound, "config %d has no address", cfg.ID)
	}
	if slug != canonical {
		return Resolution{Canonical: canonical, Redirect: true}, nil
	}
	return Resolution{Config: cfg, Canonical: canonical}, nil
}

/***************
 * Maintenance
 ***************/

func (s *service) FindDuplicates(ctx context.Context) ([]DuplicateGroup, error) {
	const op = "siteconfig.service.FindDuplicates"

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, errx.Wrap(op, err)
	}

	byName := make(map[string][]WebsiteConfig)
	for _, cfg := range all {
		if IsProtected(cfg) {
			continue
		}
		byName[cfg.Name] = append(byName[cfg.Name], cfg)
	}

	var groups []DuplicateGroup
	for name, members := range byName {
		if len(members) < 2 {
			continue
		}
		slices.SortFunc(members, newestFirst)
		groups = append(groups, DuplicateGroup{
			Name:   name,
			Keep:   members[0],
			Remove: members[1:],
		})
	}
	slices.SortFunc(groups, func(a, b DuplicateGroup) int { return cmp.Compare(a.Name, b.Name) })
	return groups, nil
}

func newestFirst(a, b WebsiteConfig) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

func (s *service) CleanupDuplicates(ctx context.Context, dryRun bool) (CleanupReport, error) {
	const op = "siteconfig.service.CleanupDuplicates"

	groups, err := s.FindDuplicates(ctx)
	if err != nil {
		return CleanupReport{}, errx.Wrap(op, err)
	}

	report := CleanupReport{
		Groups:  groups,
		Deleted: []int64{},
		Failed:  []CleanupFailure{},
		DryRun:  dryRun,
	}
	if dryRun {
		return report, nil
	}

	for _, g := range groups {
		for _, cfg := range g.Remove {
			if err := s.store.Delete(ctx, cfg.ID); err != nil {
				s.logger.WarnContext(ctx, "failed to delete duplicate config",
					"id", cfg.ID,
					"name", cfg.Name,
					"error", err.Error(),
				)
				report.Failed = append(report.Failed, CleanupFailure{ID: cfg.ID, Err: err.Error()})
				continue
			}
			report.Deleted = append(report.Deleted, cfg.ID)
		}
	}

	s.logger.InfoContext(ctx, "duplicate cleanup finished",
		"groups", len(groups),
		"deleted", len(report.Deleted),
		"failed", len(report.Failed),
	)
	return report, nil
}

func (s *service) AuditSlugs(ctx context.Context) ([]SlugAudit, error) {
	const op = "siteconfig.service.AuditSlugs"

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, errx.Wrap(op, err)
	}

	out := make([]SlugAudit, 0, len(all))
	for _, cfg := range all {
		if !IsClient(cfg) {
			continue
		}

		entry := SlugAudit{ID: cfg.ID, Name: cfg.Name}
		slug, ok := clientslug.Canonical(cfg.Name, cfg.ID)
		switch {
		case !ok:
			entry.Problem = "name has no letters or digits"
		default:
			entry.Slug = slug
			parsed := clientslug.Decode(slug)
			if !parsed.HasID || parsed.ID != cfg.ID {
				entry.Problem = fmt.Sprintf("slug routes to id %d", parsed.ID)
			}
		}
		entry.OK = entry.Problem == ""
		out = append(out, entry)
	}
	return out, nil
}

func (s *service) Seed(ctx context.Context, inputs []Input, reset bool) (SeedReport, error) {
	const op = "siteconfig.service.Seed"

	report := SeedReport{Deleted: []int64{}, Created: []WebsiteConfig{}}

	if reset {
		all, err := s.store.List(ctx)
		if err != nil {
			return report, errx.Wrap(op, err)
		}
		for _, cfg := range all {
			if IsProtected(cfg) {
				continue
			}
			if err := s.store.Delete(ctx, cfg.ID); err != nil && !errx.Is(err, errx.NotFound) {
				return report, errx.Wrap(op, err)
			}
			report.Deleted = append(report.Deleted, cfg.ID)
		}
	}

	// Claim ID 1 for the homepage before any client can take it.
	if _, err := s.Default(ctx); err != nil {
		return report, errx.Wrap(op, err)
	}

	for i, in := range inputs {
		created, err := s.Create(ctx, in)
		if err != nil {
			return report, errx.E(op, errx.KindOf(err), fmt.Errorf("entry %d: %w", i, err))
		}
		report.Created = append(report.Created, created)
	}

	s.logger.InfoContext(ctx, "seed finished",
		"deleted", len(report.Deleted),
		"created", len(report.Created),
	)
	return report, nil
}
