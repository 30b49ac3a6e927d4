package siteconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	db "github.com/sundayezeilo/websitio/internal/db/sqlc"
	"github.com/sundayezeilo/websitio/internal/errx"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// querier is the subset of *db.Queries the store needs.
type querier interface {
	CreateWebsiteConfig(ctx context.Context, arg db.CreateWebsiteConfigParams) (db.WebsiteConfig, error)
	GetWebsiteConfig(ctx context.Context, id int64) (db.WebsiteConfig, error)
	ListWebsiteConfigs(ctx context.Context) ([]db.WebsiteConfig, error)
	UpdateWebsiteConfig(ctx context.Context, arg db.UpdateWebsiteConfigParams) (db.WebsiteConfig, error)
	DeleteWebsiteConfig(ctx context.Context, id int64) (int64, error)
	SyncWebsiteConfigIDSequence(ctx context.Context) error
}

// PostgresStore persists configs in the website_configs table.
type PostgresStore struct {
	q querier
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore wraps generated queries, usually db.New(pool).
func NewPostgresStore(q querier) *PostgresStore {
	return &PostgresStore{q: q}
}

func mapStoreError(op string, err error) error {
	var pgErr *pgconn.PgError

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errx.E(op, errx.NotFound, err)
	case errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
		return errx.E(op, errx.Conflict, err)
	case errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation:
		return errx.E(op, errx.Invalid, err)
	default:
		return errx.E(op, errx.Unavailable, err)
	}
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (WebsiteConfig, error) {
	const op = "siteconfig.postgres.Get"

	row, err := s.q.GetWebsiteConfig(ctx, id)
	if err != nil {
		return WebsiteConfig{}, mapStoreError(op, err)
	}
	return s.toDomain(op, row)
}

func (s *PostgresStore) Create(ctx context.Context, cfg WebsiteConfig) (WebsiteConfig, error) {
	const op = "siteconfig.postgres.Create"

	cols, err := toColumns(cfg)
	if err != nil {
		return WebsiteConfig{}, errx.E(op, errx.Internal, err)
	}

	params := db.CreateWebsiteConfigParams{
		ID:                   pgtype.Int8{Int64: cfg.ID, Valid: cfg.ID != 0},
		Name:                 cols.Name,
		TemplateType:         cols.TemplateType,
		Logo:                 cols.Logo,
		DefaultLanguage:      cols.DefaultLanguage,
		ShowWhyWebsiteButton: cols.ShowWhyWebsiteButton,
		ShowDomainButton:     cols.ShowDomainButton,
		ShowChatbot:          cols.ShowChatbot,
		WhatsappNumber:       cols.WhatsappNumber,
		WhatsappMessage:      cols.WhatsappMessage,
		FacebookUrl:          cols.FacebookUrl,
		GoogleMapsEmbed:      cols.GoogleMapsEmbed,
		Address:              cols.Address,
		Phone:                cols.Phone,
		Email:                cols.Email,
		OfficeHours:          cols.OfficeHours,
		AnalyticsCode:        cols.AnalyticsCode,
		PrimaryColor:         cols.PrimaryColor,
		SecondaryColor:       cols.SecondaryColor,
		BackgroundColor:      cols.BackgroundColor,
		Translations:         cols.Translations,
		Services:             cols.Services,
		Reviews:              cols.Reviews,
		Photos:               cols.Photos,
		Awards:               cols.Awards,
		ChatbotQuestions:     cols.ChatbotQuestions,
	}

	row, err := s.q.CreateWebsiteConfig(ctx, params)
	if err != nil {
		return WebsiteConfig{}, mapStoreError(op, err)
	}

	// An explicit ID bypasses the sequence; move it past the new row.
	if params.ID.Valid {
		if err := s.q.SyncWebsiteConfigIDSequence(ctx); err != nil {
			return WebsiteConfig{}, mapStoreError(op, err)
		}
	}

	return s.toDomain(op, row)
}

func (s *PostgresStore) Update(ctx context.Context, cfg WebsiteConfig) (WebsiteConfig, error) {
	const op = "siteconfig.postgres.Update"

	cols, err := toColumns(cfg)
	if err != nil {
		return WebsiteConfig{}, errx.E(op, errx.Internal, err)
	}

	row, err := s.q.UpdateWebsiteConfig(ctx, db.UpdateWebsiteConfigParams{
		ID:                   cfg.ID,
		Name:                 cols.Name,
		TemplateType:         cols.TemplateType,
		Logo:                 cols.Logo,
		DefaultLanguage:      cols.DefaultLanguage,
		ShowWhyWebsiteButton: cols.ShowWhyWebsiteButton,
		ShowDomainButton:     cols.ShowDomainButton,
		ShowChatbot:          cols.ShowChatbot,
		WhatsappNumber:       cols.WhatsappNumber,
		WhatsappMessage:      cols.WhatsappMessage,
		FacebookUrl:          cols.FacebookUrl,
		GoogleMapsEmbed:      cols.GoogleMapsEmbed,
		Address:              cols.Address,
		Phone:                cols.Phone,
		Email:                cols.Email,
		OfficeHours:          cols.OfficeHours,
		AnalyticsCode:        cols.AnalyticsCode,
		PrimaryColor:         cols.PrimaryColor,
		SecondaryColor:       cols.SecondaryColor,
		BackgroundColor:      cols.BackgroundColor,
		Translations:         cols.Translations,
		Services:             cols.Services,
		Reviews:              cols.Reviews,
		Photos:               cols.Photos,
		Awards:               cols.Awards,
		ChatbotQuestions:     cols.ChatbotQuestions,
	})
	if err != nil {
		return WebsiteConfig{}, mapStoreError(op, err)
	}
	return s.toDomain(op, row)
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	const op = "siteconfig.postgres.Delete"

	n, err := s.q.DeleteWebsiteConfig(ctx, id)
	if err != nil {
		return mapStoreError(op, err)
	}
	if n == 0 {
		return errx.Ef(op, errx.NotFound, "config %d not found", id)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]WebsiteConfig, error) {
	const op = "siteconfig.postgres.List"

	rows, err := s.q.ListWebsiteConfigs(ctx)
	if err != nil {
		return nil, mapStoreError(op, err)
	}

	items := make([]WebsiteConfig, 0, len(rows))
	for _, row := range rows {
		cfg, err := s.toDomain(op, row)
		if err != nil {
			return nil, err
		}
		items = append(items, cfg)
	}
	return items, nil
}

/***************
 * Row mapping
 ***************/

func (s *PostgresStore) toDomain(op string, row db.WebsiteConfig) (WebsiteConfig, error) {
	cfg, err := toDomainConfig(row)
	if err != nil {
		return WebsiteConfig{}, errx.E(op, errx.Internal, err)
	}
	return cfg, nil
}

func mustTime(ts pgtype.Timestamptz, field string) (time.Time, error) {
	if !ts.Valid {
		return time.Time{}, fmt.Errorf("%s unexpectedly NULL", field)
	}
	return ts.Time, nil
}

func toDomainConfig(row db.WebsiteConfig) (WebsiteConfig, error) {
	createdAt, err := mustTime(row.CreatedAt, "created_at")
	if err != nil {
		return WebsiteConfig{}, err
	}
	updatedAt, err := mustTime(row.UpdatedAt, "updated_at")
	if err != nil {
		return WebsiteConfig{}, err
	}

	cfg := WebsiteConfig{
		ID:                   row.ID,
		Name:                 row.Name,
		TemplateType:         TemplateType(row.TemplateType),
		Logo:                 row.Logo,
		DefaultLanguage:      row.DefaultLanguage,
		ShowWhyWebsiteButton: row.ShowWhyWebsiteButton,
		ShowDomainButton:     row.ShowDomainButton,
		ShowChatbot:          row.ShowChatbot,
		WhatsappNumber:       row.WhatsappNumber,
		WhatsappMessage:      row.WhatsappMessage,
		FacebookURL:          row.FacebookUrl,
		GoogleMapsEmbed:      row.GoogleMapsEmbed,
		Address:              row.Address,
		Phone:                row.Phone,
		Email:                row.Email,
		AnalyticsCode:        row.AnalyticsCode,
		PrimaryColor:         row.PrimaryColor,
		SecondaryColor:       row.SecondaryColor,
		BackgroundColor:      row.BackgroundColor,
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
	}

	jsonCols := []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"office_hours", row.OfficeHours, &cfg.OfficeHours},
		{"translations", row.Translations, &cfg.Translations},
		{"services", row.Services, &cfg.Services},
		{"reviews", row.Reviews, &cfg.Reviews},
		{"photos", row.Photos, &cfg.Photos},
		{"awards", row.Awards, &cfg.Awards},
		{"chatbot_questions", row.ChatbotQuestions, &cfg.ChatbotQuestions},
	}
	for _, c := range jsonCols {
		if len(c.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(c.raw, c.dst); err != nil {
			return WebsiteConfig{}, fmt.Errorf("decode %s: %w", c.name, err)
		}
	}

	return cfg, nil
}

// columns is the write-side shape shared by the create and update params.
type columns struct {
	db.WebsiteConfig
}

func toColumns(cfg WebsiteConfig) (columns, error) {
	var (
		c   columns
		err error
	)

	c.Name = cfg.Name
	c.TemplateType = string(cfg.TemplateType)
	c.Logo = cfg.Logo
	c.DefaultLanguage = cfg.DefaultLanguage
	c.ShowWhyWebsiteButton = cfg.ShowWhyWebsiteButton
	c.ShowDomainButton = cfg.ShowDomainButton
	c.ShowChatbot = cfg.ShowChatbot
	c.WhatsappNumber = cfg.WhatsappNumber
	c.WhatsappMessage = cfg.WhatsappMessage
	c.FacebookUrl = cfg.FacebookURL
	c.GoogleMapsEmbed = cfg.GoogleMapsEmbed
	c.Address = cfg.Address
	c.Phone = cfg.Phone
	c.Email = cfg.Email
	c.AnalyticsCode = cfg.AnalyticsCode
	c.PrimaryColor = cfg.PrimaryColor
	c.SecondaryColor = cfg.SecondaryColor
	c.BackgroundColor = cfg.BackgroundColor

	if c.OfficeHours, err = json.Marshal(cfg.OfficeHours); err != nil {
		return columns{}, fmt.Errorf("encode office_hours: %w", err)
	}
	if c.Translations, err = json.Marshal(cfg.Translations); err != nil {
		return columns{}, fmt.Errorf("encode translations: %w", err)
	}
	if c.Services, err = jsonList(cfg.Services); err != nil {
		return columns{}, fmt.Errorf("encode services: %w", err)
	}
	if c.Reviews, err = jsonList(cfg.Reviews); err != nil {
		return columns{}, fmt.Errorf("encode reviews: %w", err)
	}
	if c.Photos, err = jsonList(cfg.Photos); err != nil {
		return columns{}, fmt.Errorf("encode photos: %w", err)
	}
	if c.Awards, err = jsonList(cfg.Awards); err != nil {
		return columns{}, fmt.Errorf("encode awards: %w", err)
	}
	if c.ChatbotQuestions, err = jsonList(cfg.ChatbotQuestions); err != nil {
		return columns{}, fmt.Errorf("encode chatbot_questions: %w", err)
	}

	return c, nil
}

// jsonList encodes nil as [] so JSONB columns never hold null.
func jsonList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
