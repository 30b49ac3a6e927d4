package siteconfig

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	db "github.com/sundayezeilo/websitio/internal/db/sqlc"
	"github.com/sundayezeilo/websitio/internal/errx"
)

/***************
 * Mocks / Stubs
 ***************/

// mockQueries implements the querier interface for testing.
type mockQueries struct {
	createFunc   func(ctx context.Context, arg db.CreateWebsiteConfigParams) (db.WebsiteConfig, error)
	getFunc      func(ctx context.Context, id int64) (db.WebsiteConfig, error)
	listFunc     func(ctx context.Context) ([]db.WebsiteConfig, error)
	updateFunc   func(ctx context.Context, arg db.UpdateWebsiteConfigParams) (db.WebsiteConfig, error)
	deleteFunc   func(ctx context.Context, id int64) (int64, error)
	syncSeqFunc  func(ctx context.Context) error
	syncSeqCalls int
}

func (m *mockQueries) CreateWebsiteConfig(ctx context.Context, arg db.CreateWebsiteConfigParams) (db.WebsiteConfig, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, arg)
	}
	return db.WebsiteConfig{}, nil
}

func (m *mockQueries) GetWebsiteConfig(ctx context.Context, id int64) (db.WebsiteConfig, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return db.WebsiteConfig{}, nil
}

func (m *mockQueries) ListWebsiteConfigs(ctx context.Context) ([]db.WebsiteConfig, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockQueries) UpdateWebsiteConfig(ctx context.Context, arg db.UpdateWebsiteConfigParams) (db.WebsiteConfig, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, arg)
	}
	return db.WebsiteConfig{}, nil
}

func (m *mockQueries) DeleteWebsiteConfig(ctx context.Context, id int64) (int64, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return 1, nil
}

func (m *mockQueries) SyncWebsiteConfigIDSequence(ctx context.Context) error {
	m.syncSeqCalls++
	if m.syncSeqFunc != nil {
		return m.syncSeqFunc(ctx)
	}
	return nil
}

/***************
 * Helpers
 ***************/

func makeValidTimestamp(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func makeTestRow(id int64, name string, now time.Time) db.WebsiteConfig {
	return db.WebsiteConfig{
		ID:               id,
		Name:             name,
		TemplateType:     "restaurants",
		DefaultLanguage:  "es",
		PrimaryColor:     DefaultPrimaryColor,
		SecondaryColor:   DefaultSecondaryColor,
		BackgroundColor:  DefaultBackgroundColor,
		OfficeHours:      []byte(`{"mondayToFriday":"9-5","saturday":"closed"}`),
		Translations:     []byte(`{"en":{"hero":"Hi"},"es":{"hero":"Hola"}}`),
		Services:         []byte(`[]`),
		Reviews:          []byte(`[{"name":"Ana","initials":"A","rating":5,"date":{"en":"","es":""},"quote":{"en":"","es":""}}]`),
		Photos:           []byte(`[]`),
		Awards:           []byte(`[]`),
		ChatbotQuestions: []byte(`[]`),
		CreatedAt:        makeValidTimestamp(now),
		UpdatedAt:        makeValidTimestamp(now),
	}
}

/***************
 * Unit tests: helpers
 ***************/

func TestMustTime(t *testing.T) {
	t.Run("returns time when timestamp is valid", func(t *testing.T) {
		now := time.Now()

		got, err := mustTime(makeValidTimestamp(now), "test_field")
		if err != nil {
			t.Fatalf("mustTime() unexpected error: %v", err)
		}
		if !got.Equal(now) {
			t.Errorf("mustTime() = %v, want %v", got, now)
		}
	})

	t.Run("returns error when timestamp is invalid", func(t *testing.T) {
		_, err := mustTime(pgtype.Timestamptz{}, "test_field")
		if err == nil {
			t.Fatal("mustTime() expected error, got nil")
		}
		if want := "test_field unexpectedly NULL"; err.Error() != want {
			t.Errorf("mustTime() error = %q, want %q", err.Error(), want)
		}
	})
}

func TestToDomainConfig(t *testing.T) {
	now := time.Now()

	t.Run("decodes JSON columns", func(t *testing.T) {
		got, err := toDomainConfig(makeTestRow(7, "Tacos", now))
		if err != nil {
			t.Fatalf("toDomainConfig() unexpected error: %v", err)
		}
		if got.ID != 7 || got.Name != "Tacos" {
			t.Errorf("identity = (%d, %q), want (7, %q)", got.ID, got.Name, "Tacos")
		}
		if got.TemplateType != TemplateRestaurants {
			t.Errorf("TemplateType = %q, want %q", got.TemplateType, TemplateRestaurants)
		}
		if got.OfficeHours.Saturday != "closed" {
			t.Errorf("OfficeHours.Saturday = %q, want %q", got.OfficeHours.Saturday, "closed")
		}
		if got.Translations.Es["hero"] != "Hola" {
			t.Errorf("Translations.Es[hero] = %q, want %q", got.Translations.Es["hero"], "Hola")
		}
		if len(got.Reviews) != 1 || got.Reviews[0].Rating != 5 {
			t.Errorf("Reviews = %+v, want one five-star review", got.Reviews)
		}
		if got.Services == nil {
			t.Error("Services = nil, want empty slice")
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		row := makeTestRow(7, "Tacos", now)
		row.Reviews = []byte(`{not json`)

		if _, err := toDomainConfig(row); err == nil {
			t.Fatal("toDomainConfig() expected error, got nil")
		}
	})

	t.Run("rejects NULL timestamps", func(t *testing.T) {
		row := makeTestRow(7, "Tacos", now)
		row.UpdatedAt = pgtype.Timestamptz{}

		if _, err := toDomainConfig(row); err == nil {
			t.Fatal("toDomainConfig() expected error, got nil")
		}
	})
}

func TestToColumns_EncodesNilListsAsEmptyArrays(t *testing.T) {
	cols, err := toColumns(WebsiteConfig{Name: "Tacos"})
	if err != nil {
		t.Fatalf("toColumns() unexpected error: %v", err)
	}
	for name, raw := range map[string][]byte{
		"services":          cols.Services,
		"reviews":           cols.Reviews,
		"photos":            cols.Photos,
		"awards":            cols.Awards,
		"chatbot_questions": cols.ChatbotQuestions,
	} {
		if string(raw) != "[]" {
			t.Errorf("%s = %s, want []", name, raw)
		}
	}
}

func TestMapStoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errx.Kind
	}{
		{"no rows", pgx.ErrNoRows, errx.NotFound},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation}, errx.Conflict},
		{"check violation", &pgconn.PgError{Code: pgCheckViolation}, errx.Invalid},
		{"other pg error", &pgconn.PgError{Code: "57P01"}, errx.Unavailable},
		{"plain error", errors.New("connection refused"), errx.Unavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapStoreError("op", tt.err)
			if got := errx.KindOf(err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
			if !errors.Is(err, tt.err) {
				t.Error("mapped error does not wrap the original")
			}
		})
	}
}

/***************
 * Unit tests: PostgresStore
 ***************/

func TestPostgresStore_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("lets the sequence assign the ID", func(t *testing.T) {
		var gotParams db.CreateWebsiteConfigParams
		mock := &mockQueries{
			createFunc: func(_ context.Context, arg db.CreateWebsiteConfigParams) (db.WebsiteConfig, error) {
				gotParams = arg
				return makeTestRow(12, arg.Name, now), nil
			},
		}
		store := NewPostgresStore(mock)

		got, err := store.Create(ctx, New("Tacos"))
		if err != nil {
			t.Fatalf("Create() unexpected error: %v", err)
		}
		if got.ID != 12 {
			t.Errorf("ID = %d, want 12", got.ID)
		}
		if gotParams.ID.Valid {
			t.Error("params.ID.Valid = true, want false for a zero ID")
		}
		if mock.syncSeqCalls != 0 {
			t.Errorf("sequence synced %d times, want 0", mock.syncSeqCalls)
		}
	})

	t.Run("explicit ID syncs the sequence", func(t *testing.T) {
		mock := &mockQueries{
			createFunc: func(_ context.Context, arg db.CreateWebsiteConfigParams) (db.WebsiteConfig, error) {
				if !arg.ID.Valid || arg.ID.Int64 != HomepageID {
					t.Errorf("params.ID = %+v, want %d", arg.ID, HomepageID)
				}
				return makeTestRow(arg.ID.Int64, arg.Name, now), nil
			},
		}
		store := NewPostgresStore(mock)

		cfg := New(HomepageName)
		cfg.ID = HomepageID
		if _, err := store.Create(ctx, cfg); err != nil {
			t.Fatalf("Create() unexpected error: %v", err)
		}
		if mock.syncSeqCalls != 1 {
			t.Errorf("sequence synced %d times, want 1", mock.syncSeqCalls)
		}
	})

	t.Run("maps duplicate key to conflict", func(t *testing.T) {
		mock := &mockQueries{
			createFunc: func(context.Context, db.CreateWebsiteConfigParams) (db.WebsiteConfig, error) {
				return db.WebsiteConfig{}, &pgconn.PgError{Code: pgUniqueViolation}
			},
		}
		store := NewPostgresStore(mock)

		cfg := New(HomepageName)
		cfg.ID = HomepageID
		_, err := store.Create(ctx, cfg)
		if !errx.Is(err, errx.Conflict) {
			t.Fatalf("Create() error kind = %v, want Conflict", errx.KindOf(err))
		}
		if mock.syncSeqCalls != 0 {
			t.Error("sequence synced after a failed insert")
		}
	})
}

func TestPostgresStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		store := NewPostgresStore(&mockQueries{
			getFunc: func(context.Context, int64) (db.WebsiteConfig, error) {
				return db.WebsiteConfig{}, pgx.ErrNoRows
			},
		})

		_, err := store.Get(ctx, 99)
		if !errx.Is(err, errx.NotFound) {
			t.Fatalf("Get() error kind = %v, want NotFound", errx.KindOf(err))
		}
		if op := errx.OpOf(err); op != "siteconfig.postgres.Get" {
			t.Errorf("OpOf() = %q", op)
		}
	})

	t.Run("corrupt row is internal", func(t *testing.T) {
		store := NewPostgresStore(&mockQueries{
			getFunc: func(context.Context, int64) (db.WebsiteConfig, error) {
				return db.WebsiteConfig{ID: 3}, nil
			},
		})

		_, err := store.Get(ctx, 3)
		if !errx.Is(err, errx.Internal) {
			t.Fatalf("Get() error kind = %v, want Internal", errx.KindOf(err))
		}
	})
}

func TestPostgresStore_Update(t *testing.T) {
	now := time.Now()
	var gotParams db.UpdateWebsiteConfigParams
	store := NewPostgresStore(&mockQueries{
		updateFunc: func(_ context.Context, arg db.UpdateWebsiteConfigParams) (db.WebsiteConfig, error) {
			gotParams = arg
			return makeTestRow(arg.ID, arg.Name, now), nil
		},
	})

	cfg := New("Tacos")
	cfg.ID = 5
	cfg.FacebookURL = "https://facebook.com/tacos"

	got, err := store.Update(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if got.ID != 5 {
		t.Errorf("ID = %d, want 5", got.ID)
	}
	if gotParams.FacebookUrl != cfg.FacebookURL {
		t.Errorf("params.FacebookUrl = %q, want %q", gotParams.FacebookUrl, cfg.FacebookURL)
	}
}

func TestPostgresStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("zero rows is not found", func(t *testing.T) {
		store := NewPostgresStore(&mockQueries{
			deleteFunc: func(context.Context, int64) (int64, error) { return 0, nil },
		})
		if err := store.Delete(ctx, 8); !errx.Is(err, errx.NotFound) {
			t.Fatalf("Delete() error kind = %v, want NotFound", errx.KindOf(err))
		}
	})

	t.Run("driver failure is unavailable", func(t *testing.T) {
		store := NewPostgresStore(&mockQueries{
			deleteFunc: func(context.Context, int64) (int64, error) { return 0, errors.New("broken pipe") },
		})
		if err := store.Delete(ctx, 8); !errx.Is(err, errx.Unavailable) {
			t.Fatalf("Delete() error kind = %v, want Unavailable", errx.KindOf(err))
		}
	})

	t.Run("success", func(t *testing.T) {
		store := NewPostgresStore(&mockQueries{})
		if err := store.Delete(ctx, 8); err != nil {
			t.Fatalf("Delete() unexpected error: %v", err)
		}
	})
}

func TestPostgresStore_List(t *testing.T) {
	now := time.Now()
	store := NewPostgresStore(&mockQueries{
		listFunc: func(context.Context) ([]db.WebsiteConfig, error) {
			return []db.WebsiteConfig{
				makeTestRow(1, HomepageName, now),
				makeTestRow(2, "Tacos", now),
			}, nil
		},
	})

	got, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(got) != 2 || got[1].Name != "Tacos" {
		t.Errorf("List() = %+v", got)
	}
}
