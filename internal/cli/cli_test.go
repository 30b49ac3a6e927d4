package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sundayezeilo/websitio/internal/siteconfig"
)

// memoryOpener serves every command from the same in-memory store.
func memoryOpener(store siteconfig.Store) opener {
	svc := siteconfig.NewService(store, &siteconfig.ServiceConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return func(context.Context, bool) (*backend, error) {
		return &backend{Service: svc, Close: func() error { return nil }}, nil
	}
}

func execute(t *testing.T, open opener, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func createNamed(t *testing.T, store siteconfig.Store, id int64, name string) {
	t.Helper()
	cfg := siteconfig.New(name)
	cfg.ID = id
	_, err := store.Create(context.Background(), cfg)
	require.NoError(t, err)
}

func TestSlugEncode(t *testing.T) {
	out, err := execute(t, nil, "slug", "encode", "--name", "Dr. Juan García", "--id", "43")
	require.NoError(t, err)
	assert.Equal(t, "drjuangarcia43\n", out)

	_, err = execute(t, nil, "slug", "encode", "--name", "!!!", "--id", "43")
	assert.Error(t, err)

	_, err = execute(t, nil, "slug", "encode", "--name", "Tacos")
	assert.Error(t, err, "--id is required")
}

func TestSlugDecode(t *testing.T) {
	out, err := execute(t, nil, "slug", "decode", "drjuangarcia43")
	require.NoError(t, err)
	assert.Equal(t, "name\tdrjuangarcia\nid\t43\n", out)

	out, err = execute(t, nil, "slug", "decode", "nodigits")
	require.NoError(t, err)
	assert.Equal(t, "name\tnodigits\nid\t-\n", out)
}

func TestSlugValidate(t *testing.T) {
	out, err := execute(t, nil, "slug", "validate", "drjuangarcia43", "--name", "Dr. Juan García", "--id", "43")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	_, err = execute(t, nil, "slug", "validate", "juangarcia43", "--name", "Dr. Juan García", "--id", "43")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected drjuangarcia43")
}

func TestAudit(t *testing.T) {
	store := siteconfig.NewMemoryStore(nil)
	createNamed(t, store, siteconfig.HomepageID, siteconfig.HomepageName)
	createNamed(t, store, 43, "Dr. Juan García")
	createNamed(t, store, 47, "Store2")

	out, err := execute(t, memoryOpener(store), "audit")
	require.NoError(t, err)
	assert.Contains(t, out, "drjuangarcia43")
	assert.Contains(t, out, "slug routes to id 247")
	assert.NotContains(t, out, siteconfig.HomepageName)

	_, err = execute(t, memoryOpener(store), "audit", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 clients")
}

func TestDuplicatesAndCleanup(t *testing.T) {
	store := siteconfig.NewMemoryStore(nil)
	createNamed(t, store, siteconfig.HomepageID, siteconfig.HomepageName)
	createNamed(t, store, 2, "Tacos")
	createNamed(t, store, 3, "Tacos")
	open := memoryOpener(store)

	out, err := execute(t, open, "duplicates")
	require.NoError(t, err)
	assert.Contains(t, out, "keep")
	assert.Contains(t, out, "remove")

	out, err = execute(t, open, "cleanup", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run")
	_, err = store.Get(context.Background(), 2)
	require.NoError(t, err, "dry run must not delete")

	out, err = execute(t, open, "cleanup")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 configs.")
	_, err = store.Get(context.Background(), 2)
	assert.Error(t, err)
	_, err = store.Get(context.Background(), 3)
	assert.NoError(t, err)

	out, err = execute(t, open, "duplicates")
	require.NoError(t, err)
	assert.Equal(t, "No duplicates found.\n", out)
}

func TestSeed(t *testing.T) {
	store := siteconfig.NewMemoryStore(nil)

	out, err := execute(t, memoryOpener(store), "seed", "--file", "testdata/seed.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "drjuangarcia2")
	assert.Contains(t, out, "tacoselguero3")

	cfg, err := store.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "9:00 - 18:00", cfg.OfficeHours.MondayToFriday)
	require.Len(t, cfg.Reviews, 1)
	assert.Equal(t, "Excelente atención.", cfg.Reviews[0].Quote.Es)

	cfg, err = store.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.DefaultLanguage)
	assert.Equal(t, "Los mejores tacos de Chetumal", cfg.Translations.Es["heroTitle"])
}

func TestParseSeed(t *testing.T) {
	inputs, err := parseSeed([]byte("- name: Tacos\n  showChatbot: false\n"))
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	require.NotNil(t, inputs[0].ShowChatbot)
	assert.False(t, *inputs[0].ShowChatbot)

	_, err = parseSeed([]byte("- name: Tacos\n  colour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")

	_, err = parseSeed([]byte("name: Tacos\n"))
	assert.Error(t, err, "top level must be a list")
}

func TestMigrate_RequiresDatabase(t *testing.T) {
	_, err := execute(t, memoryOpener(siteconfig.NewMemoryStore(nil)), "migrate", "status")
	assert.ErrorIs(t, err, errNoDatabase)
}
