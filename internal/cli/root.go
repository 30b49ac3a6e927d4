package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/sundayezeilo/websitio/internal/app"
	"github.com/sundayezeilo/websitio/internal/config"
	"github.com/sundayezeilo/websitio/internal/siteconfig"
)

var errNoDatabase = errors.New("this command needs STORE_DRIVER=postgres")

// backend is what the maintenance commands operate on.
type backend struct {
	Service siteconfig.Service
	// Pool is nil for the in-memory store.
	Pool  *pgxpool.Pool
	Close func() error
}

// opener builds a backend. migrate controls whether pending migrations run on open.
type opener func(ctx context.Context, migrate bool) (*backend, error)

// NewRootCommand returns the websitio-admin command tree wired to the
// storage described by the environment.
func NewRootCommand() *cobra.Command {
	return newRootCommand(openFromEnv)
}

func newRootCommand(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "websitio-admin",
		Short:         "WebSitioPro admin CLI",
		Long:          "Administrative utilities for WebSitioPro (client slugs, duplicate cleanup, seeding, migrations).",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(slugCommand())
	root.AddCommand(auditCommand(open))
	root.AddCommand(duplicatesCommand(open))
	root.AddCommand(cleanupCommand(open))
	root.AddCommand(seedCommand(open))
	root.AddCommand(migrateCommand(open))
	return root
}

func openFromEnv(ctx context.Context, migrate bool) (*backend, error) {
	if err := app.LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	cfg, err := config.LoadStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Database.AutoMigrate = migrate

	logger := app.SetupLogger(cfg.App.LogLevel)
	storage, err := app.OpenStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	svc := siteconfig.NewService(storage.Store, &siteconfig.ServiceConfig{Logger: logger})
	return &backend{Service: svc, Pool: storage.DBPool, Close: storage.Close}, nil
}
