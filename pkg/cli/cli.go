package cli

import (
	"context"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/opendata/pkg/cli/config"
	"github.com/m-mizutani/opendata/pkg/domain/types"
	"github.com/m-mizutani/opendata/pkg/infra/cache"
	"github.com/m-mizutani/opendata/pkg/infra/ckan"
	"github.com/m-mizutani/opendata/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// runtime carries the configuration shared by every subcommand.
type runtime struct {
	catalogCfg config.Catalog
	cacheCfg   config.Cache
	fileCfg    config.File
}

func (r *runtime) flags() []cli.Flag {
	flags := append(r.catalogCfg.Flags(), r.cacheCfg.Flags()...)
	return append(flags, r.fileCfg.Flags()...)
}

// portal builds the facade from flags, environment and the optional
// config file. File values only fill fields left unset by flags.
func (r *runtime) portal() (*usecase.Portal, error) {
	if err := r.fileCfg.Apply(&r.catalogCfg, &r.cacheCfg); err != nil {
		return nil, err
	}

	var opts []ckan.Option
	if r.catalogCfg.APIKey != "" {
		opts = append(opts, ckan.WithAPIKey(r.catalogCfg.APIKey))
	}
	catalog := ckan.New(r.catalogCfg.ResolveBaseURL(), opts...)
	fileCache := cache.New(r.cacheCfg.ResolveDir())

	return usecase.New(catalog, fileCache), nil
}

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	// Optional .env, loaded before flag parsing so env sources see it.
	_ = godotenv.Load()

	var loggerCfg config.Logger
	var logger *slog.Logger
	rt := &runtime{}

	app := &cli.Command{
		Name:    "opendata",
		Usage:   "Client for CKAN open data portals",
		Version: types.Version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdList(rt),
			cmdSearch(rt),
			cmdInfo(rt),
			cmdFiles(rt),
			cmdDownload(rt),
			cmdGet(rt),
			cmdCached(rt),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
