package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/cli/config"
	httpctrl "github.com/secmon-lab/pathfinder/pkg/controller/http"
	"github.com/secmon-lab/pathfinder/pkg/service/catalog"
	"github.com/secmon-lab/pathfinder/pkg/service/worker"
	"github.com/secmon-lab/pathfinder/pkg/usecase"
	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("PATHFINDER_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("Serve configuration",
				"addr", addr,
				"repository", repoCfg,
				"catalog", catalogCfg)

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			loader, closeCatalog, err := catalogCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure catalog")
			}
			defer closeCatalog()

			holder := catalog.NewHolder(ctx, loader)
			uc := usecase.New(repo, usecase.WithCatalog(holder))

			if path := repoCfg.SeedPath(); path != "" {
				seed, err := config.LoadSeed(path)
				if err != nil {
					return goerr.Wrap(err, "failed to load seed")
				}
				if err := seed.Apply(ctx, uc); err != nil {
					return goerr.Wrap(err, "failed to apply seed")
				}
				logging.Default().Info("Seed loaded", "path", path, "customers", len(seed.Customers))
			}

			// Keep custom questions fresh: file changes for local paths,
			// periodic polling for Cloud Storage objects
			var watcher *catalog.Watcher
			var reloadWorker *worker.CatalogReloadWorker
			switch {
			case catalogCfg.CustomLocation() == "":
			case catalogCfg.IsRemote():
				if interval := catalogCfg.ReloadInterval(); interval > 0 {
					reloadWorker = worker.NewCatalogReloadWorker(holder, interval)
					if err := reloadWorker.Start(ctx); err != nil {
						return goerr.Wrap(err, "failed to start catalog reload worker")
					}
				}
			default:
				watcher, err = catalog.NewWatcher(catalogCfg.CustomLocation(), holder)
				if err != nil {
					return goerr.Wrap(err, "failed to watch custom questions")
				}
				watcher.Start(ctx)
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpctrl.WithCatalogReloader(holder)),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "questions", holder.Get().Len())
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if reloadWorker != nil {
					reloadWorker.Stop()
				}
				if watcher != nil {
					watcher.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
