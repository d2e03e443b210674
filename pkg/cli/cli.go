package cli

import (
	"context"

	"github.com/secmon-lab/pathfinder/pkg/cli/config"
	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()

	flags := loggerCfg.Flags()
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "pathfinder",
		Usage:   "Application portfolio assessment and migration readiness scoring",
		Version: version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			closeLogger, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, closeLogger)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, flush)

			logging.Default().Debug("Starting pathfinder", "logger", loggerCfg, "sentry", sentryCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdMigrate(),
			cmdValidate(),
			cmdScore(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
