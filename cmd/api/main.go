package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"course-service/cmd/api/app"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	serve := func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), configPath, func(ctx context.Context, a *app.App) error {
			return a.Run(ctx)
		})
	}

	root := &cobra.Command{
		Use:           "api",
		Short:         "Course service REST and gRPC API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(),
		"directory containing app.env (env CONFIG_PATH)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Migrate the schema and serve the REST and gRPC APIs",
			Args:  cobra.NoArgs,
			RunE:  serve,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema and exit",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd.Context(), configPath, func(ctx context.Context, a *app.App) error {
					return a.Migrate(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Migrate the schema and load demo data into an empty database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd.Context(), configPath, func(ctx context.Context, a *app.App) error {
					if err := a.Migrate(ctx); err != nil {
						return err
					}
					return a.Seed(ctx)
				})
			},
		},
	)

	return root
}

// withApp builds the application, runs fn until SIGINT or SIGTERM and releases
// every resource afterwards.
func withApp(parent context.Context, configPath string, fn func(context.Context, *app.App) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(configPath)
	if err != nil {
		return err
	}

	runErr := fn(ctx, a)
	if err := a.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func defaultConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "."
}
