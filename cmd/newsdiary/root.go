package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"newsdiary/internal/app"
	"newsdiary/internal/config"
	"newsdiary/internal/observability/logging"
)

// commandContext builds the components once, on the first command that
// needs them.
type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	once       sync.Once
	components *app.Components
	err        error
}

func (c *commandContext) ensureComponents(ctx context.Context) (*app.Components, error) {
	c.once.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, warnings, err := config.Load(path)
		if err != nil {
			c.err = err
			return
		}
		for _, w := range warnings {
			slog.Warn("configuration fallback", slog.String("detail", w))
		}
		c.components, c.err = app.Build(ctx, cfg)
	})
	return c.components, c.err
}

func (c *commandContext) close() {
	if c.components == nil {
		return
	}
	if err := c.components.Close(); err != nil {
		slog.Warn("failed to close store", slog.Any("error", err))
	}
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// run wraps a command body with a signal-aware context and the components.
func (c *commandContext) run(fn func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		comp, err := c.ensureComponents(ctx)
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer c.close()
		return fn(ctx, cmd, comp, args)
	}
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var jsonFlag bool
	cc := &commandContext{configFlag: &configFlag, jsonFlag: &jsonFlag}

	rootCmd := &cobra.Command{
		Use:           "newsdiary",
		Short:         "Collect news headlines and keep a diary about them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logging.NewCLILogger())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (default $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print JSON instead of tables")

	rootCmd.AddCommand(newCollectCommand(cc))
	rootCmd.AddCommand(newArticlesCommand(cc))
	rootCmd.AddCommand(newDiaryCommand(cc))
	rootCmd.AddCommand(newIssuesCommand(cc))

	return rootCmd
}
