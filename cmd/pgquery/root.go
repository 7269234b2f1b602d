package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sqltree/pgquery/internal/config"
	"github.com/sqltree/pgquery/internal/report"
)

// Version is set at build time.
var Version = "0.1.0"

type configKey struct{}

// NewRootCmd creates the pgquery command tree.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "pgquery",
		Short: "Parse PostgreSQL queries",
		Long: `pgquery parses PostgreSQL SQL into a pg_query style JSON tree.

Each argument names a SQL file; - reads standard input. Several files are
parsed concurrently and reported in the order given.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := cfg.Log.NewLogger(cmd.ErrOrStderr())
			if cfg.File != "" {
				logger.Debug("using config file", "path", cfg.File)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, configKey{}, cfg)
			cmd.SetContext(config.WithLogger(ctx, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./pgquery.yaml)")
	flags.StringP("output", "o", "", "Output format (text|json|table)")
	flags.Bool("dedupe", false, "Drop repeated table names")
	flags.IntP("concurrency", "j", 0, "Number of inputs parsed at once")
	flags.Bool("fail-fast", false, "Stop at the first input that fails")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("log-format", "", "Log format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputText, config.OutputJSON, config.OutputTable}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(
		newTaskCommand("parse [file...]", "Print the parse tree of each input", report.TaskParse),
		newTaskCommand("tables [file...]", "List the tables each input references", report.TaskTables),
		newTaskCommand("tokens [file...]", "Dump the lexemes of each input", report.TaskTokens),
	)
	return rootCmd
}

func newTaskCommand(use, short string, task report.Task) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := GetConfig(ctx)

			inputs, err := report.ReadInputs(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			results, err := report.Run(ctx, inputs, report.OptionsFromConfig(task, cfg))
			if err != nil {
				return err
			}
			if err := report.NewRenderer(cmd.OutOrStdout(), cfg.Output).Render(task, results); err != nil {
				return fmt.Errorf("failed to render output: %w", err)
			}
			if n := report.Failed(results); n > 0 {
				return fmt.Errorf("%w: %d of %d inputs", report.ErrFailed, n, len(results))
			}
			return nil
		},
	}
}

// GetConfig retrieves the config stored by the root command.
func GetConfig(ctx context.Context) *config.Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
			return c
		}
	}
	return config.Default()
}
