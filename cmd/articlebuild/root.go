package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"articlebuild/internal/config"
	"articlebuild/internal/logger"
	"articlebuild/internal/pipeline"
	"articlebuild/internal/report"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
	stats      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "articlebuild",
		Short: "Consolidate origin article batches into one de-duplicated JSON file",
		Long: "articlebuild reads line-delimited JSON batches for each origin under the raw data\n" +
			"directory, normalizes and filters the records, keeps the first article per URL and\n" +
			"writes the result as a single JSON array.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level)
			log.Debug("configuration", "config", cfg.String())

			res, err := pipeline.NewBuilder(cfg, log).Run()
			if err != nil {
				return fmt.Errorf("build failed: %w", err)
			}

			if opts.stats {
				if err := res.WriteStats(cmd.ErrOrStderr()); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.SummaryLine(res.Saved, res.Path))

			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file (built-in defaults when empty)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
	root.Flags().BoolVar(&opts.stats, "stats", false, "print per-origin counts to stderr")

	root.AddCommand(newConfigCmd(opts))

	return root
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML, or save it to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			if output != "" {
				if err := cfg.SaveConfig(output); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "[Config] Saved to %s\n", output)

				return nil
			}

			data, err := cfg.Marshal()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the configuration to this file instead of stdout")

	return cmd
}

// load returns the defaults, or the file named by --config, with flag
// overrides applied.
func (o *rootOptions) load() (*config.Config, error) {
	cfg := config.Default()

	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel

		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
