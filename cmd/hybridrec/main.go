// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package main provides the hybridrec CLI entry point.
//
// Configuration is layered (highest priority wins):
//   - Command-line flags (--input, --log-level, --seed, and per-command flags)
//   - Environment variables, optionally loaded from a .env file
//   - Config file (--config, CONFIG_PATH, ./config.yaml, /etc/hybridrec/config.yaml)
//   - Built-in defaults
//
// # Example Usage
//
//	hybridrec run --input unified.csv --user alice --output recs.json
//	hybridrec recommend alice --input unified.csv
//	hybridrec similar 1201 --input unified.csv
//	hybridrec popular --input unified.csv --seed 7
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tomtom215/hybridrec/internal/config"
	"github.com/tomtom215/hybridrec/internal/logging"
	"github.com/tomtom215/hybridrec/internal/pipeline"
	"github.com/tomtom215/hybridrec/internal/recommend"
)

// version is set via ldflags at release time.
var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		logging.Debug().Msg(".env file not found, using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if closeErr := logging.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "close log file: %v\n", closeErr)
	}
	if err != nil {
		os.Exit(1)
	}
}

// resolveVersion prefers the ldflags version and falls back to the module
// version recorded by go install.
func resolveVersion(ldflags string, info *debug.BuildInfo) string {
	if ldflags != "dev" {
		return ldflags
	}
	if info == nil || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "dev"
	}
	return info.Main.Version
}

func currentVersion() string {
	info, _ := debug.ReadBuildInfo()
	return resolveVersion(version, info)
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	input      string
	logLevel   string
	seed       int64
}

// newRootCmd creates the root command for the hybridrec CLI.
func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:          "hybridrec",
		Short:        "Hybrid video recommendations from a unified dataset",
		Long:         "Hybridrec blends content similarity and collaborative filtering to recommend videos, falling back to popular picks for new users.",
		Version:      currentVersion(),
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("hybridrec version {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to config file")
	pf.StringVarP(&flags.input, "input", "i", "", "Unified dataset path (CSV or Parquet)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	pf.Int64Var(&flags.seed, "seed", 0, "Random seed for factorization and cold-start sampling")

	rootCmd.AddCommand(newRunCmd(flags))
	rootCmd.AddCommand(newRecommendCmd(flags))
	rootCmd.AddCommand(newSimilarCmd(flags))
	rootCmd.AddCommand(newPopularCmd(flags))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig loads configuration with the changed global flags and extra
// applied as overrides, then initializes logging to the command's stderr.
func loadConfig(cmd *cobra.Command, flags *globalFlags, extra map[string]any) (*config.Config, error) {
	overrides := make(map[string]any, len(extra)+3)
	if flags.input != "" {
		overrides["input.path"] = flags.input
	}
	if flags.logLevel != "" {
		overrides["logging.level"] = flags.logLevel
	}
	if cmd.Flags().Changed("seed") {
		overrides["recommend.seed"] = flags.seed
	}
	for k, v := range extra {
		overrides[k] = v
	}

	cfg, err := config.Load(config.Options{Path: flags.configPath, Overrides: overrides})
	if err != nil {
		return nil, err
	}

	logCfg := cfg.LoggerConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logging.Init(logCfg)

	return cfg, nil
}

// openPipeline loads configuration and prepares a snapshot.
func openPipeline(ctx context.Context, cmd *cobra.Command, flags *globalFlags) (*config.Config, *pipeline.Pipeline, error) {
	cfg, err := loadConfig(cmd, flags, nil)
	if err != nil {
		return nil, nil, err
	}

	p, err := pipeline.New(cfg, logging.Logger(), pipeline.WithStdout(cmd.OutOrStdout()))
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.Prepare(ctx); err != nil {
		closePipeline(ctx, p)
		return nil, nil, err
	}
	return cfg, p, nil
}

func closePipeline(ctx context.Context, p *pipeline.Pipeline) {
	if err := p.ExportMetrics(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to export metrics")
	}
	if err := p.Close(); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Error closing snapshot cache")
	}
}

// newRunCmd creates the run subcommand.
func newRunCmd(flags *globalFlags) *cobra.Command {
	var (
		user   string
		output string
		items  []string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full recommendation pipeline",
		Long:  "Load the dataset, build or restore the snapshot, and write recommendations for a user as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			extra := make(map[string]any)
			if cmd.Flags().Changed("user") {
				extra["request.user"] = user
			}
			if output != "" {
				extra["output.path"] = output
			}
			if len(items) > 0 {
				extra["request.items"] = items
			}

			cfg, err := loadConfig(cmd, flags, extra)
			if err != nil {
				return err
			}
			p, err := pipeline.New(cfg, logging.Logger(), pipeline.WithStdout(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			ctx := logging.ContextWithNewRunID(cmd.Context())
			defer func() {
				if err := p.Close(); err != nil {
					logging.Ctx(ctx).Error().Err(err).Msg("Error closing snapshot cache")
				}
			}()
			report, err := p.Run(ctx)
			if err != nil {
				return err
			}
			if report.Output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d %s recommendations for %q to %s\n",
					report.Records, report.Route, report.User, report.Output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "User to recommend for (empty means a new user)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output JSON path (default stdout)")
	cmd.Flags().StringSliceVar(&items, "item", nil, "Item ids to include similar-video lookups for")

	return cmd
}

// routedResult is the JSON printed by the recommend command.
type routedResult struct {
	User            string `json:"user"`
	Route           string `json:"route"`
	Recommendations any    `json:"recommendations"`
}

// newRecommendCmd creates the recommend subcommand.
func newRecommendCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend <user>",
		Short: "Print routed recommendations for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.ContextWithNewRunID(cmd.Context())
			cfg, p, err := openPipeline(ctx, cmd, flags)
			if err != nil {
				return err
			}
			defer closePipeline(ctx, p)

			resp := p.Engine().Recommend(ctx, args[0])
			if err := resp.Err(); err != nil {
				return fmt.Errorf("recommend %q: %w", args[0], err)
			}
			return printJSON(cmd.OutOrStdout(), routedResult{
				User:            resp.User,
				Route:           resp.Route.String(),
				Recommendations: resp.Records(),
			}, cfg.Output.Indent)
		},
	}
}

// newSimilarCmd creates the similar subcommand.
func newSimilarCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "similar <item-id>",
		Short: "Print video links of the items most similar to an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.ContextWithNewRunID(cmd.Context())
			cfg, p, err := openPipeline(ctx, cmd, flags)
			if err != nil {
				return err
			}
			defer closePipeline(ctx, p)

			res := p.Engine().SimilarVideos(ctx, args[0])
			if res.Err != nil {
				return fmt.Errorf("similar %q: %w", args[0], res.Err)
			}
			return printJSON(cmd.OutOrStdout(), res.Items, cfg.Output.Indent)
		},
	}
}

// newPopularCmd creates the popular subcommand.
func newPopularCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "popular",
		Short: "Print a cold-start sample of popular videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.ContextWithNewRunID(cmd.Context())
			cfg, p, err := openPipeline(ctx, cmd, flags)
			if err != nil {
				return err
			}
			defer closePipeline(ctx, p)

			res := p.Engine().ColdStart(ctx)
			if res.Err != nil {
				return fmt.Errorf("popular: %w", res.Err)
			}
			return printJSON(cmd.OutOrStdout(), res.Items, cfg.Output.Indent)
		},
	}
}

// newVersionCmd creates the version subcommand.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "hybridrec version %s\n", currentVersion())
			return nil
		},
	}
}

func printJSON(w io.Writer, v any, indent bool) error {
	if err := recommend.EncodeJSON(w, v, indent); err != nil {
		return fmt.Errorf("print result: %w", err)
	}
	return nil
}
