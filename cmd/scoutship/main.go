package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/scoutship/internal/cliconfig"
	logadapter "github.com/bft-labs/scoutship/pkg/log"
	"github.com/bft-labs/scoutship/pkg/scoutship"
	"github.com/bft-labs/scoutship/plugins/configwatcher"
)

const helpBanner = `
  █████████    █████████      ███████     █████   █████ █████████████   █████████  █████   █████ █████ ███████████
 ███░░░░░███  ███░░░░░███   ███░░░░░███  ░░███   ░░███ ░░░░░░███░░░░   ███░░░░░███░░███   ░░███ ░░███ ░░███░░░░░███
░███    ░░░  ███     ░░░   ███     ░░███  ░███    ░███      ░███      ░███    ░░░  ░███    ░███  ░███  ░███    ░███
░░█████████  ███          ░███      ░███  ░███    ░███      ░███      ░░█████████  ░███████████  ░███  ░██████████
 ░░░░░░░░███ ███          ░███      ░███  ░███    ░███      ░███       ░░░░░░░░███ ░███░░░░░███  ░███  ░███░░░░░░
 ███    ░███ ░░███     ███░░███     ███   ░███    ░███      ░███       ███    ░███ ░███    ░███  ░███  ░███
░░█████████   ░░█████████  ░░░███████░    ░░█████████       █████     ░░█████████  █████   █████ █████ █████
 ░░░░░░░░░     ░░░░░░░░░     ░░░░░░░       ░░░░░░░░░       ░░░░░       ░░░░░░░░░  ░░░░░   ░░░░░ ░░░░░ ░░░░░
`

const helpDescription = `
Ship DataVolley scout files to your scoutship service without touching the originals.

Highlights:
  - Decodes .dvw match headers locally; a malformed file never stops the agent.
  - Tracks files by content hash, so edited and re-exported scouts are re-sent.
  - Batches uploads with retry and backoff; runs fully offline without a service URL.
  - Optional xz archiving keeps long-lived scout directories under a size budget.

Docs: https://docs.scoutship.dev/getting-started
`

var longHelp = strings.TrimSpace(helpBanner) + "\n\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  scoutship --scout-dir ~/DataVolley/matches --auth-key <api-key>
  scoutship --config $HOME/.scoutship/config.toml --once
  scoutship parse 11435.dvw --summary
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func getCommit() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}

func main() {
	// A .env in the working directory can hold SCOUTSHIP_* variables.
	godotenv.Load()

	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "scoutship",
		Short:   "Ship DataVolley scout files to your scoutship service",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.scoutship/config.toml), then apply flag overrides
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (SCOUTSHIP_*)
			// These override file config but are overridden by flags (checked via changed map)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			// Probe the scout directory and derive state/db paths under it
			info, err := cliconfig.LoadDirInfo(&cfg)
			if err != nil {
				return err
			}

			// Validate and set derived defaults
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Log configuration (masking API key)
			logCfg := cfg
			if len(logCfg.AuthKey) > 0 {
				logCfg.AuthKey = "*****"
			}
			log.Info().Interface("config", logCfg).Int("scout_files", info.ScoutFiles).Msg("configuration")

			// Convert cliconfig.Config to scoutship.Config
			libCfg := scoutship.Config{
				ScoutDir:      cfg.ScoutDir,
				StateDir:      cfg.StateDir,
				DBPath:        cfg.DBPath,
				ServiceURL:    cfg.ServiceURL,
				AuthKey:       cfg.AuthKey,
				AgentID:       cfg.AgentID,
				ScanInterval:  cfg.ScanInterval,
				SendInterval:  cfg.SendInterval,
				HTTPTimeout:   cfg.HTTPTimeout,
				MaxBatchCount: cfg.MaxBatchCount,
				MaxBatchBytes: cfg.MaxBatchBytes,
				RetryBase:     cfg.RetryBase,
				RetryMax:      cfg.RetryMax,
				Meta:          cfg.Meta,
				Once:          cfg.Once,
			}

			// Create zerolog adapter for the library
			zerologAdapter := logadapter.NewZerologAdapterWithLogger(log)

			// Watch the config file that was actually loaded, if any
			watcherCfg := configwatcher.DefaultConfig()
			if cliconfig.FileExists(cfgFile) {
				watcherCfg.ConfigPath = cfgFile
			}

			s, err := scoutship.New(libCfg,
				scoutship.WithLogger(zerologAdapter),
				// Send config snapshots to the service when the file changes
				configwatcher.WithConfigWatcher(watcherCfg),
				// Compress old ingested scout files past the high watermark
				scoutship.WithArchiveConfig(scoutship.ArchiveConfig{
					Enabled:       cfg.ArchiveEnabled,
					CheckInterval: cfg.ArchiveCheckInterval,
					HighWatermark: cfg.ArchiveHighWatermark,
					LowWatermark:  cfg.ArchiveLowWatermark,
				}),
			)
			if err != nil {
				return fmt.Errorf("create scoutship: %w", err)
			}

			// Setup signal handling for graceful shutdown
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			// Start scoutship
			if err := s.Start(ctx); err != nil {
				return fmt.Errorf("start scoutship: %w", err)
			}

			// Unblocks when the run worker exits: after --once
			// completes, or after a crash
			doneCh := make(chan struct{})
			go func() {
				s.Wait()
				close(doneCh)
			}()

			// Wait for signal or completion
			select {
			case <-sigCh:
				log.Info().Msg("received signal, stopping...")
			case <-doneCh:
				if s.Status() == scoutship.StateCrashed {
					return fmt.Errorf("scoutship crashed")
				}
			}

			// Graceful shutdown
			if err := s.Stop(); err != nil {
				return fmt.Errorf("stop scoutship: %w", err)
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.scoutship/config.toml)")
	root.Flags().StringVar(&cfg.ScoutDir, "scout-dir", "", "directory containing .dvw scout files")

	root.Flags().StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "state directory for the ingest ledger (defaults to {scout-dir}/.scoutship)")
	if err := root.Flags().MarkHidden("state-dir"); err != nil {
		log.Info().Err(err).Msg("failed to hide state-dir flag")
	}
	root.Flags().StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite match archive path (defaults to {state-dir}/matches.db)")
	if err := root.Flags().MarkHidden("db-path"); err != nil {
		log.Info().Err(err).Msg("failed to hide db-path flag")
	}

	root.Flags().StringVar(&cfg.ServiceURL, "service-url", cfg.ServiceURL, "base service URL (leave empty to decode and archive locally only)")
	root.Flags().StringVar(&cfg.AuthKey, "auth-key", cfg.AuthKey, "API key for authentication")
	root.Flags().StringVar(&cfg.AgentID, "agent-id", cfg.AgentID, "agent identifier reported to the service (defaults to hostname)")

	root.Flags().DurationVar(&cfg.ScanInterval, "scan-interval", cfg.ScanInterval, "scout directory scan interval")
	root.Flags().DurationVar(&cfg.SendInterval, "send-interval", cfg.SendInterval, "soft send interval for partial batches")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "http-timeout", cfg.HTTPTimeout, "HTTP timeout")
	root.Flags().IntVar(&cfg.MaxBatchCount, "max-batch-count", cfg.MaxBatchCount, "maximum matches per upload batch")
	root.Flags().IntVar(&cfg.MaxBatchBytes, "max-batch-bytes", cfg.MaxBatchBytes, "maximum payload bytes per upload batch")
	root.Flags().DurationVar(&cfg.RetryBase, "retry-base", cfg.RetryBase, "initial backoff after a failed upload")
	root.Flags().DurationVar(&cfg.RetryMax, "retry-max", cfg.RetryMax, "maximum upload backoff")

	root.Flags().BoolVar(&cfg.Meta, "meta", cfg.Meta, "register the agent with the service on startup")
	root.Flags().BoolVar(&cfg.Once, "once", cfg.Once, "ship available scout files and exit")

	root.Flags().BoolVar(&cfg.ArchiveEnabled, "archive", cfg.ArchiveEnabled, "compress old ingested scout files when the directory outgrows the high watermark")
	root.Flags().Int64Var(&cfg.ArchiveHighWatermark, "archive-high", cfg.ArchiveHighWatermark, "scout directory size that triggers archiving, in bytes")
	root.Flags().Int64Var(&cfg.ArchiveLowWatermark, "archive-low", cfg.ArchiveLowWatermark, "target scout directory size after archiving, in bytes")
	root.Flags().DurationVar(&cfg.ArchiveCheckInterval, "archive-check", cfg.ArchiveCheckInterval, "how often to check the scout directory size")

	root.AddCommand(newParseCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("scoutship")
		os.Exit(1)
	}
}

// newVersionCmd reports the build version, VCS revision, and runtime.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "scoutship %s\n", getVersion())
			if commit := getCommit(); commit != "" {
				fmt.Fprintf(out, "commit:  %s\n", commit)
			}
			fmt.Fprintf(out, "runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
