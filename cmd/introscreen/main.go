package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/introscreen/internal/cliconfig"
	"github.com/bft-labs/introscreen/pkg/log"
)

const helpDescription = `
Show an intro screen, then hand over to the main menu.

The screen runs for a fixed duration, or until an external process reports
readiness by dropping marker files into --ready-dir:
  ready            the run succeeded
  failed           the run failed
  progress         "<fraction> <stage>", e.g. "0.4 assets"

Configure via file (TOML or YAML), INTROSCREEN_* environment variables or flags.
Flags win over the environment, which wins over the file.
`

var exampleUsage = strings.TrimSpace(`
  introscreen --label "Acme" --duration 2s
  introscreen --mode dynamic --ready-dir /run/acme --max-wait 10s --on-failure close
  introscreen --config $HOME/.introscreen/config.yaml --headless --metrics-addr :9100
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "introscreen",
		Short:         "Terminal intro screen demo",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

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

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			out, closeOut, err := logOutput(cfg)
			if err != nil {
				return err
			}
			defer closeOut()

			logger := cliconfig.Logger(out, cfg.LogLevel)
			logger.Info("configuration", log.Any("config", cfg))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			d, err := newDemo(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("create intro screen: %w", err)
			}
			if err := d.run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file, .toml or .yaml (default: $HOME/.introscreen/config.toml)")

	root.Flags().StringVar(&cfg.Mode, "mode", cfg.Mode, "duration mode: fixed or dynamic")
	root.Flags().DurationVar(&cfg.Duration, "duration", cfg.Duration, "how long the screen runs in fixed mode")
	root.Flags().DurationVar(&cfg.MaxWait, "max-wait", cfg.MaxWait, "fallback timeout in dynamic mode")
	root.Flags().StringVar(&cfg.ReadyDir, "ready-dir", cfg.ReadyDir, "directory watched for ready/failed/progress markers (dynamic mode)")
	root.Flags().BoolVar(&cfg.SkipOnInput, "skip", cfg.SkipOnInput, "let esc, space or enter skip the screen")

	root.Flags().StringVar(&cfg.Label, "label", cfg.Label, "label drawn under the icon")
	root.Flags().StringVar(&cfg.Icon, "icon", cfg.Icon, "icon text, or the name of a loaded asset")
	root.Flags().StringVar(&cfg.Background, "background", cfg.Background, "background text, or the name of a loaded asset")
	root.Flags().StringVar(&cfg.Theme, "theme", cfg.Theme, "YAML theme file")
	root.Flags().StringSliceVar(&cfg.Assets, "assets", cfg.Assets, "files loaded before the screen is shown, referenced by base name")

	root.Flags().StringVar(&cfg.OnFailure, "on-failure", cfg.OnFailure, "what a failed run does: continue or close")
	root.Flags().DurationVar(&cfg.FailureDelay, "failure-delay", cfg.FailureDelay, "time spent in the failure state before acting")
	root.Flags().StringVar(&cfg.FailureMessage, "failure-message", cfg.FailureMessage, "message shown while in the failure state")

	root.Flags().BoolVar(&cfg.Headless, "headless", cfg.Headless, "run without a terminal UI and exit at the menu")
	root.Flags().DurationVar(&cfg.Tick, "tick", cfg.Tick, "frame interval")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	root.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "append logs to this file (the terminal UI discards logs otherwise)")
	root.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address")

	if err := root.ExecuteContext(context.Background()); err != nil {
		cliconfig.Logger(os.Stderr, "error").Error("introscreen", log.Err(err))
		os.Exit(1)
	}
}

// logOutput picks where logs go. The terminal UI owns the screen, so it only
// logs to a file.
func logOutput(cfg cliconfig.Config) (io.Writer, func(), error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return f, func() { f.Close() }, nil
	}
	if cfg.Headless {
		return os.Stderr, func() {}, nil
	}
	return io.Discard, func() {}, nil
}
