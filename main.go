package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"jfind/internal/config"
	"jfind/internal/java"
	"jfind/internal/report"
	"jfind/internal/theme"
	"jfind/internal/updater"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set during build time via ldflags
var Version = "dev"

// app carries what every command handler needs
type app struct {
	cfg     *config.Config
	cfgErr  error
	logger  *log.Logger
	verbose bool
}

func main() {
	a := &app{
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "jfind",
			Level:  log.WarnLevel,
		}),
	}

	if err := fang.Execute(
		context.Background(),
		newRootCmd(a),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	opts := &scanOptions{}

	rootCmd := &cobra.Command{
		Use:   "jfind [PATH...]",
		Short: "Find and classify Java installations",
		Long: theme.Title.Render("jfind") + theme.Subtitle.Render(" - Java installation discovery") + `

jfind walks the given directories (or the platform's default Java location
plus your configured search paths), runs every java launcher it finds and
identifies the distribution, version, build scope and architecture of each
installation, and whether a running process is using it.`,
		Example: `  jfind                      Scan default and configured locations (json)
  jfind -o table             Same, as a table
  jfind /opt/jdks -o csv     Scan a specific directory
  jfind inspect $JAVA_HOME   Classify a single installation
  jfind paths add ~/jdks     Add a search path`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handleScan(cmd, args, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cmd.Name() != "update" {
				a.checkForUpdateBackground(cmd.Context())
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	addScanFlags(rootCmd, opts)

	rootCmd.AddCommand(
		newScanCmd(a),
		newInspectCmd(a),
		newSysInfoCmd(a),
		newPathsCmd(a),
		newUpdateCmd(a),
	)
	return rootCmd
}

// setup loads the configuration and applies the global flags. A broken config
// file does not stop a scan; commands that write the config check cfgErr.
func (a *app) setup() {
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		a.logger.Warn("failed to load config, using defaults", "err", err)
		a.cfg, a.cfgErr = config.Default(), err
		return
	}
	a.cfg = cfg
}

// writableConfig returns the config for commands that save it
func (a *app) writableConfig() (*config.Config, error) {
	if a.cfgErr != nil {
		return nil, fmt.Errorf("failed to load config: %w", a.cfgErr)
	}
	return a.cfg, nil
}

func (a *app) newDetector(workers int, timeout time.Duration) *java.Detector {
	return java.NewDetector(
		java.WithWorkers(workers),
		java.WithTimeout(timeout),
		java.WithLogger(a.logger),
	)
}

// interactive reports whether the user can see a spinner or answer a prompt
func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// withSpinner runs fn behind a spinner on stderr when stderr is a terminal
func withSpinner(label string, fn func() error) error {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return fn()
	}
	return java.WithScanner(os.Stderr, label, fn)
}

func newSysInfoCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "sysinfo",
		Short: "Show the host platform used for classification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}
			return report.RenderSysInfo(cmd.OutOrStdout(), java.DetectSysInfo(), format)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(report.FormatTable), "output format: json, pretty, yaml, toml or table")
	return cmd
}

func (a *app) checkForUpdateBackground(ctx context.Context) {
	if a.cfg == nil || !term.IsTerminal(int(os.Stderr.Fd())) {
		return
	}

	upd, err := updater.NewUpdater(a.cfg, Version, os.Stderr, a.logger)
	if err != nil {
		a.logger.Debug("updater unavailable", "err", err)
		return
	}
	if !upd.ShouldCheckForUpdate() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	release, err := upd.CheckForUpdate(ctx)
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			a.logger.Debug("background update check failed", "err", err)
		}
		return
	}
	if release != nil {
		upd.ShowUpdateNotification(release.Version())
	}
}
