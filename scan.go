package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jfind/internal/config"
	"jfind/internal/distro"
	"jfind/internal/env"
	"jfind/internal/java"
	"jfind/internal/report"
	"jfind/internal/theme"

	"github.com/spf13/cobra"
)

// errPathNotFound reports a scan root that is missing or not a directory
var errPathNotFound = errors.New("given path not found")

// errUnknownFilter reports a --distribution or --vendor value that names nothing
var errUnknownFilter = errors.New("unknown filter value")

type scanOptions struct {
	output       string
	timeout      time.Duration
	workers      int
	noUsage      bool
	distribution string
	vendor       string
}

func addScanFlags(cmd *cobra.Command, opts *scanOptions) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutputFormat,
		"output format: "+strings.Join(report.Formats(), ", "))
	cmd.Flags().DurationVar(&opts.timeout, "timeout", config.DefaultTimeoutSeconds*time.Second,
		"how long to wait for classification once the walk is done")
	cmd.Flags().IntVar(&opts.workers, "workers", config.DefaultWorkers, "number of launchers classified in parallel")
	cmd.Flags().BoolVar(&opts.noUsage, "no-usage", false, "skip correlating installations with running processes")
	cmd.Flags().StringVar(&opts.distribution, "distribution", "", "only report this distribution, e.g. temurin or corretto")
	cmd.Flags().StringVar(&opts.vendor, "vendor", "", "only report builds from this vendor, e.g. eclipse or amazon")
}

func newScanCmd(a *app) *cobra.Command {
	opts := &scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan [PATH...]",
		Short: "Discover and classify Java installations",
		Long: `Scan walks each PATH (or, without arguments, the platform's default Java
location and the configured search paths) and reports every installation found.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handleScan(cmd, args, opts)
		},
	}
	addScanFlags(cmd, opts)
	return cmd
}

// applyConfig fills the flags the user did not set from the configuration
func (opts *scanOptions) applyConfig(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("output") && cfg.OutputFormat != "" {
		opts.output = cfg.OutputFormat
	}
	if !flags.Changed("timeout") {
		opts.timeout = cfg.Timeout()
	}
	if !flags.Changed("workers") {
		opts.workers = cfg.Workers
	}
}

func (a *app) handleScan(cmd *cobra.Command, args []string, opts *scanOptions) error {
	opts.applyConfig(cmd, a.cfg)

	format, err := report.ParseFormat(opts.output)
	if err != nil {
		return err
	}

	filter, err := newInstallationFilter(opts.distribution, opts.vendor)
	if err != nil {
		fmt.Fprintln(os.Stderr, theme.ErrorMessage(err.Error()))
		return err
	}

	roots, err := resolveRoots(args, java.DefaultSearchPath(), a.cfg.SearchPaths)
	if err != nil {
		fmt.Fprintln(os.Stderr, theme.ErrorMessage(err.Error()))
		return err
	}
	a.logger.Debug("scanning", "roots", roots, "workers", opts.workers, "timeout", opts.timeout)

	detector := a.newDetector(opts.workers, opts.timeout)
	installations, err := a.discover(cmd.Context(), detector, roots)
	if err != nil {
		return err
	}

	if found := len(installations); filter.active() {
		installations = filter.apply(installations)
		a.logger.Debug("filtered installations", "found", found, "kept", len(installations))
	}

	if !opts.noUsage {
		installations = a.markUsage(cmd.Context(), installations)
	}

	out := cmd.OutOrStdout()
	if len(installations) == 0 {
		if !format.Machine() {
			msg := "No Java installations found."
			if filter.active() {
				msg = "No Java installations match the given filter."
			}
			fmt.Fprintln(out, theme.WarningMessage(msg))
			fmt.Fprintln(out, theme.Faint.Render("Run 'jfind paths add <directory>' to scan more locations."))
		}
		return nil
	}

	run := report.NewRun(roots, detector.SysInfo(), installations, time.Now())
	return report.Render(out, run, format)
}

// installationFilter keeps installations of one distribution and/or vendor.
// The zero value keeps everything.
type installationFilter struct {
	distribution distro.Distribution
	vendor       distro.Vendor
}

// newInstallationFilter resolves the flag spellings. An empty value disables
// that half of the filter; an unrecognised one is an error.
func newInstallationFilter(distribution, vendor string) (installationFilter, error) {
	var f installationFilter
	if distribution = strings.TrimSpace(distribution); distribution != "" {
		f.distribution = distro.NormalizeDistribution(distribution)
		if !f.distribution.Found() {
			return installationFilter{}, fmt.Errorf("%w: distribution %q", errUnknownFilter, distribution)
		}
	}
	if vendor = strings.TrimSpace(vendor); vendor != "" {
		f.vendor = distro.NormalizeVendor(vendor)
		if !f.vendor.Found() {
			return installationFilter{}, fmt.Errorf("%w: vendor %q", errUnknownFilter, vendor)
		}
	}
	return f, nil
}

func (f installationFilter) active() bool {
	return f.distribution.Found() || f.vendor.Found()
}

func (f installationFilter) apply(installations []java.Installation) []java.Installation {
	kept := make([]java.Installation, 0, len(installations))
	for _, inst := range installations {
		if f.distribution.Found() && inst.Distribution != f.distribution {
			continue
		}
		if f.vendor.Found() && inst.Vendor() != f.vendor {
			continue
		}
		kept = append(kept, inst)
	}
	return kept
}

func (a *app) discover(ctx context.Context, detector *java.Detector, roots []string) ([]java.Installation, error) {
	var installations []java.Installation
	err := withSpinner("Scanning for Java installations...", func() error {
		var err error
		installations, err = detector.Discover(ctx, roots)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	return installations, nil
}

// markUsage correlates installations with JAVA_HOME and running java
// processes. Failure to list processes only loses the usage columns.
func (a *app) markUsage(ctx context.Context, installations []java.Installation) []java.Installation {
	javaHome, err := env.GetJavaHome()
	if err != nil {
		a.logger.Debug("no JAVA_HOME", "err", err)
	}

	procs, err := java.ListJavaProcesses(ctx)
	if err != nil {
		a.logger.Warn("failed to list processes", "err", err)
	}
	return java.MarkUsage(installations, procs, javaHome)
}

// resolveRoots picks the directories to scan. Explicit paths must exist.
// Without them the default location and configured search paths are used,
// skipping any that are missing. Duplicates are dropped case-insensitively.
func resolveRoots(args []string, defaultPath string, searchPaths []string) ([]string, error) {
	var roots []string
	add := func(p string) {
		p = filepath.Clean(p)
		for _, r := range roots {
			if strings.EqualFold(r, p) {
				return
			}
		}
		roots = append(roots, p)
	}

	if len(args) > 0 {
		for _, p := range args {
			if !java.IsValidSearchPath(p) {
				return nil, fmt.Errorf("%w: %s", errPathNotFound, p)
			}
			abs, err := filepath.Abs(p)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
			}
			add(abs)
		}
		return roots, nil
	}

	if defaultPath != "" && java.IsValidSearchPath(defaultPath) {
		add(defaultPath)
	}
	for _, p := range searchPaths {
		if java.IsValidSearchPath(p) {
			add(p)
		}
	}
	return roots, nil
}
