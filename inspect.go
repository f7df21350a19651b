package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jfind/internal/java"
	"jfind/internal/report"
	"jfind/internal/theme"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	var noUsage bool
	cmd := &cobra.Command{
		Use:   "inspect [JAVA_HOME]",
		Short: "Classify a single Java installation",
		Long: `Inspect classifies the installation rooted at JAVA_HOME and shows how it was
identified. Without an argument the default locations are scanned and the
installation is picked interactively.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handleInspect(cmd, args, noUsage)
		},
	}
	cmd.Flags().BoolVar(&noUsage, "no-usage", false, "skip correlating the installation with running processes")
	return cmd
}

func (a *app) handleInspect(cmd *cobra.Command, args []string, noUsage bool) error {
	detector := a.newDetector(a.cfg.Workers, a.cfg.Timeout())

	var inst java.Installation
	if len(args) == 1 {
		javaHome, err := absJavaHome(args[0])
		if err != nil {
			return err
		}
		if !detector.IsValidJavaPath(javaHome) {
			err := fmt.Errorf("%w: no java launcher under %s", errPathNotFound, javaHome)
			fmt.Fprintln(os.Stderr, theme.ErrorMessage(err.Error()))
			return err
		}

		inst, err = detector.Inspect(cmd.Context(), javaHome)
		if err != nil {
			fmt.Fprintln(os.Stderr, theme.ErrorMessage(err.Error()))
			return err
		}
	} else {
		if !interactive() {
			return errors.New("no JAVA_HOME given and the terminal is not interactive")
		}

		roots, err := resolveRoots(nil, java.DefaultSearchPath(), a.cfg.SearchPaths)
		if err != nil {
			return err
		}
		installations, err := a.discover(cmd.Context(), detector, roots)
		if err != nil {
			return err
		}
		if len(installations) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), theme.WarningMessage("No Java installations found."))
			return nil
		}

		inst, err = selectInstallation(installations)
		if err != nil {
			fmt.Fprintln(os.Stderr, theme.WarningMessage("Selection cancelled."))
			return err
		}
	}

	if !noUsage {
		inst = a.markUsage(cmd.Context(), []java.Installation{inst})[0]
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.RenderDetail(inst))
	return nil
}

// absJavaHome makes a JAVA_HOME argument absolute so the reported location
// does not depend on the working directory
func absJavaHome(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return abs, nil
}

// selectInstallation shows an interactive selector for installations
func selectInstallation(installations []java.Installation) (java.Installation, error) {
	maxW := 0
	for _, inst := range installations {
		if w := lipgloss.Width(inst.Name + " " + inst.Version.Reduced()); w > maxW {
			maxW = w
		}
	}

	options := make([]huh.Option[int], len(installations))
	for i, inst := range installations {
		name := inst.Name + " " + inst.Version.Reduced()
		pad := strings.Repeat(" ", maxW-lipgloss.Width(name))
		label := fmt.Sprintf("%s%s  %s", theme.HighlightText(name), pad, inst.Location)
		options[i] = huh.NewOption(label, i)
	}

	var selected int
	err := huh.NewSelect[int]().
		Title(theme.Subtitle.Render("Select Java Installation")).
		Description(theme.Faint.Render("Use arrow keys to navigate, Enter to select")).
		Options(options...).
		Value(&selected).
		Run()
	if err != nil {
		return java.Installation{}, err
	}

	return installations[selected], nil
}
