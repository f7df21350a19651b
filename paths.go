package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jfind/internal/java"
	"jfind/internal/theme"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newPathsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Manage the directories scanned for Java installations",
	}

	var yes bool
	addCmd := &cobra.Command{
		Use:   "add <directory>",
		Short: "Add a directory to scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handleAddPath(cmd, args[0], yes)
		},
	}
	addCmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	removeCmd := &cobra.Command{
		Use:   "remove [directory]",
		Short: "Remove a directory from the search paths",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handleRemovePath(cmd, args, yes)
		},
	}
	removeCmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show the default and configured search paths",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.handleListPaths(cmd)
			},
		},
		addCmd,
		removeCmd,
	)
	return cmd
}

func (a *app) handleAddPath(cmd *cobra.Command, path string, yes bool) error {
	out := cmd.OutOrStdout()

	if !java.IsValidSearchPath(path) {
		fmt.Fprintln(os.Stderr, theme.ErrorMessage("Invalid directory path: "+path))
		fmt.Fprintln(os.Stderr, theme.Faint.Render("Make sure the path exists and is a directory."))
		return fmt.Errorf("%w: %s", errPathNotFound, path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	cfg, err := a.writableConfig()
	if err != nil {
		return err
	}

	if cfg.HasSearchPath(path) {
		fmt.Fprintln(out, theme.WarningMessage("This search path is already configured."))
		return nil
	}

	if !yes && interactive() {
		confirmed, err := confirmAction(
			"Add search path?",
			fmt.Sprintf("Path: %s\n\nScans will look for Java installations in this directory.", path),
		)
		if err != nil || !confirmed {
			fmt.Fprintln(out, theme.WarningMessage("Operation cancelled."))
			return nil
		}
	}

	cfg.AddSearchPath(path)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	a.logger.Debug("search path added", "path", path, "config", cfg.Path())

	fmt.Fprintln(out, theme.SuccessMessage("Added search path:"))
	fmt.Fprintln(out, "  "+theme.PathStyle.Render(path))
	return nil
}

func (a *app) handleRemovePath(cmd *cobra.Command, args []string, yes bool) error {
	out := cmd.OutOrStdout()

	cfg, err := a.writableConfig()
	if err != nil {
		return err
	}

	var pathToRemove string
	if len(args) == 1 {
		pathToRemove = args[0]
	} else {
		if len(cfg.SearchPaths) == 0 {
			fmt.Fprintln(out, theme.InfoMessage("No custom search paths to remove"))
			return nil
		}
		if !interactive() {
			return fmt.Errorf("no directory given and the terminal is not interactive")
		}

		pathToRemove, err = selectSearchPath(cfg.SearchPaths)
		if err != nil {
			fmt.Fprintln(os.Stderr, theme.WarningMessage(fmt.Sprintf("Selection cancelled: %v", err)))
			return err
		}
	}

	if !cfg.HasSearchPath(pathToRemove) {
		fmt.Fprintln(out, theme.WarningMessage("This path is not in the search paths list."))
		return nil
	}

	if !yes && interactive() {
		confirmed, err := confirmAction("Remove search path?", fmt.Sprintf("Path: %s", pathToRemove))
		if err != nil || !confirmed {
			fmt.Fprintln(out, theme.WarningMessage("Operation cancelled."))
			return nil
		}
	}

	cfg.RemoveSearchPath(pathToRemove)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintln(out, theme.SuccessMessage("Removed search path."))
	return nil
}

func (a *app) handleListPaths(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, theme.Title.Render("Java Search Paths"))
	fmt.Fprintln(out)

	if def := java.DefaultSearchPath(); def != "" {
		fmt.Fprintln(out, theme.LabelStyle.Render("Default path (built-in):"))
		fmt.Fprintln(out, pathTable([]string{def}))
		fmt.Fprintln(out)
	}

	if len(a.cfg.SearchPaths) == 0 {
		fmt.Fprintln(out, theme.InfoMessage("No custom search paths configured."))
		fmt.Fprintln(out, theme.Faint.Render("Use 'jfind paths add <directory>' to add one."))
		return nil
	}

	fmt.Fprintln(out, theme.LabelStyle.Render("Custom search paths:"))
	fmt.Fprintln(out, pathTable(a.cfg.SearchPaths))
	return nil
}

// pathTable lists paths with whether each currently exists
func pathTable(paths []string) string {
	rows := make([][]string, 0, len(paths))
	for _, p := range paths {
		status := "✗ Not found"
		if java.IsValidSearchPath(p) {
			status = "✓ Exists"
		}
		rows = append(rows, []string{p, status})
	}
	return theme.Table([]string{"Path", "Status"}, rows, nil).String()
}

func selectSearchPath(paths []string) (string, error) {
	maxW := 0
	for _, p := range paths {
		if w := lipgloss.Width(p); w > maxW {
			maxW = w
		}
	}

	options := make([]huh.Option[string], len(paths))
	for i, p := range paths {
		pad := strings.Repeat(" ", maxW-lipgloss.Width(p))
		status := theme.Faint.Render("Not found")
		if java.IsValidSearchPath(p) {
			status = theme.SuccessStyle.Render("✓ Exists")
		}
		options[i] = huh.NewOption(fmt.Sprintf("%s%s  %s", theme.HighlightText(p), pad, status), p)
	}

	var selected string
	err := huh.NewSelect[string]().
		Title(theme.Subtitle.Render("Select Search Path to Remove")).
		Description(theme.Faint.Render("Use arrow keys to navigate, Enter to select")).
		Options(options...).
		Value(&selected).
		Run()
	return selected, err
}

// confirmAction shows a confirmation prompt
func confirmAction(title, description string) (bool, error) {
	var confirmed bool

	err := huh.NewConfirm().
		Title(theme.Subtitle.Render(title)).
		Description(theme.Faint.Render(description)).
		Affirmative(theme.SuccessStyle.Render("Yes")).
		Negative(theme.ErrorStyle.Render("No")).
		Value(&confirmed).
		Run()

	return confirmed, err
}
