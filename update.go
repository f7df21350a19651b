package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"jfind/internal/theme"
	"jfind/internal/updater"

	"github.com/spf13/cobra"
)

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Check for and install a newer jfind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handleUpdate(cmd.Context())
		},
	}
}

func (a *app) handleUpdate(ctx context.Context) error {
	cfg, err := a.writableConfig()
	if err != nil {
		return err
	}

	if !cfg.UpdateConfig.Enabled {
		fmt.Fprintln(os.Stderr, theme.WarningMessage("Updates are disabled in configuration."))
		fmt.Fprintln(os.Stderr, theme.Faint.Render("To enable, edit "+cfg.Path()+" and set update_config.enabled to true"))
		return nil
	}

	upd, err := updater.NewUpdater(cfg, Version, os.Stderr, a.logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, updater.UpdateTimeout)
	defer cancel()

	fmt.Fprintln(os.Stderr, theme.InfoStyle.Render("Checking for updates..."))
	release, err := upd.CheckForUpdate(ctx)
	if errors.Is(err, updater.ErrNoRepository) {
		fmt.Fprintln(os.Stderr, theme.WarningMessage("This build was made without a release repository; update jfind the way you installed it."))
		return nil
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, theme.ErrorMessage("Update check failed: "+err.Error()))
		return err
	}

	if release == nil {
		upd.ShowAlreadyUpToDate()
		return nil
	}

	action, err := upd.PromptForUpdate(release)
	if err != nil {
		fmt.Fprintln(os.Stderr, theme.WarningMessage("Update cancelled."))
		return nil
	}

	switch action {
	case updater.ActionSkip:
		fmt.Fprintln(os.Stderr, theme.InfoMessage(fmt.Sprintf("Skipped version %s", release.Version())))
		return nil
	case updater.ActionLater:
		fmt.Fprintln(os.Stderr, theme.InfoMessage("Update postponed"))
		return nil
	}

	upd.ShowDownloadingUpdate(release.Version())
	if err := upd.PerformUpdate(ctx, release); err != nil {
		fmt.Fprintln(os.Stderr, theme.ErrorMessage("Update failed: "+err.Error()))
		if url := upd.ReleasesURL(); url != "" {
			fmt.Fprintln(os.Stderr, theme.Faint.Render("Please try again or download manually from:"))
			fmt.Fprintln(os.Stderr, theme.Faint.Render(url))
		}
		return err
	}

	upd.ShowUpdateSuccess(release.Version())
	return nil
}
