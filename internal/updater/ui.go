package updater

import (
	"fmt"
	"strings"

	"jfind/internal/theme"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/creativeprojects/go-selfupdate"
)

// Prompt answers
const (
	ActionUpdate = "update"
	ActionSkip   = "skip"
	ActionLater  = "later"
)

// PromptForUpdate shows an interactive prompt asking user if they want to update
// Returns the user's choice: ActionUpdate, ActionSkip or ActionLater
func (u *Updater) PromptForUpdate(release *selfupdate.Release) (string, error) {
	sizeMB := float64(release.AssetByteSize) / 1024 / 1024

	description := fmt.Sprintf(
		"Download size: %.1f MB\n\n%s",
		sizeMB,
		renderChangelog(truncateChangelog(release.ReleaseNotes, 400)),
	)

	var action string
	err := huh.NewSelect[string]().
		Title(theme.Subtitle.Render(fmt.Sprintf("Update available: %s → %s", u.currentVersion, release.Version()))).
		Description(description).
		Options(
			huh.NewOption(theme.SuccessStyle.Render("Update now"), ActionUpdate),
			huh.NewOption(theme.InfoStyle.Render("Skip this version"), ActionSkip),
			huh.NewOption(theme.WarningStyle.Render("Remind me later"), ActionLater),
		).
		Value(&action).
		Run()
	if err != nil {
		return "", err
	}

	if action == ActionSkip {
		if err := u.SkipVersion(release.Version()); err != nil {
			u.logger.Warn("failed to save skip preference", "err", err)
		}
	}

	return action, nil
}

// ShowUpdateNotification displays a subtle notification about available update
func (u *Updater) ShowUpdateNotification(latestVersion string) {
	fmt.Fprintf(u.out, "\n%s Update available: %s → %s %s\n\n",
		theme.InfoStyle.Render("ℹ"),
		theme.Faint.Render(u.currentVersion),
		theme.HighlightText(latestVersion),
		theme.Faint.Render("(run 'jfind update')"))
}

// ShowUpdateSuccess displays success message after update
func (u *Updater) ShowUpdateSuccess(version string) {
	fmt.Fprintln(u.out, theme.SuccessMessage("Update complete"))
	fmt.Fprintf(u.out, "%s %s\n",
		theme.LabelStyle.Render("Version:"),
		theme.HighlightText(version))
}

// ShowAlreadyUpToDate displays message when already on latest version
func (u *Updater) ShowAlreadyUpToDate() {
	fmt.Fprintln(u.out, theme.SuccessMessage(fmt.Sprintf("You're already running the latest version (%s)", u.currentVersion)))
}

// ShowDownloadingUpdate displays a message while downloading
func (u *Updater) ShowDownloadingUpdate(version string) {
	fmt.Fprintln(u.out, theme.InfoMessage(fmt.Sprintf("Downloading jfind %s...", version)))
}

// renderChangelog formats markdown release notes for the terminal. The raw
// text is returned when rendering fails.
func renderChangelog(notes string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(70))
	if err != nil {
		return notes
	}
	out, err := renderer.Render(notes)
	if err != nil {
		return notes
	}
	return strings.TrimSpace(out)
}

// truncateChangelog truncates the changelog to a maximum length
func truncateChangelog(changelog string, maxLen int) string {
	changelog = strings.TrimSpace(changelog)

	if changelog == "" {
		return "See release notes on GitHub for details."
	}

	if len(changelog) <= maxLen {
		return changelog
	}

	// Find a good break point (newline or space)
	truncated := changelog[:maxLen]
	if idx := strings.LastIndex(truncated, "\n"); idx > maxLen/2 {
		truncated = truncated[:idx]
	} else if idx := strings.LastIndex(truncated, " "); idx > maxLen/2 {
		truncated = truncated[:idx]
	}

	return truncated + "..."
}
