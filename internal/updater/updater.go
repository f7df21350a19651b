package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"jfind/internal/config"

	"github.com/charmbracelet/log"
	"github.com/creativeprojects/go-selfupdate"
)

// GitHubRepo is the owner/name of the repository jfind releases are published
// to. It is set during build time via ldflags:
//
//	-X jfind/internal/updater.GitHubRepo=owner/jfind
//
// Builds without it never check for updates.
var GitHubRepo string

const (
	// CheckInterval is minimum time between update checks
	CheckInterval = 24 * time.Hour

	// UpdateTimeout is maximum time for update operations
	UpdateTimeout = 5 * time.Minute
)

var (
	// ErrNoRelease is returned when the repository has no published release
	ErrNoRelease = errors.New("no releases found")

	// ErrNoRepository is returned when the build names no valid release repository
	ErrNoRepository = errors.New("no release repository configured for this build")
)

// Updater handles checking and applying updates
type Updater struct {
	config         *config.Config
	currentVersion string
	repo           string
	selfUpdater    *selfupdate.Updater
	logger         *log.Logger
	out            io.Writer
}

// NewUpdater creates a new Updater instance. Messages go to out and
// non-fatal problems are reported through logger.
func NewUpdater(cfg *config.Config, version string, out io.Writer, logger *log.Logger) (*Updater, error) {
	// Configure selfupdate with SHA256 checksum validation
	su, err := selfupdate.NewUpdater(selfupdate.Config{
		Validator: &selfupdate.ChecksumValidator{
			UniqueFilename: "SHA256SUMS.txt",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if out == nil {
		out = os.Stderr
	}

	return &Updater{
		config:         cfg,
		currentVersion: cleanVersion(version),
		repo:           strings.TrimSpace(GitHubRepo),
		selfUpdater:    su,
		logger:         logger,
		out:            out,
	}, nil
}

// CurrentVersion returns the running version without its v prefix
func (u *Updater) CurrentVersion() string { return u.currentVersion }

// ReleasesURL is the page to download releases by hand, empty when the build
// names no repository
func (u *Updater) ReleasesURL() string {
	if !validRepo(u.repo) {
		return ""
	}
	return "https://github.com/" + u.repo + "/releases"
}

// ShouldCheckForUpdate determines if an update check should be performed
// based on config settings and last check time
func (u *Updater) ShouldCheckForUpdate() bool {
	if !u.config.UpdateConfig.Enabled || !u.config.UpdateConfig.AutoCheck {
		return false
	}

	// Development builds never auto-update
	if u.currentVersion == "dev" || u.currentVersion == "" {
		return false
	}

	if !validRepo(u.repo) {
		return false
	}

	// Rate limit: check at most once per CheckInterval
	return time.Since(u.config.UpdateConfig.LastCheck) >= CheckInterval
}

// CheckForUpdate queries GitHub for the latest release
// Returns nil if no update available or if user skipped this version
func (u *Updater) CheckForUpdate(ctx context.Context) (*selfupdate.Release, error) {
	if !validRepo(u.repo) {
		return nil, ErrNoRepository
	}

	latest, found, err := u.selfUpdater.DetectLatest(ctx, selfupdate.ParseSlug(u.repo))
	if err != nil {
		return nil, fmt.Errorf("failed to check for updates: %w", err)
	}

	if !found {
		return nil, ErrNoRelease
	}

	u.config.UpdateConfig.LastCheck = time.Now()
	if err := u.config.Save(); err != nil {
		u.logger.Warn("failed to save config", "path", u.config.Path(), "err", err)
	}

	if latest.LessOrEqual(u.currentVersion) {
		return nil, nil // Already up to date
	}

	if u.config.UpdateConfig.SkipVersion == latest.Version() {
		u.logger.Debug("skipping release", "version", latest.Version())
		return nil, nil
	}

	return latest, nil
}

// PerformUpdate downloads and installs the update
// Creates a backup and rolls back on failure
func (u *Updater) PerformUpdate(ctx context.Context, release *selfupdate.Release) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to determine executable path: %w", err)
	}

	backup := exe + ".backup"
	if err := copyFile(exe, backup); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, release.AssetURL, release.AssetName, exe); err != nil {
		if rollbackErr := os.Rename(backup, exe); rollbackErr != nil {
			return fmt.Errorf("update failed and rollback failed: update error: %w, rollback error: %v", err, rollbackErr)
		}
		return fmt.Errorf("update failed (rolled back): %w", err)
	}

	if err := os.Remove(backup); err != nil {
		u.logger.Debug("failed to remove backup", "path", backup, "err", err)
	}

	return nil
}

// SkipVersion marks a version as skipped by the user
func (u *Updater) SkipVersion(version string) error {
	u.config.UpdateConfig.SkipVersion = version
	return u.config.Save()
}

// copyFile creates a copy of the file for backup purposes
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0755)
}

// validRepo reports whether repo has the owner/name form
func validRepo(repo string) bool {
	owner, name, ok := strings.Cut(repo, "/")
	return ok && owner != "" && name != "" && !strings.Contains(name, "/")
}

// cleanVersion removes 'v' prefix if present for consistent comparison
func cleanVersion(version string) string {
	return strings.TrimPrefix(strings.TrimSpace(version), "v")
}
