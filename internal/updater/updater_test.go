package updater

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"jfind/internal/config"

	"github.com/charmbracelet/log"
)

func newTestUpdater(cfg *config.Config, version string) *Updater {
	return &Updater{
		config:         cfg,
		currentVersion: cleanVersion(version),
		repo:           "example/jfind",
		logger:         log.New(io.Discard),
		out:            &bytes.Buffer{},
	}
}

func TestShouldCheckForUpdate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		update  config.UpdateConfig
		version string
		want    bool
	}{
		{"never checked", config.UpdateConfig{Enabled: true, AutoCheck: true}, "v1.0.0", true},
		{"disabled", config.UpdateConfig{Enabled: false, AutoCheck: true}, "v1.0.0", false},
		{"auto check off", config.UpdateConfig{Enabled: true, AutoCheck: false}, "v1.0.0", false},
		{"checked recently", config.UpdateConfig{Enabled: true, AutoCheck: true, LastCheck: time.Now().Add(-time.Hour)}, "v1.0.0", false},
		{"interval elapsed", config.UpdateConfig{Enabled: true, AutoCheck: true, LastCheck: time.Now().Add(-2 * CheckInterval)}, "v1.0.0", true},
		{"dev build", config.UpdateConfig{Enabled: true, AutoCheck: true}, "dev", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u := newTestUpdater(&config.Config{UpdateConfig: tt.update}, tt.version)
			if got := u.ShouldCheckForUpdate(); got != tt.want {
				t.Errorf("ShouldCheckForUpdate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdaterWithoutRepository(t *testing.T) {
	t.Parallel()

	for _, repo := range []string{"", "jfind", "/jfind", "example/", "a/b/c"} {
		t.Run(repo, func(t *testing.T) {
			t.Parallel()
			u := newTestUpdater(&config.Config{UpdateConfig: config.UpdateConfig{Enabled: true, AutoCheck: true}}, "v1.0.0")
			u.repo = repo

			if u.ShouldCheckForUpdate() {
				t.Error("ShouldCheckForUpdate() = true without a usable repository")
			}
			if _, err := u.CheckForUpdate(context.Background()); !errors.Is(err, ErrNoRepository) {
				t.Errorf("CheckForUpdate() error = %v, want ErrNoRepository", err)
			}
			if got := u.ReleasesURL(); got != "" {
				t.Errorf("ReleasesURL() = %q, want empty", got)
			}
		})
	}
}

func TestReleasesURL(t *testing.T) {
	t.Parallel()

	u := newTestUpdater(&config.Config{}, "v1.0.0")
	if got, want := u.ReleasesURL(), "https://github.com/example/jfind/releases"; got != want {
		t.Errorf("ReleasesURL() = %q, want %q", got, want)
	}
}

func TestTruncateChangelog(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 40) + "\n" + strings.Repeat("tail ", 40)

	tests := []struct {
		name  string
		input string
		check func(string) bool
	}{
		{"empty", "  ", func(s string) bool { return s == "See release notes on GitHub for details." }},
		{"short", "Fixed a bug", func(s string) bool { return s == "Fixed a bug" }},
		{"long", long, func(s string) bool {
			return strings.HasSuffix(s, "...") && len(s) <= 103 && !strings.Contains(s, "tail")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := truncateChangelog(tt.input, 100); !tt.check(got) {
				t.Errorf("truncateChangelog() = %q", got)
			}
		})
	}
}

func TestCleanVersion(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]string{"v1.2.3": "1.2.3", "1.2.3": "1.2.3", " v0.1.0 ": "0.1.0"} {
		if got := cleanVersion(input); got != want {
			t.Errorf("cleanVersion(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestShowAlreadyUpToDate(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	u := newTestUpdater(&config.Config{}, "v2.0.0")
	u.out = &out
	u.ShowAlreadyUpToDate()
	if !strings.Contains(out.String(), "2.0.0") {
		t.Errorf("output %q does not mention the version", out.String())
	}
}

func TestRenderChangelog(t *testing.T) {
	t.Parallel()

	got := renderChangelog("## Changes\n\n- Fixed **vendor** detection")
	for _, want := range []string{"Changes", "Fixed", "vendor"} {
		if !strings.Contains(got, want) {
			t.Errorf("renderChangelog() = %q, missing %q", got, want)
		}
	}
}
