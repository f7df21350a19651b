package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"jfind/internal/config"
	"jfind/internal/distro"
	"jfind/internal/java"

	"github.com/charmbracelet/log"
)

const fakeTemurin = `#!/bin/sh
echo 'openjdk version "21.0.1" 2023-10-17' >&2
echo 'OpenJDK Runtime Environment Temurin-21.0.1+12 (build 21.0.1+12-LTS)' >&2
echo 'OpenJDK 64-Bit Server VM Temurin-21.0.1+12 (build 21.0.1+12-LTS, mixed mode, sharing)' >&2
`

func TestResolveRoots(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	extra := filepath.Join(base, "extra")
	if err := os.MkdirAll(extra, 0o755); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(base, "missing")

	t.Run("explicit", func(t *testing.T) {
		t.Parallel()
		got, err := resolveRoots([]string{base, base + string(filepath.Separator)}, "", nil)
		if err != nil {
			t.Fatalf("resolveRoots() error = %v", err)
		}
		if len(got) != 1 || got[0] != base {
			t.Errorf("resolveRoots() = %v, want [%s]", got, base)
		}
	})

	t.Run("explicit missing", func(t *testing.T) {
		t.Parallel()
		_, err := resolveRoots([]string{missing}, "", nil)
		if !errors.Is(err, errPathNotFound) {
			t.Errorf("resolveRoots() error = %v, want errPathNotFound", err)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		got, err := resolveRoots(nil, base, []string{extra, missing, base})
		if err != nil {
			t.Fatalf("resolveRoots() error = %v", err)
		}
		if len(got) != 2 || got[0] != base || got[1] != extra {
			t.Errorf("resolveRoots() = %v, want [%s %s]", got, base, extra)
		}
	})

	t.Run("nothing to scan", func(t *testing.T) {
		t.Parallel()
		got, err := resolveRoots(nil, missing, nil)
		if err != nil || len(got) != 0 {
			t.Errorf("resolveRoots() = %v, %v, want no roots", got, err)
		}
	})
}

func TestScanOptionsApplyConfig(t *testing.T) {
	t.Parallel()

	opts := &scanOptions{}
	cmd := newScanCmd(&app{})
	if err := cmd.ParseFlags([]string{"--workers", "3"}); err != nil {
		t.Fatal(err)
	}
	opts.workers = 3

	cfg := config.Default()
	cfg.OutputFormat = "csv"
	cfg.TimeoutSeconds = 9
	cfg.Workers = 7
	opts.applyConfig(cmd, cfg)

	if opts.output != "csv" {
		t.Errorf("output = %q, want csv from config", opts.output)
	}
	if opts.timeout != 9*time.Second {
		t.Errorf("timeout = %v, want 9s from config", opts.timeout)
	}
	if opts.workers != 3 {
		t.Errorf("workers = %d, want the flag value 3", opts.workers)
	}
}

func TestInstallationFilter(t *testing.T) {
	t.Parallel()

	installations := []java.Installation{
		{Name: "temurin", Distribution: distro.Temurin},
		{Name: "corretto", Distribution: distro.Corretto},
		{Name: "zulu", Distribution: distro.Zulu},
		{Name: "azure", Distribution: distro.AzureZulu},
	}

	tests := []struct {
		name         string
		distribution string
		vendor       string
		want         []string
	}{
		{"no filter", "", "", []string{"temurin", "corretto", "zulu", "azure"}},
		{"distribution", "corretto", "", []string{"corretto"}},
		{"distribution alias", "Zulu Core", "", []string{"zulu"}},
		{"vendor", "", "azul", []string{"zulu", "azure"}},
		{"both", "zulu", "Azul", []string{"zulu"}},
		{"disjoint", "temurin", "amazon", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f, err := newInstallationFilter(tt.distribution, tt.vendor)
			if err != nil {
				t.Fatalf("newInstallationFilter() error = %v", err)
			}
			var got []string
			for _, inst := range f.apply(installations) {
				got = append(got, inst.Name)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInstallationFilterUnknown(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct{ distribution, vendor string }{
		{"acme", ""},
		{"", "acme"},
		{"temurin", "nobody"},
	} {
		if _, err := newInstallationFilter(tt.distribution, tt.vendor); !errors.Is(err, errUnknownFilter) {
			t.Errorf("newInstallationFilter(%q, %q) error = %v, want errUnknownFilter", tt.distribution, tt.vendor, err)
		}
	}
}

func TestAbsJavaHome(t *testing.T) {
	t.Parallel()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	got, err := absJavaHome(filepath.Join("jdks", "temurin-21"))
	if err != nil {
		t.Fatalf("absJavaHome() error = %v", err)
	}
	if want := filepath.Join(wd, "jdks", "temurin-21"); got != want {
		t.Errorf("absJavaHome() = %q, want %q", got, want)
	}

	abs := filepath.Join(wd, "jdk")
	if got, _ := absJavaHome(abs + string(filepath.Separator)); got != abs {
		t.Errorf("absJavaHome(%q) = %q, want it cleaned", abs, got)
	}
}

func newTestApp() *app {
	return &app{logger: log.New(io.Discard)}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(newTestApp())
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestScanCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake launcher is a shell script")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	base := t.TempDir()
	launcher := filepath.Join(base, "temurin-21", "bin", "java")
	if err := os.MkdirAll(filepath.Dir(launcher), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(launcher, []byte(fakeTemurin), 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := runRoot(t, "scan", base, "--no-usage", "-o", "json")
	if err != nil {
		t.Fatalf("scan error = %v", err)
	}

	var run struct {
		SearchPaths   []string `json:"search_paths"`
		Distributions []struct {
			APIName string `json:"api_name"`
			Version string `json:"version"`
		} `json:"distributions"`
	}
	if err := json.Unmarshal([]byte(out), &run); err != nil {
		t.Fatalf("invalid json output %q: %v", out, err)
	}
	if len(run.Distributions) != 1 {
		t.Fatalf("got %d distributions, want 1: %s", len(run.Distributions), out)
	}
	if run.Distributions[0].APIName != "temurin" || run.Distributions[0].Version != "21.0.1" {
		t.Errorf("distribution = %+v", run.Distributions[0])
	}

	out, err = runRoot(t, "scan", base, "--no-usage", "-o", "json", "--vendor", "eclipse")
	if err != nil || !strings.Contains(out, `"temurin"`) {
		t.Errorf("scan --vendor eclipse = %q, %v, want the temurin build", out, err)
	}

	out, err = runRoot(t, "scan", base, "--no-usage", "-o", "table", "--distribution", "corretto")
	if err != nil || !strings.Contains(out, "match the given filter") {
		t.Errorf("scan --distribution corretto = %q, %v, want no match", out, err)
	}

	if _, err := runRoot(t, "scan", base, "--no-usage", "--distribution", "acme"); !errors.Is(err, errUnknownFilter) {
		t.Errorf("scan --distribution acme error = %v, want errUnknownFilter", err)
	}
}

func TestScanCommandEmpty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	base := t.TempDir()

	out, err := runRoot(t, base, "--no-usage", "-o", "csv")
	if err != nil {
		t.Fatalf("scan error = %v", err)
	}
	if out != "" {
		t.Errorf("machine format printed %q for an empty result", out)
	}

	out, err = runRoot(t, base, "--no-usage", "-o", "table")
	if err != nil {
		t.Fatalf("scan error = %v", err)
	}
	if !strings.Contains(out, "No Java installations found") {
		t.Errorf("table output %q lacks the warning", out)
	}
}

func TestScanCommandMissingPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := runRoot(t, filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, errPathNotFound) {
		t.Errorf("error = %v, want errPathNotFound", err)
	}
}

func TestPathsCommands(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	dir := t.TempDir()

	if _, err := runRoot(t, "paths", "add", dir, "--yes"); err != nil {
		t.Fatalf("paths add error = %v", err)
	}
	cfg, err := config.LoadFrom(filepath.Join(configHome, "jfind", "jfind.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.HasSearchPath(dir) {
		t.Fatalf("search paths = %v, want %s", cfg.SearchPaths, dir)
	}

	out, err := runRoot(t, "paths", "list")
	if err != nil {
		t.Fatalf("paths list error = %v", err)
	}
	if !strings.Contains(out, dir) {
		t.Errorf("paths list output lacks %s:\n%s", dir, out)
	}

	if _, err := runRoot(t, "paths", "remove", dir, "--yes"); err != nil {
		t.Fatalf("paths remove error = %v", err)
	}
	cfg, err = config.LoadFrom(filepath.Join(configHome, "jfind", "jfind.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HasSearchPath(dir) {
		t.Errorf("search path %s was not removed", dir)
	}
}
