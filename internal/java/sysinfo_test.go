package java

import (
	"path/filepath"
	"testing"
)

func TestDetectOperatingSystem(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	alpine := writeFile(t, filepath.Join(dir, "alpine"), "NAME=\"Alpine Linux\"\nID=alpine\nVERSION_ID=3.19.0\n")
	debian := writeFile(t, filepath.Join(dir, "debian"), "PRETTY_NAME=\"Debian GNU/Linux 12 (bookworm)\"\nNAME=\"Debian GNU/Linux\"\nID=debian\n")
	missing := filepath.Join(dir, "missing")

	tests := []struct {
		goos, osRelease, want string
	}{
		{"windows", missing, OSWindows},
		{"darwin", missing, OSMacOS},
		{"linux", alpine, OSAlpineLinux},
		{"linux", debian, OSLinux},
		{"linux", missing, OSLinux},
		{"illumos", missing, OSSolaris},
		{"freebsd", missing, "freebsd"},
	}
	for _, tt := range tests {
		if got := detectOperatingSystem(tt.goos, tt.osRelease); got != tt.want {
			t.Errorf("detectOperatingSystem(%q, %q) = %q, want %q", tt.goos, filepath.Base(tt.osRelease), got, tt.want)
		}
	}
}

func TestCanonicalArch(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"amd64":   "amd64",
		"arm64":   "aarch64",
		"386":     "x86",
		"arm":     "arm",
		"ppc64le": "ppc64le",
		"s390x":   "s390x",
		"riscv64": "riscv64",
	}
	for in, want := range tests {
		if got := canonicalArch(in); got != want {
			t.Errorf("canonicalArch(%q) = %q, want %q", in, got, want)
		}
	}
	if bitness("386") != 32 || bitness("amd64") != 64 {
		t.Error("unexpected bitness")
	}
}

func TestDetectSysInfo(t *testing.T) {
	t.Parallel()

	info := DetectSysInfo()
	if info.OperatingSystem == "" || info.Architecture == "" {
		t.Errorf("DetectSysInfo() = %+v, want populated fields", info)
	}
	if info.OperatingMode != ModeNative && info.OperatingMode != ModeEmulated {
		t.Errorf("OperatingMode = %q", info.OperatingMode)
	}
}
