package java

import (
	"runtime"
	"strings"

	"gopkg.in/ini.v1"
)

// Canonical operating system names
const (
	OSWindows     = "windows"
	OSMacOS       = "macos"
	OSLinux       = "linux"
	OSAlpineLinux = "alpine_linux"
	OSSolaris     = "solaris"
)

// Operating modes of the current process
const (
	ModeNative   = "native"
	ModeEmulated = "emulated"
)

// osReleasePath is where Linux distributions describe themselves
var osReleasePath = "/etc/os-release"

// SysInfo describes the host platform. It is computed once per discovery run
// and shared read-only by every classification job.
type SysInfo struct {
	OperatingSystem string `json:"operating_system" yaml:"operating_system" toml:"operating_system"`
	Architecture    string `json:"architecture" yaml:"architecture" toml:"architecture"`
	Bitness         int    `json:"bit" yaml:"bit" toml:"bit"`
	OperatingMode   string `json:"operating_mode" yaml:"operating_mode" toml:"operating_mode"`
}

// DetectSysInfo inspects the running host
func DetectSysInfo() SysInfo {
	mode := ModeNative
	if translated() {
		mode = ModeEmulated
	}
	return SysInfo{
		OperatingSystem: detectOperatingSystem(runtime.GOOS, osReleasePath),
		Architecture:    canonicalArch(runtime.GOARCH),
		Bitness:         bitness(runtime.GOARCH),
		OperatingMode:   mode,
	}
}

// JavaFileName returns the name of the java launcher on the host
func JavaFileName() string {
	if runtime.GOOS == "windows" {
		return "java.exe"
	}
	return "java"
}

func detectOperatingSystem(goos, osRelease string) string {
	switch goos {
	case "windows":
		return OSWindows
	case "darwin":
		return OSMacOS
	case "linux":
		if isAlpine(osRelease) {
			return OSAlpineLinux
		}
		return OSLinux
	case "solaris", "illumos":
		return OSSolaris
	default:
		return goos
	}
}

func isAlpine(path string) bool {
	cfg, err := ini.LoadSources(releaseLoadOptions, path)
	if err != nil {
		return false
	}
	section := cfg.Section(ini.DefaultSection)
	if strings.EqualFold(section.Key("ID").String(), "alpine") {
		return true
	}
	return strings.Contains(strings.ToLower(section.Key("NAME").String()), "alpine")
}

// canonicalArch maps a GOARCH value to the lowercase names used in reports
func canonicalArch(goarch string) string {
	switch goarch {
	case "arm64":
		return "aarch64"
	case "386":
		return "x86"
	default:
		return goarch
	}
}

func bitness(goarch string) int {
	switch goarch {
	case "386", "arm", "mips", "mipsle", "wasm":
		return 32
	default:
		return 64
	}
}
