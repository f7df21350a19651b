package java

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// ReleaseFile is the name of the vendor metadata file at an install root
const ReleaseFile = "release"

// Keys of the release file the classifier looks at
const (
	KeyImplementor        = "IMPLEMENTOR"
	KeyImplementorVersion = "IMPLEMENTOR_VERSION"
	KeyJVMVariant         = "JVM_VARIANT"
	KeyOSName             = "OS_NAME"
	KeyOSArch             = "OS_ARCH"
	KeyJavaVersion        = "JAVA_VERSION"
	KeyModules            = "MODULES"
	KeyVendor             = "VENDOR"
)

var releaseKeys = []string{
	KeyImplementor, KeyImplementorVersion, KeyJVMVariant, KeyOSName,
	KeyOSArch, KeyJavaVersion, KeyModules, KeyVendor,
}

var releaseLoadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	SkipUnrecognizableLines: true,
	KeyValueDelimiters:      "=",
}

// ReadRelease loads the recognized keys of the release file below root.
// A missing, empty or malformed file yields an empty map; every call returns
// a fresh map.
func ReadRelease(root string) map[string]string {
	values := make(map[string]string)

	path := filepath.Join(root, ReleaseFile)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return values
	}

	cfg, err := ini.LoadSources(releaseLoadOptions, path)
	if err != nil {
		return values
	}

	section := cfg.Section(ini.DefaultSection)
	for _, key := range releaseKeys {
		if !section.HasKey(key) {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(section.Key(key).String()), `"`)
	}
	return values
}
