// Package report renders the result of a discovery run in the formats the
// CLI offers.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"jfind/internal/java"

	"github.com/google/uuid"
)

// Format selects a renderer
type Format string

const (
	FormatJSON   Format = "json"
	FormatPretty Format = "pretty"
	FormatCSV    Format = "csv"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatTable  Format = "table"
)

var formats = []Format{FormatJSON, FormatPretty, FormatCSV, FormatYAML, FormatTOML, FormatTable}

// Formats lists the accepted format names
func Formats() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

// ParseFormat resolves a format name case-insensitively
func ParseFormat(name string) (Format, error) {
	for _, f := range formats {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want one of %s)", name, strings.Join(Formats(), ", "))
}

// Machine reports whether the format is meant for other programs
func (f Format) Machine() bool { return f != FormatTable }

// Distribution is one classified installation as reported
type Distribution struct {
	Vendor          string   `json:"vendor" yaml:"vendor" toml:"vendor"`
	Name            string   `json:"name" yaml:"name" toml:"name"`
	APIName         string   `json:"api_name" yaml:"api_name" toml:"api_name"`
	Version         string   `json:"version" yaml:"version" toml:"version"`
	JDKMajor        int      `json:"jdk_major_version" yaml:"jdk_major_version" toml:"jdk_major_version"`
	Timestamp       int64    `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
	Path            string   `json:"path" yaml:"path" toml:"path"`
	BuildScope      string   `json:"build_scope" yaml:"build_scope" toml:"build_scope"`
	Architecture    string   `json:"architecture" yaml:"architecture" toml:"architecture"`
	OperatingSystem string   `json:"operating_system" yaml:"operating_system" toml:"operating_system"`
	FXBundled       bool     `json:"fx_bundled" yaml:"fx_bundled" toml:"fx_bundled"`
	Feature         string   `json:"feature" yaml:"feature" toml:"feature"`
	InUse           bool     `json:"in_use" yaml:"in_use" toml:"in_use"`
	UsedBy          []string `json:"used_by" yaml:"used_by" toml:"used_by"`
}

// Run is the envelope of one discovery run
type Run struct {
	ID            string         `json:"run_id" yaml:"run_id" toml:"run_id"`
	Timestamp     int64          `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
	SearchPaths   []string       `json:"search_paths" yaml:"search_paths" toml:"search_paths"`
	SysInfo       java.SysInfo   `json:"sysinfo" yaml:"sysinfo" toml:"sysinfo"`
	Distributions []Distribution `json:"distributions" yaml:"distributions" toml:"distributions"`
}

// NewRun builds the envelope for installations found under searchPaths.
// Distributions are ordered by path so repeated runs render identically.
func NewRun(searchPaths []string, sys java.SysInfo, installations []java.Installation, now time.Time) Run {
	dists := make([]Distribution, 0, len(installations))
	for _, inst := range installations {
		dists = append(dists, FromInstallation(inst))
	}
	sort.SliceStable(dists, func(i, j int) bool { return dists[i].Path < dists[j].Path })

	return Run{
		ID:            uuid.NewString(),
		Timestamp:     now.Unix(),
		SearchPaths:   append([]string{}, searchPaths...),
		SysInfo:       sys,
		Distributions: dists,
	}
}

// FromInstallation converts a classification record to its reported form
func FromInstallation(inst java.Installation) Distribution {
	var ts int64
	if !inst.Timestamp.IsZero() {
		ts = inst.Timestamp.Unix()
	}
	return Distribution{
		Vendor:          inst.Vendor().Name(),
		Name:            inst.Name,
		APIName:         inst.APIName,
		Version:         inst.Version.Reduced(),
		JDKMajor:        inst.JDKMajor,
		Timestamp:       ts,
		Path:            inst.Location,
		BuildScope:      inst.BuildScope.Label(),
		Architecture:    inst.Architecture,
		OperatingSystem: inst.OperatingSystem,
		FXBundled:       inst.FXBundled,
		Feature:         inst.Feature,
		InUse:           inst.InUse,
		UsedBy:          append([]string{}, inst.UsedBy...),
	}
}
