package java

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	goversion "github.com/hashicorp/go-version"

	"jfind/internal/distro"
)

// ErrNoOutput is returned when the version query printed fewer than the two
// banner lines the classifier needs
var ErrNoOutput = errors.New("version query produced no banner")

// LineSeparator joins the lines of a version query's output
const LineSeparator = "|"

// communityGraalBuild is the first jvmci build shipped as GraalVM Community
const communityGraalBuild = "23.0-b12"

var (
	jvmciPattern        = regexp.MustCompile(`jvmci-(\d+(?:\.\d+)*(?:-b\d+)?)`)
	buildGroupPattern   = regexp.MustCompile(`\((build\s)(.*)\)`)
	graalVersionPattern = regexp.MustCompile(`graalvm\s+(?:[a-z]+\s+)?(\d+(?:\.\d+)*(?:-[0-9a-z.]+)?)\s\(`)

	communityGraalThreshold = mustJVMCIBuild(communityGraalBuild)
)

// Features are the experimental feature keywords recognized in the VM line,
// in match order
var Features = []string{"loom", "panama", "metropolis", "valhalla", "lanai", "kona_fiber", "crac"}

// Evidence is everything known about one candidate before classification
type Evidence struct {
	Lines     []string          // banner lines of the version query
	Release   map[string]string // recognized keys of the release file
	Readme    []string          // readme lines, nil when absent
	HasReadme bool
	FXProbe   bool
	Host      SysInfo
}

func (e Evidence) line(i int) string {
	if i < len(e.Lines) {
		return e.Lines[i]
	}
	return ""
}

// stage is one step of the classification pipeline. Stages take the partial
// record by value and return the next one.
type stage func(Installation, Evidence) Installation

var pipeline = []stage{
	bannerPrefix,
	toolchainGeneration,
	vendorMarker,
	versionToken,
	releaseImplementor,
	releasePlatform,
	toolchainFallback,
	featureTag,
	bundledFX,
	hostFallback,
}

// SplitOutput splits the pipe joined output of a version query into lines
func SplitOutput(output string) []string {
	output = strings.TrimRight(output, LineSeparator)
	if strings.TrimSpace(output) == "" {
		return nil
	}
	return strings.Split(output, LineSeparator)
}

// InstallRoot returns the install root of a java executable, the parent of
// its bin directory
func InstallRoot(executable string) string {
	return filepath.Dir(filepath.Dir(executable))
}

// Classify turns the output of a version query into an installation record.
// It reads the release file, readme and JavaFX probe below the executable's
// install root. host supplies the platform when the release file does not.
func Classify(output, executable string, host SysInfo) (Installation, error) {
	lines := SplitOutput(output)
	if len(lines) < 2 {
		return Installation{}, ErrNoOutput
	}

	root := InstallRoot(executable)
	ev := Evidence{
		Lines:   lines,
		Release: ReadRelease(root),
		FXProbe: HasBundledFX(root),
		Host:    host,
	}
	ev.Readme, ev.HasReadme = ReadSupplementalNotes(root)

	inst := ClassifyEvidence(executable, root, ev)
	inst.Timestamp = time.Now()
	return inst, nil
}

// ClassifyEvidence runs the classification pipeline over already gathered
// evidence. It performs no I/O.
func ClassifyEvidence(executable, root string, ev Evidence) Installation {
	inst := newInstallation(executable, root)
	for _, s := range pipeline {
		inst = s(inst, ev)
	}
	return inst
}

// bannerPrefix looks at how the first banner line starts. "java" banners are
// Oracle builds unless the second line names GraalVM.
func bannerPrefix(inst Installation, ev Evidence) Installation {
	line1 := ev.line(0)
	switch {
	case strings.HasPrefix(line1, "openjdk"):
		inst.BuildScope = distro.ScopeStandardRuntime
	case strings.HasPrefix(line1, "java"):
		if strings.Contains(ev.line(1), "GraalVM") {
			return inst.assign(distro.GraalVM, ConfidenceConfident)
		}
		return inst.assign(distro.Oracle, ConfidenceTentative)
	}
	return inst
}

// toolchainGeneration reclassifies any build whose jvmci build number is at
// or above the first community release, whatever came before
func toolchainGeneration(inst Installation, ev Evidence) Installation {
	m := jvmciPattern.FindStringSubmatch(ev.line(1))
	if m == nil {
		return inst
	}
	build, err := parseJVMCIBuild(m[1])
	if err != nil || build.LessThan(communityGraalThreshold) {
		return inst
	}
	return inst.assign(distro.GraalVMCommunity, ConfidenceAuthoritative)
}

// parseJVMCIBuild turns "23.0-b12" into the comparable version 23.0.12
func parseJVMCIBuild(text string) (*goversion.Version, error) {
	release, build, hasBuild := strings.Cut(text, "-b")
	if !strings.Contains(release, ".") {
		release += ".0"
	}
	if hasBuild {
		release += "." + build
	}
	v, err := goversion.NewVersion(release)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jvmci build %q: %w", text, err)
	}
	return v, nil
}

func mustJVMCIBuild(text string) *goversion.Version {
	v, err := parseJVMCIBuild(text)
	if err != nil {
		panic(err)
	}
	return v
}

type vendorMarkerRule struct {
	tokens       []string
	dist         distro.Distribution
	refine       func(line string) distro.Distribution
	buildVersion bool // take the version from the "(build ...)" group
}

// vendorMarkers are matched against the second banner line; first match wins
var vendorMarkers = []vendorMarkerRule{
	{tokens: []string{"Zulu"}, dist: distro.Zulu, buildVersion: true},
	{tokens: []string{"Zing", "Prime"}, dist: distro.ZuluPrime, buildVersion: true},
	{tokens: []string{"Semeru"}, dist: distro.Semeru, refine: func(line string) distro.Distribution {
		if strings.Contains(line, "Certified") {
			return distro.SemeruCertified
		}
		return distro.Semeru
	}},
	{tokens: []string{"Tencent"}, dist: distro.Kona},
	{tokens: []string{"Bisheng", "BiSheng"}, dist: distro.BiSheng},
	{tokens: []string{"Temurin"}, dist: distro.Temurin},
	{tokens: []string{"Corretto"}, dist: distro.Corretto},
	{tokens: []string{"Microsoft"}, dist: distro.Microsoft},
	{tokens: []string{"SapMachine"}, dist: distro.SAPMachine},
	{tokens: []string{"JBR"}, dist: distro.JetBrains},
	{tokens: []string{"Dragonwell"}, dist: distro.Dragonwell},
}

func findVendorMarker(line string) (vendorMarkerRule, distro.Distribution, bool) {
	for _, rule := range vendorMarkers {
		for _, token := range rule.tokens {
			if !strings.Contains(line, token) {
				continue
			}
			d := rule.dist
			if rule.refine != nil {
				d = rule.refine(line)
			}
			return rule, d, true
		}
	}
	return vendorMarkerRule{}, distro.NotFound, false
}

// vendorMarker names the distribution from a vendor codename in the second
// banner line. A marker that contradicts a confident result is recorded in
// Conflict and otherwise ignored.
func vendorMarker(inst Installation, ev Evidence) Installation {
	line2 := ev.line(1)
	rule, d, ok := findVendorMarker(line2)
	if !ok {
		return inst
	}
	if inst.Confidence >= ConfidenceConfident {
		if d != inst.Distribution {
			inst.Conflict = d.APIName()
		}
		return inst
	}

	inst = inst.assign(d, ConfidenceConfident)
	if rule.buildVersion {
		if m := buildGroupPattern.FindStringSubmatch(line2); m != nil {
			if v, err := ParseBannerVersion(m[2]); err == nil {
				inst.Version = v
			}
		}
	}
	return inst
}

// versionToken parses the quoted version token of the first banner line that
// has one. A malformed token leaves the zero version in place.
func versionToken(inst Installation, ev Evidence) Installation {
	if !inst.Version.IsZero() {
		return inst
	}
	for _, line := range []string{ev.line(0), ev.line(1)} {
		token, ok := ExtractQuoted(line)
		if !ok {
			continue
		}
		if v, err := ParseBannerVersion(token); err == nil {
			inst.Version = v
		}
		return inst
	}
	return inst
}

// releaseImplementor names still unknown installations from the release
// file's IMPLEMENTOR and reads the bundled module list
func releaseImplementor(inst Installation, ev Evidence) Installation {
	if inst.Unknown() {
		if d, ok := distro.FromImplementor(ev.Release); ok {
			inst = inst.assign(d, ConfidenceConfident)
			if d == distro.Mandrel {
				inst = withJavaVersion(inst, ev.Release)
			}
		}
	}
	if !inst.FXBundled && strings.Contains(ev.Release[KeyModules], "javafx") {
		inst.FXBundled = true
	}
	return inst
}

// releasePlatform takes OS and architecture from the release file
func releasePlatform(inst Installation, ev Evidence) Installation {
	if arch := ev.Release[KeyOSArch]; arch != "" {
		inst.Architecture = strings.ToLower(arch)
	}
	switch strings.ToLower(ev.Release[KeyOSName]) {
	case "darwin":
		inst.OperatingSystem = OSMacOS
	case "linux":
		inst.OperatingSystem = OSLinux
	case "windows":
		inst.OperatingSystem = OSWindows
	}
	return inst
}

// toolchainFallback inspects the VM line and readme of installations nothing
// else could name
func toolchainFallback(inst Installation, ev Evidence) Installation {
	if !inst.Unknown() || len(ev.Lines) < 3 {
		return inst
	}
	line3 := strings.ToLower(ev.line(2))

	if ev.HasReadme {
		switch {
		case anyLineContains(ev.Readme, "liberica native image kit"):
			jdk := inst.Version
			inst = inst.assign(distro.LibericaNative, ConfidenceConfident)
			inst = withToolchainVersion(inst, jdk, line3, ev.Release)
		case anyLineContains(ev.Readme, "liberica"):
			inst = inst.assign(distro.Liberica, ConfidenceConfident)
		}
		return inst
	}

	switch {
	case strings.Contains(line3, "graalvm"):
		jdk := inst.Version
		d := distro.FromToolchainImplementor(ev.Release)
		inst = inst.assign(d, ConfidenceConfident)
		if d != distro.GluonGraalVM && jdk.Major >= 8 {
			inst.APIName = fmt.Sprintf("%s%d", d.APIName(), jdk.Major)
		}
		inst = withToolchainVersion(inst, jdk, line3, ev.Release)
	case strings.Contains(line3, "microsoft"):
		inst = inst.assign(distro.Microsoft, ConfidenceConfident)
	case strings.Contains(line3, "corretto"):
		inst = inst.assign(distro.Corretto, ConfidenceConfident)
	case strings.Contains(line3, "temurin"):
		inst = inst.assign(distro.Temurin, ConfidenceConfident)
	}
	return inst
}

// withToolchainVersion replaces the version with the toolchain's own and keeps
// the runtime's major in JDKMajor
func withToolchainVersion(inst Installation, jdk Version, line3 string, release map[string]string) Installation {
	if m := graalVersionPattern.FindStringSubmatch(line3); m != nil {
		if v, err := ParseVersion(m[1]); err == nil {
			inst.Version = v
		}
	}
	inst.JDKMajor = jdk.Major
	return withJavaVersion(inst, release)
}

// withJavaVersion sets JDKMajor from the release file's JAVA_VERSION
func withJavaVersion(inst Installation, release map[string]string) Installation {
	if v, err := ParseBannerVersion(release[KeyJavaVersion]); err == nil {
		inst.JDKMajor = v.Major
	}
	return inst
}

func anyLineContains(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(strings.ToLower(l), substr) {
			return true
		}
	}
	return false
}

// featureTag records the first experimental feature named in the VM line
func featureTag(inst Installation, ev Evidence) Installation {
	if len(ev.Lines) < 3 {
		return inst
	}
	line3 := strings.ToLower(ev.line(2))
	for _, f := range Features {
		if strings.Contains(line3, f) {
			inst.Feature = f
			break
		}
	}
	return inst
}

// bundledFX can only turn the JavaFX flag on
func bundledFX(inst Installation, ev Evidence) Installation {
	inst.FXBundled = inst.FXBundled || ev.FXProbe
	return inst
}

// hostFallback fills whatever is still empty from the host platform
func hostFallback(inst Installation, ev Evidence) Installation {
	if inst.Architecture == "" {
		inst.Architecture = ev.Host.Architecture
	}
	if inst.OperatingSystem == "" {
		inst.OperatingSystem = ev.Host.OperatingSystem
	}
	if inst.JDKMajor == 0 {
		inst.JDKMajor = inst.Version.Major
	}
	if inst.BuildScope == distro.ScopeNotFound {
		inst.BuildScope = distro.ScopeStandardRuntime
	}
	return inst
}
