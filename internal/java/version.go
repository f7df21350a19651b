package java

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrUnparseableVersion is returned when a version token does not follow the
// runtime version grammar
var ErrUnparseableVersion = errors.New("unparseable version")

// legacyPrefix matches the pre-9 scheme where the major version hides behind "1."
var legacyPrefix = regexp.MustCompile(`^1\.([2-8])(\D|$)`)

// Version is a structured, comparable Java runtime version
type Version struct {
	Major int    `json:"major"`
	Minor int    `json:"minor"`
	Patch int    `json:"patch"`
	Pre   string `json:"pre,omitempty"`   // e.g. "ea"
	Build string `json:"build,omitempty"` // e.g. "12-LTS"
}

// ParseVersion parses a token such as "21.0.1+12", "22-ea" or "17.0.9.1+1".
// Numeric segments beyond the third are kept in front of the build part.
func ParseVersion(text string) (Version, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Version{}, fmt.Errorf("%w: empty", ErrUnparseableVersion)
	}
	text = strings.ReplaceAll(text, "_", ".")

	core, build, _ := strings.Cut(text, "+")
	core, pre, _ := strings.Cut(core, "-")

	segments := strings.Split(core, ".")
	nums := make([]int, 0, 3)
	for _, s := range segments {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrUnparseableVersion, text)
		}
		nums = append(nums, n)
	}
	if len(nums) > 3 {
		extra := make([]string, 0, len(nums)-3)
		for _, n := range nums[3:] {
			extra = append(extra, strconv.Itoa(n))
		}
		if build != "" {
			extra = append(extra, build)
		}
		build = strings.Join(extra, ".")
		nums = nums[:3]
	}
	for len(nums) < 3 {
		nums = append(nums, 0)
	}

	v := Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Pre: pre, Build: build}
	if _, err := semver.NewVersion(v.String()); err != nil {
		return Version{}, fmt.Errorf("%w: %q: %v", ErrUnparseableVersion, text, err)
	}
	return v, nil
}

// ParseBannerVersion parses a version token as printed by a runtime banner,
// rewriting the legacy "1.8.0_392" scheme to "8.0.392" first
func ParseBannerVersion(token string) (Version, error) {
	token = strings.TrimSpace(token)
	if legacyPrefix.MatchString(token) {
		token = token[2:]
	}
	return ParseVersion(token)
}

// ExtractQuoted returns the text between the first and the last double quote
// of a banner line
func ExtractQuoted(line string) (string, bool) {
	first := strings.Index(line, `"`)
	last := strings.LastIndex(line, `"`)
	if first < 0 || last <= first {
		return "", false
	}
	return line[first+1 : last], true
}

// IsZero reports whether v is the unparsed sentinel
func (v Version) IsZero() bool {
	return v == Version{}
}

// String formats v as "major.minor.patch[-pre][+build]"
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		b.WriteString("-" + v.Pre)
	}
	if v.Build != "" {
		b.WriteString("+" + v.Build)
	}
	return b.String()
}

// Reduced formats v for display: trailing zero segments and the build part
// are dropped ("21", "17.0.9", "22-ea")
func (v Version) Reduced() string {
	s := strconv.Itoa(v.Major)
	switch {
	case v.Patch != 0:
		s = fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	case v.Minor != 0:
		s = fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	return s
}

// Compare returns -1, 0 or 1 following semantic version precedence.
// Build metadata is ignored.
func (v Version) Compare(o Version) int {
	return v.semver().Compare(o.semver())
}

func (v Version) semver() *semver.Version {
	return semver.New(uint64(v.Major), uint64(v.Minor), uint64(v.Patch), v.Pre, v.Build)
}
