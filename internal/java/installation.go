package java

import (
	"fmt"
	"strings"
	"time"

	"jfind/internal/distro"
)

// Sentinel names carried by an installation no stage could identify
const (
	UnknownName    = "Unknown build of OpenJDK"
	UnknownAPIName = "unknown"
)

// Confidence ranks how a distribution was determined. A stage never replaces
// a result of Confident or better, except the toolchain generation check which
// is Authoritative.
type Confidence int

const (
	ConfidenceUnknown Confidence = iota
	ConfidenceTentative
	ConfidenceConfident
	ConfidenceAuthoritative
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceTentative:
		return "tentative"
	case ConfidenceConfident:
		return "confident"
	case ConfidenceAuthoritative:
		return "authoritative"
	default:
		return "unknown"
	}
}

// Installation is the classification of one Java installation
type Installation struct {
	Distribution    distro.Distribution
	Name            string
	APIName         string
	Version         Version
	JDKMajor        int
	OperatingSystem string
	Architecture    string
	FXBundled       bool
	Feature         string
	BuildScope      distro.BuildScope
	Location        string // install root, parent of the bin directory
	Executable      string
	Timestamp       time.Time
	Confidence      Confidence
	Conflict        string // vendor marker that disagreed with an authoritative result
	InUse           bool
	UsedBy          []string
}

// newInstallation returns a record in its unclassified state
func newInstallation(executable, location string) Installation {
	return Installation{
		Distribution: distro.NotFound,
		Name:         UnknownName,
		APIName:      UnknownAPIName,
		Executable:   executable,
		Location:     location,
	}
}

// Unknown reports whether no stage has named the installation yet
func (i Installation) Unknown() bool {
	return i.Name == UnknownName
}

// Vendor returns the vendor of the resolved distribution
func (i Installation) Vendor() distro.Vendor {
	return i.Distribution.Vendor()
}

// Key identifies an installation by its classified fields. Two scans of the
// same tree through overlapping roots produce the same key.
func (i Installation) Key() string {
	return strings.Join([]string{
		i.Distribution.APIName(),
		i.Name,
		i.APIName,
		i.Version.String(),
		fmt.Sprint(i.JDKMajor),
		i.OperatingSystem,
		i.Architecture,
		fmt.Sprint(i.FXBundled),
		i.Feature,
		i.BuildScope.Label(),
		i.Location,
		i.Executable,
	}, "\x00")
}

// assign names the installation after a catalog entry
func (i Installation) assign(d distro.Distribution, c Confidence) Installation {
	i.Distribution = d
	i.Name = d.Name()
	i.APIName = d.APIName()
	i.BuildScope = d.BuildScope()
	i.Confidence = c
	return i
}

// withUsage returns a copy of i carrying the given usage
func (i Installation) withUsage(inUse bool, usedBy []string) Installation {
	i.InUse = inUse
	i.UsedBy = append([]string(nil), usedBy...)
	return i
}
