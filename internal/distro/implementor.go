package distro

import "strings"

// refiner narrows an implementor match using secondary release keys
type refiner func(release map[string]string) Distribution

type implementorEntry struct {
	base   Distribution
	refine refiner
}

// implementors maps the IMPLEMENTOR value of a release file to a
// distribution. Keys are matched exactly, after quote stripping.
var implementors = map[string]implementorEntry{
	"AdoptOpenJDK":       {AOJ, refineAdopt},
	"Alibaba":            {Dragonwell, nil},
	"Amazon.com Inc.":    {Corretto, nil},
	"Azul Systems, Inc.": {NotFound, refineAzul},
	"mandrel":            {Mandrel, nil},
	"Microsoft":          {Microsoft, nil},
	"ojdkbuild":          {OJDKBuild, nil},
	"Oracle Corporation": {OracleOpenJDK, nil},
	"Red Hat, Inc.":      {RedHat, nil},
	"SAP SE":             {SAPMachine, nil},
	"OpenLogic":          {OpenLogic, nil},
	"JetBrains s.r.o.":   {JetBrains, nil},
	"Eclipse Foundation": {Temurin, nil},
	"Eclipse Adoptium":   {Temurin, nil},
	"Tencent":            {Kona, nil},
	"Bisheng":            {BiSheng, nil},
	"Debian":             {Debian, nil},
	"Ubuntu":             {Ubuntu, nil},
	"N/A":                {NotFound, nil},
}

func refineAdopt(release map[string]string) Distribution {
	switch strings.ToLower(release["JVM_VARIANT"]) {
	case "dcevm":
		return Trava
	case "openj9":
		return AOJOpenJ9
	default:
		return AOJ
	}
}

func refineAzul(release map[string]string) Distribution {
	iv := release["IMPLEMENTOR_VERSION"]
	switch {
	case strings.HasPrefix(iv, "Zulu"):
		return Zulu
	case strings.HasPrefix(iv, "Zing"), strings.HasPrefix(iv, "Prime"):
		return ZuluPrime
	default:
		return NotFound
	}
}

// FromImplementor resolves the distribution declared by a release file's
// IMPLEMENTOR key, refined by JVM_VARIANT or IMPLEMENTOR_VERSION where the
// implementor publishes more than one build. The second result is false when
// the implementor is absent, unknown or not specific enough.
func FromImplementor(release map[string]string) (Distribution, bool) {
	implementor, ok := release["IMPLEMENTOR"]
	if !ok {
		return NotFound, false
	}
	entry, ok := implementors[implementor]
	if !ok {
		return NotFound, false
	}
	d := entry.base
	if entry.refine != nil {
		d = entry.refine(release)
	}
	return d, d.Found()
}

// FromToolchainImplementor resolves the GraalVM flavour named by a release
// file of a build whose banner only says "graalvm". Gluon's VENDOR key wins
// over the implementor.
func FromToolchainImplementor(release map[string]string) Distribution {
	if strings.EqualFold(release["VENDOR"], "gluon") {
		return GluonGraalVM
	}
	if release["IMPLEMENTOR"] == "GraalVM Enterprise" {
		return GraalVMEE
	}
	return GraalVMCE
}
