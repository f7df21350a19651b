// Package distro holds the catalog of known Java distributions and the tables
// that map vendor supplied spellings onto it.
package distro

// Distribution identifies one entry of the distribution catalog
type Distribution int

const (
	NotFound Distribution = iota
	None
	AOJ
	AOJOpenJ9
	AzureZulu
	BiSheng
	Corretto
	Debian
	Dragonwell
	GluonGraalVM
	GraalVM
	GraalVMCommunity
	GraalVMCE
	GraalVMEE
	JetBrains
	Kona
	Liberica
	LibericaNative
	Mandrel
	Microsoft
	OJDKBuild
	OpenLogic
	OracleOpenJDK
	Oracle
	RedHat
	SAPMachine
	Semeru
	SemeruCertified
	Temurin
	Trava
	Ubuntu
	Zulu
	ZuluPrime
)

// Info is the immutable catalog entry of a distribution
type Info struct {
	Name       string
	APIName    string
	Vendor     Vendor
	BuildScope BuildScope
}

var catalog = map[Distribution]Info{
	NotFound:         {"", "", VendorNone, ScopeNotFound},
	None:             {"-", "", VendorNone, ScopeNotFound},
	AOJ:              {"AOJ", "aoj", Community, ScopeStandardRuntime},
	AOJOpenJ9:        {"AOJ OpenJ9", "aoj_openj9", Community, ScopeStandardRuntime},
	AzureZulu:        {"Azure Zulu", "azure_zulu", Azul, ScopeStandardRuntime},
	BiSheng:          {"Bi Sheng", "bisheng", Huawei, ScopeStandardRuntime},
	Corretto:         {"Corretto", "corretto", Amazon, ScopeStandardRuntime},
	Debian:           {"Debian", "debian", Community, ScopeStandardRuntime},
	Dragonwell:       {"Dragonwell", "dragonwell", Alibaba, ScopeStandardRuntime},
	GluonGraalVM:     {"Gluon GraalVM", "gluon_graalvm", Gluon, ScopeNativeImage},
	GraalVM:          {"GraalVM", "graalvm", OracleVendor, ScopeNativeImage},
	GraalVMCommunity: {"GraalVM Community", "graalvm_community", OracleVendor, ScopeNativeImage},
	GraalVMCE:        {"Graal VM CE", "graalvm_ce", OracleVendor, ScopeNativeImage},
	GraalVMEE:        {"Graal VM EE", "graalvm_ee", OracleVendor, ScopeNativeImage},
	JetBrains:        {"JetBrains", "jetbrains", JetBrainsVendor, ScopeStandardRuntime},
	Kona:             {"Kona", "kona", Tencent, ScopeStandardRuntime},
	Liberica:         {"Liberica", "liberica", BellSoft, ScopeStandardRuntime},
	LibericaNative:   {"Liberica Native", "liberica_native", BellSoft, ScopeNativeImage},
	Mandrel:          {"Mandrel", "mandrel", RedHatVendor, ScopeNativeImage},
	Microsoft:        {"Microsoft", "microsoft", MicrosoftVendor, ScopeStandardRuntime},
	OJDKBuild:        {"OJDKBuild", "ojdk_build", Community, ScopeStandardRuntime},
	OpenLogic:        {"OpenLogic", "openlogic", OpenLogicVendor, ScopeStandardRuntime},
	OracleOpenJDK:    {"Oracle OpenJDK", "oracle_open_jdk", OracleVendor, ScopeStandardRuntime},
	Oracle:           {"Oracle", "oracle", OracleVendor, ScopeStandardRuntime},
	RedHat:           {"Red Hat", "redhat", RedHatVendor, ScopeStandardRuntime},
	SAPMachine:       {"SAP Machine", "sap_machine", SAP, ScopeStandardRuntime},
	Semeru:           {"Semeru", "semeru", IBM, ScopeStandardRuntime},
	SemeruCertified:  {"Semeru certified", "semeru_certified", IBM, ScopeStandardRuntime},
	Temurin:          {"Temurin", "temurin", Eclipse, ScopeStandardRuntime},
	Trava:            {"Trava", "trava", Community, ScopeStandardRuntime},
	Ubuntu:           {"Ubuntu", "ubuntu", Community, ScopeStandardRuntime},
	Zulu:             {"Zulu", "zulu", Azul, ScopeStandardRuntime},
	ZuluPrime:        {"ZuluPrime", "zulu_prime", Azul, ScopeStandardRuntime},
}

// All returns every real catalog entry, sentinels excluded
func All() []Distribution {
	out := make([]Distribution, 0, len(catalog))
	for d := AOJ; d <= ZuluPrime; d++ {
		out = append(out, d)
	}
	return out
}

// Info returns the catalog entry of d
func (d Distribution) Info() Info { return catalog[d] }

// Name returns the display name
func (d Distribution) Name() string { return catalog[d].Name }

// APIName returns the machine readable name
func (d Distribution) APIName() string { return catalog[d].APIName }

// Vendor returns the publishing vendor
func (d Distribution) Vendor() Vendor { return catalog[d].Vendor }

// BuildScope returns the default build scope of the distribution
func (d Distribution) BuildScope() BuildScope { return catalog[d].BuildScope }

// Found reports whether d is a real catalog entry
func (d Distribution) Found() bool { return d != NotFound && d != None }

func (d Distribution) String() string { return d.Name() }

var distributionAliases = buildAliases(map[Distribution][]string{
	Zulu: {
		"zulu", "ZULU", "Zulu", "zulucore", "ZULUCORE", "ZuluCore",
		"zulu_core", "ZULU_CORE", "Zulu_Core", "zulu core", "ZULU CORE", "Zulu Core",
	},
	ZuluPrime: {
		"zing", "ZING", "Zing", "prime", "PRIME", "Prime", "zuluprime", "ZULUPRIME", "ZuluPrime",
		"zulu_prime", "ZULU_PRIME", "Zulu_Prime", "zulu prime", "ZULU PRIME", "Zulu Prime",
	},
	AOJ:        {"aoj", "AOJ"},
	AOJOpenJ9:  {"aoj_openj9", "AOJ_OpenJ9", "AOJ_OPENJ9", "AOJ OpenJ9", "AOJ OPENJ9", "aoj openj9"},
	AzureZulu:  {"azure_zulu", "AZURE_ZULU", "Azure_Zulu", "Azure Zulu", "azure zulu"},
	Corretto:   {"corretto", "CORRETTO", "Corretto"},
	Dragonwell: {"dragonwell", "DRAGONWELL", "Dragonwell"},
	GluonGraalVM: {
		"gluon_graalvm", "GLUON_GRAALVM", "gluongraalvm", "GLUONGRAALVM",
		"gluon graalvm", "GLUON GRAALVM", "Gluon GraalVM", "Gluon",
	},
	GraalVM: {"graalvm", "GRAALVM", "GraalVM", "Oracle GraalVM", "oracle_graalvm", "ORACLE_GRAALVM"},
	GraalVMCommunity: {
		"graalvm_community", "GRAALVM_COMMUNITY", "GraalVM_Community", "graalvm community",
		"GRAALVM COMMUNITY", "GraalVM Community",
	},
	GraalVMCE: {"graalvm_ce", "graalvmce", "GraalVM CE", "GraalVMCE", "GraalVM_CE"},
	GraalVMEE: {"graalvm_ee", "graalvmee", "GraalVM EE", "GraalVMEE", "GraalVM_EE"},
	JetBrains: {"jetbrains", "JetBrains", "JETBRAINS"},
	Liberica:  {"liberica", "LIBERICA", "Liberica"},
	LibericaNative: {
		"liberica_native", "LIBERICA_NATIVE", "libericaNative", "LibericaNative",
		"liberica native", "LIBERICA NATIVE", "Liberica Native", "Liberica NIK",
		"liberica nik", "LIBERICA NIK", "liberica_nik", "LIBERICA_NIK",
	},
	Mandrel: {"mandrel", "MANDREL", "Mandrel"},
	Microsoft: {
		"microsoft", "Microsoft", "MICROSOFT", "Microsoft OpenJDK", "Microsoft Build of OpenJDK",
	},
	OJDKBuild: {"ojdk_build", "OJDK_BUILD", "OJDK Build", "ojdk build", "ojdkbuild", "OJDKBuild"},
	OpenLogic: {
		"openlogic", "OPENLOGIC", "OpenLogic", "open_logic", "OPEN_LOGIC",
		"Open Logic", "OPEN LOGIC", "open logic",
	},
	Oracle: {"oracle", "Oracle", "ORACLE"},
	OracleOpenJDK: {
		"oracle_open_jdk", "ORACLE_OPEN_JDK", "oracle_openjdk", "ORACLE_OPENJDK", "Oracle_OpenJDK",
		"Oracle OpenJDK", "oracle openjdk", "ORACLE OPENJDK", "open_jdk", "openjdk", "OpenJDK",
		"Open JDK", "OPEN_JDK", "open-jdk", "OPEN-JDK", "Oracle-OpenJDK", "oracle-openjdk",
		"ORACLE-OPENJDK", "oracle-open-jdk", "ORACLE-OPEN-JDK",
	},
	RedHat: {
		"RedHat", "redhat", "REDHAT", "Red Hat", "red hat", "RED HAT",
		"Red_Hat", "red_hat", "red-hat", "Red-Hat", "RED-HAT",
	},
	SAPMachine: {
		"sap_machine", "sapmachine", "SAPMACHINE", "SAP_MACHINE", "SAPMachine",
		"SAP Machine", "sap-machine", "SAP-Machine", "SAP-MACHINE",
	},
	Semeru: {"semeru", "Semeru", "SEMERU"},
	SemeruCertified: {
		"semeru_certified", "SEMERU_CERTIFIED", "Semeru_Certified", "Semeru_certified",
		"semeru certified", "SEMERU CERTIFIED", "Semeru Certified", "Semeru certified",
	},
	Temurin: {"temurin", "Temurin", "TEMURIN"},
	Trava: {
		"trava", "TRAVA", "Trava", "trava_openjdk", "TRAVA_OPENJDK", "trava openjdk", "TRAVA OPENJDK",
	},
	Kona: {"kona", "KONA", "Kona"},
	BiSheng: {
		"bisheng", "BISHENG", "BiSheng", "bi_sheng", "BI_SHENG", "bi-sheng",
		"BI-SHENG", "bi sheng", "Bi Sheng", "BI SHENG",
	},
	Debian: {"debian", "DEBIAN", "Debian"},
	Ubuntu: {"ubuntu", "UBUNTU", "Ubuntu"},
})

// buildAliases inverts the per-distribution spelling lists. A spelling listed
// under two distributions is a programming error.
func buildAliases(variants map[Distribution][]string) map[string]Distribution {
	aliases := make(map[string]Distribution)
	for d, names := range variants {
		for _, name := range names {
			if prev, dup := aliases[name]; dup && prev != d {
				panic("distro: alias " + name + " maps to " + prev.APIName() + " and " + d.APIName())
			}
			aliases[name] = d
		}
	}
	return aliases
}

// NormalizeDistribution maps a known spelling of a distribution name to its
// catalog entry. Matching is exact; unknown input yields NotFound.
func NormalizeDistribution(text string) Distribution {
	if d, ok := distributionAliases[text]; ok {
		return d
	}
	return NotFound
}

// Aliases returns every spelling NormalizeDistribution accepts for d
func Aliases(d Distribution) []string {
	var out []string
	for name, target := range distributionAliases {
		if target == d {
			out = append(out, name)
		}
	}
	return out
}
