package distro

// Vendor is the company or community that publishes a distribution
type Vendor int

const (
	VendorNotFound Vendor = iota
	VendorNone
	Alibaba
	Amazon
	Azul
	BellSoft
	Community
	Eclipse
	Gluon
	Huawei
	IBM
	JetBrainsVendor
	MicrosoftVendor
	OpenLogicVendor
	OracleVendor
	RedHatVendor
	SAP
	Tencent
)

type vendorInfo struct {
	name    string
	apiName string
}

var vendors = map[Vendor]vendorInfo{
	VendorNotFound:  {"-", "-"},
	VendorNone:      {"", ""},
	Alibaba:         {"Alibaba", "alibaba"},
	Amazon:          {"Amazon", "amazon"},
	Azul:            {"Azul", "azul"},
	BellSoft:        {"BellSoft", "bellsoft"},
	Community:       {"Community", "community"},
	Eclipse:         {"Eclipse", "eclipse"},
	Gluon:           {"Gluon", "gluon"},
	Huawei:          {"Huawei", "huawei"},
	IBM:             {"IBM", "ibm"},
	JetBrainsVendor: {"JetBrains", "jetbrains"},
	MicrosoftVendor: {"Microsoft", "microsoft"},
	OpenLogicVendor: {"OpenLogic", "open_logic"},
	OracleVendor:    {"Oracle", "oracle"},
	RedHatVendor:    {"RedHat", "redhat"},
	SAP:             {"SAP", "sap"},
	Tencent:         {"Tencent", "tencent"},
}

// Name returns the display name of the vendor
func (v Vendor) Name() string { return vendors[v].name }

// APIName returns the machine readable name of the vendor
func (v Vendor) APIName() string { return vendors[v].apiName }

// Found reports whether v is a real vendor rather than a sentinel
func (v Vendor) Found() bool { return v != VendorNotFound && v != VendorNone }

func (v Vendor) String() string { return v.Name() }

var vendorAliases = buildVendorAliases(map[Vendor][]string{
	Alibaba:         {"alibaba", "ALIBABA", "Alibaba"},
	Amazon:          {"amazon", "AMAZON", "Amazon"},
	Azul:            {"azul", "AZUL", "Azul"},
	BellSoft:        {"bellsoft", "BELLSOFT", "BellSoft"},
	Community:       {"community", "COMMUNITY", "Community"},
	Eclipse:         {"eclipse", "ECLIPSE", "Eclipse"},
	Gluon:           {"gluon", "GLUON", "Gluon"},
	Huawei:          {"huawei", "HUAWEI", "Huawei"},
	IBM:             {"ibm", "IBM"},
	JetBrainsVendor: {"jetbrains", "JETBRAINS", "JetBrains"},
	MicrosoftVendor: {"microsoft", "MICROSOFT", "Microsoft"},
	OpenLogicVendor: {"open_logic", "OPEN_LOGIC", "OpenLogic", "openlogic", "OPENLOGIC"},
	OracleVendor:    {"oracle", "ORACLE", "Oracle"},
	RedHatVendor:    {"redhat", "REDHAT", "RedHat", "red_hat", "RED_HAT", "Red Hat"},
	SAP:             {"sap", "SAP"},
	Tencent:         {"tencent", "TENCENT", "Tencent"},
})

// buildVendorAliases inverts the per-vendor spelling lists, panicking on a
// spelling shared by two vendors like buildAliases does.
func buildVendorAliases(variants map[Vendor][]string) map[string]Vendor {
	aliases := make(map[string]Vendor)
	for v, names := range variants {
		for _, name := range names {
			if prev, dup := aliases[name]; dup && prev != v {
				panic("distro: vendor alias " + name + " maps to " + prev.APIName() + " and " + v.APIName())
			}
			aliases[name] = v
		}
	}
	return aliases
}

// NormalizeVendor maps a known spelling of a vendor name to its Vendor.
// Unknown input, including the empty string, yields VendorNotFound.
func NormalizeVendor(text string) Vendor {
	if v, ok := vendorAliases[text]; ok {
		return v
	}
	return VendorNotFound
}
