package distro

// BuildScope tells whether an installation is a standard runtime or a
// native-image toolchain build
type BuildScope int

const (
	ScopeNotFound BuildScope = iota
	ScopeStandardRuntime
	ScopeNativeImage
)

// Label returns the short label used in reports ("OpenJDK" or "GraalVM")
func (s BuildScope) Label() string {
	switch s {
	case ScopeStandardRuntime:
		return "OpenJDK"
	case ScopeNativeImage:
		return "GraalVM"
	default:
		return ""
	}
}

func (s BuildScope) String() string {
	switch s {
	case ScopeStandardRuntime:
		return "Build of OpenJDK"
	case ScopeNativeImage:
		return "Build of GraalVM"
	default:
		return "Not found"
	}
}
