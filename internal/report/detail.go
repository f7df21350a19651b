package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"jfind/internal/java"
	"jfind/internal/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type field struct {
	label string
	value string
}

func renderFields(title string, fields []field) string {
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.label))
	}

	lines := []string{theme.Title.Render(title), ""}
	for _, f := range fields {
		label := theme.LabelStyle.Render(f.label + ":")
		pad := strings.Repeat(" ", width-lipgloss.Width(f.label)+1)
		lines = append(lines, label+pad+theme.ValueStyle.Render(f.value))
	}
	return theme.Box.Render(strings.Join(lines, "\n"))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// RenderDetail describes a single installation in a box
func RenderDetail(inst java.Installation) string {
	d := FromInstallation(inst)
	fields := []field{
		{"Distribution", d.Name},
		{"Vendor", d.Vendor},
		{"API name", d.APIName},
		{"Version", d.Version},
		{"JDK major", strconv.Itoa(d.JDKMajor)},
		{"Build scope", inst.BuildScope.String()},
		{"Operating system", d.OperatingSystem},
		{"Architecture", d.Architecture},
		{"JavaFX bundled", yesNo(d.FXBundled)},
	}
	if d.Feature != "" {
		fields = append(fields, field{"Feature", d.Feature})
	}
	fields = append(fields,
		field{"Location", theme.PathStyle.Render(d.Path)},
		field{"Confidence", inst.Confidence.String()},
	)
	if inst.Conflict != "" {
		fields = append(fields, field{"Conflicting marker", theme.WarningStyle.Render(inst.Conflict)})
	}
	if d.InUse {
		fields = append(fields, field{"In use by", strings.Join(d.UsedBy, "\n")})
	}
	return renderFields(inst.Name, fields)
}

// RenderSysInfo writes the host description in the given format. Formats
// without a structured encoding fall back to the boxed listing.
func RenderSysInfo(w io.Writer, sys java.SysInfo, format Format) error {
	switch format {
	case FormatJSON:
		return json.NewEncoder(w).Encode(sys)
	case FormatPretty:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sys)
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(sys)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(sys)
	default:
		_, err := fmt.Fprintln(w, renderFields("System", []field{
			{"Operating system", sys.OperatingSystem},
			{"Architecture", sys.Architecture},
			{"Bitness", strconv.Itoa(sys.Bitness)},
			{"Operating mode", sys.OperatingMode},
		}))
		return err
	}
}
