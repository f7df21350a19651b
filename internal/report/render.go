package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"jfind/internal/theme"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// CSVHeader is the first record of csv output
var CSVHeader = []string{"Vendor", "Distribution", "Version", "Timestamp", "Path", "Type", "InUse"}

// Render writes run to w in the given format
func Render(w io.Writer, run Run, format Format) error {
	switch format {
	case FormatJSON:
		return json.NewEncoder(w).Encode(run)
	case FormatPretty:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	case FormatCSV:
		return renderCSV(w, run)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(run); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(run); err != nil {
			return fmt.Errorf("failed to encode toml: %w", err)
		}
		return nil
	case FormatTable:
		_, err := fmt.Fprintln(w, RenderTable(run.Distributions))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderCSV(w io.Writer, run Run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	for _, d := range run.Distributions {
		record := []string{
			d.Vendor,
			d.Name,
			d.Version,
			strconv.FormatInt(d.Timestamp, 10),
			d.Path,
			d.BuildScope,
			strconv.FormatBool(d.InUse),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// RenderTable lays the distributions out as a styled table. Rows of
// installations in use are highlighted.
func RenderTable(dists []Distribution) string {
	headers := []string{"Vendor", "Distribution", "Version", "Type", "Arch", "FX", "In use", "Path"}
	rows := make([][]string, 0, len(dists))
	inUse := make(map[int]bool)
	for i, d := range dists {
		used := ""
		if d.InUse {
			used = "✓"
			inUse[i] = true
		}
		fx := ""
		if d.FXBundled {
			fx = "✓"
		}
		rows = append(rows, []string{d.Vendor, d.Name, d.Version, d.BuildScope, d.Architecture, fx, used, d.Path})
	}
	return theme.Table(headers, rows, inUse).String()
}
