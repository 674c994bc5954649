// Package output serializes verification results for downstream indexing.
package output

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/social-verify/internal/model"
)

// Format selects the serialization of written records.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a flag value to a Format. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", eris.Errorf("output: unknown format %q", s)
	}
}

// FormatFromPath picks a Format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Records flattens results into output records, preserving order.
func Records(results []model.VerificationResult) []model.OutputRecord {
	out := make([]model.OutputRecord, 0, len(results))
	for _, r := range results {
		out = append(out, r.Output())
	}
	return out
}

// Write encodes records to w. JSON is indented, keeps non-ASCII text as is
// and does not escape HTML characters.
func Write(w io.Writer, records []model.OutputRecord, format Format) error {
	if records == nil {
		records = []model.OutputRecord{}
	}
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return eris.Wrap(err, "output: encode yaml")
		}
		return eris.Wrap(enc.Close(), "output: flush yaml")
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(records), "output: encode json")
	default:
		return eris.Errorf("output: unknown format %q", format)
	}
}

// WriteFile writes records to path, or to stdout when path is "" or "-".
func WriteFile(path string, records []model.OutputRecord, format Format) error {
	if path == "" || path == "-" {
		return Write(os.Stdout, records, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "output: create %s", path)
	}
	if err := Write(f, records, format); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrapf(f.Close(), "output: close %s", path)
}
