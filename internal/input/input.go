// Package input loads business records with their candidate social links
// from JSON, CSV or XLSX files.
package input

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/social-verify/internal/model"
)

// Format is an input file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", eris.Errorf("input: unsupported file type %q", filepath.Ext(path))
	}
}

// Skip describes an input entry that was not loaded.
type Skip struct {
	// Index is the 0-based position of the entry in the input.
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Result holds the loaded records and what was skipped.
type Result struct {
	Records []model.BusinessRecord
	Skipped []Skip
}

func (r *Result) add(index int, rec model.BusinessRecord, reason string) {
	if reason != "" {
		zap.L().Warn("skipping input record",
			zap.Int("index", index),
			zap.String("reason", reason),
		)
		r.Skipped = append(r.Skipped, Skip{Index: index, Reason: reason})
		return
	}
	r.Records = append(r.Records, rec)
}

// Load reads all records from path. Malformed entries are skipped and
// reported; an unreadable or unparsable file is an error.
func Load(ctx context.Context, path string) (*Result, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	if format == FormatXLSX {
		return LoadXLSX(ctx, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "input: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	return Decode(ctx, f, format)
}

// Decode reads records of the given format from r. XLSX needs a file path
// and is not supported here.
func Decode(ctx context.Context, r io.Reader, format Format) (*Result, error) {
	var (
		res *Result
		err error
	)
	switch format {
	case FormatJSON:
		res, err = DecodeJSON(ctx, r)
	case FormatCSV:
		res, err = DecodeCSV(ctx, r)
	default:
		return nil, eris.Errorf("input: cannot decode %s from a stream", format)
	}
	if err != nil {
		return nil, err
	}

	zap.L().Info("loaded input",
		zap.String("format", string(format)),
		zap.Int("records", len(res.Records)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

// normalizeLink fills in the platform and drops links without a URL.
func normalizeLink(rawURL, rawType string) (model.CandidateLink, bool) {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return model.CandidateLink{}, false
	}
	p := model.ParsePlatform(rawType)
	if p == model.PlatformOther {
		p = model.PlatformFromURL(u)
	}
	return model.CandidateLink{URL: u, Platform: p}, true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
