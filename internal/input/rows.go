package input

import (
	"strings"

	"github.com/sells-group/social-verify/internal/model"
)

// columnAliases maps accepted header names to canonical columns.
var columnAliases = map[string]string{
	"id":           "id",
	"place_name":   "place_name",
	"place":        "place_name",
	"name":         "name",
	"nom":          "name",
	"address":      "address",
	"adresse":      "address",
	"phone":        "phone",
	"telephone":    "phone",
	"téléphone":    "phone",
	"links":        "links",
	"social_links": "links",
	"facebook":     "facebook",
	"instagram":    "instagram",
}

// rowMapper turns tabular rows into records using a header row.
type rowMapper struct {
	cols map[string]int
}

func newRowMapper(header []string) *rowMapper {
	m := &rowMapper{cols: make(map[string]int)}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if canon, ok := columnAliases[key]; ok {
			if _, seen := m.cols[canon]; !seen {
				m.cols[canon] = i
			}
		}
	}
	return m
}

func (m *rowMapper) hasID() bool {
	_, ok := m.cols["id"]
	return ok
}

func (m *rowMapper) get(row []string, col string) string {
	i, ok := m.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (m *rowMapper) record(row []string) (model.BusinessRecord, string) {
	id := m.get(row, "id")
	if id == "" {
		return model.BusinessRecord{}, "missing id"
	}
	rec := model.BusinessRecord{
		ID:        id,
		PlaceName: m.get(row, "place_name"),
		Name:      m.get(row, "name"),
		Address:   m.get(row, "address"),
		Phone:     m.get(row, "phone"),
	}

	rec.Links = ParseLinks(m.get(row, "links"))
	for _, p := range []model.Platform{model.PlatformFacebook, model.PlatformInstagram} {
		if link, ok := normalizeLink(m.get(row, string(p)), string(p)); ok {
			rec.Links = append(rec.Links, link)
		}
	}
	return rec, ""
}

// ParseLinks parses a links cell: entries separated by "|", each either
// "type:url" or a bare URL.
func ParseLinks(cell string) []model.CandidateLink {
	var links []model.CandidateLink
	for _, entry := range strings.Split(cell, "|") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		typ, u := "", entry
		if i := strings.Index(entry, ":"); i > 0 {
			prefix := strings.ToLower(entry[:i])
			if prefix != "http" && prefix != "https" {
				typ, u = entry[:i], entry[i+1:]
			}
		}
		if link, ok := normalizeLink(u, typ); ok {
			links = append(links, link)
		}
	}
	return links
}
