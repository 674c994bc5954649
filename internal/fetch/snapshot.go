package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/social-verify/internal/model"
)

// SnapshotFetcher serves previously captured page content keyed by URL.
// It lets verification run offline and reproducibly.
type SnapshotFetcher struct {
	pages map[string]model.PageContent
}

// NewSnapshotFetcher indexes pages by URL. Later entries win.
func NewSnapshotFetcher(pages []model.PageContent) *SnapshotFetcher {
	s := &SnapshotFetcher{pages: make(map[string]model.PageContent, len(pages))}
	for _, p := range pages {
		s.pages[canonicalURL(p.URL)] = p
	}
	return s
}

// LoadSnapshot reads a snapshot file: a JSON or YAML list of pages, picked
// by extension.
func LoadSnapshot(path string) (*SnapshotFetcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch: read snapshot %s", path)
	}

	var pages []model.PageContent
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &pages); err != nil {
			return nil, eris.Wrapf(err, "fetch: parse snapshot %s", path)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&pages); err != nil {
			return nil, eris.Wrapf(err, "fetch: parse snapshot %s", path)
		}
	default:
		return nil, eris.Errorf("fetch: unsupported snapshot format %q", filepath.Ext(path))
	}
	return NewSnapshotFetcher(pages), nil
}

// Len returns the number of pages held.
func (s *SnapshotFetcher) Len() int {
	return len(s.pages)
}

// Fetch returns the captured content for url, or ErrNotFound.
func (s *SnapshotFetcher) Fetch(_ context.Context, url string, _ model.Platform) (model.PageContent, error) {
	p, ok := s.pages[canonicalURL(url)]
	if !ok {
		return model.PageContent{}, eris.Wrapf(ErrNotFound, "fetch: no snapshot for %s", url)
	}
	return p, nil
}
