package input

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/social-verify/internal/model"
)

// flexString accepts a JSON string or number. Null stays empty.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return eris.Errorf("input: expected string or number, got %s", string(b))
	}
	*f = flexString(n.String())
	return nil
}

type jsonLink struct {
	URL         string  `json:"url"`
	Type        string  `json:"type"`
	RawText     *string `json:"raw_text"`
	DisplayName *string `json:"display_name"`
}

// jsonRecord accepts both English keys and the directory dataset's French
// keys (nom, adresse, telephone).
type jsonRecord struct {
	ID        flexString `json:"id"`
	PlaceName string     `json:"place_name"`
	Name      string     `json:"name"`
	Nom       string     `json:"nom"`
	Address   string     `json:"address"`
	Adresse   string     `json:"adresse"`
	Phone     flexString `json:"phone"`
	Telephone flexString `json:"telephone"`
	Links     []jsonLink `json:"links"`
}

func (j jsonRecord) record() (model.BusinessRecord, string) {
	id := strings.TrimSpace(string(j.ID))
	if id == "" {
		return model.BusinessRecord{}, "missing id"
	}
	rec := model.BusinessRecord{
		ID:        id,
		PlaceName: strings.TrimSpace(j.PlaceName),
		Name:      firstNonEmpty(j.Name, j.Nom),
		Address:   firstNonEmpty(j.Address, j.Adresse),
		Phone:     firstNonEmpty(string(j.Phone), string(j.Telephone)),
	}
	for _, l := range j.Links {
		link, ok := normalizeLink(l.URL, l.Type)
		if !ok {
			continue
		}
		link.RawText = l.RawText
		link.DisplayName = l.DisplayName
		rec.Links = append(rec.Links, link)
	}
	return rec, ""
}

// DecodeJSON reads a JSON array of records.
func DecodeJSON(ctx context.Context, r io.Reader) (*Result, error) {
	items, errs := DecodeJSONArray[jsonRecord](ctx, r)

	res := &Result{}
	i := 0
	for item := range items {
		rec, reason := item.record()
		res.add(i, rec, reason)
		i++
	}
	if err := <-errs; err != nil {
		return nil, eris.Wrapf(err, "input: decode json record %d", i)
	}
	return res, nil
}

// DecodeRecord reads one JSON object as a record.
func DecodeRecord(r io.Reader) (model.BusinessRecord, error) {
	var j jsonRecord
	if err := json.NewDecoder(r).Decode(&j); err != nil {
		return model.BusinessRecord{}, eris.Wrap(err, "input: decode json record")
	}
	rec, reason := j.record()
	if reason != "" {
		return model.BusinessRecord{}, eris.Errorf("input: invalid record: %s", reason)
	}
	return rec, nil
}

// DecodeJSONArray decodes a JSON array element by element, sending each to
// the returned channel. Both channels are closed when decoding completes.
func DecodeJSONArray[T any](ctx context.Context, r io.Reader) (<-chan T, <-chan error) {
	outCh := make(chan T, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(outCh)
		defer close(errCh)

		dec := json.NewDecoder(r)

		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				errCh <- eris.New("json: empty input")
				return
			}
			errCh <- eris.Wrap(err, "json: read opening token")
			return
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '[' {
			errCh <- eris.Errorf("json: expected '[', got %v", tok)
			return
		}

		for dec.More() {
			var item T
			if err := dec.Decode(&item); err != nil {
				errCh <- eris.Wrap(err, "json: decode element")
				return
			}
			select {
			case outCh <- item:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "json: context cancelled")
				return
			}
		}

		if _, err := dec.Token(); err != nil {
			errCh <- eris.Wrap(err, "json: read closing token")
		}
	}()

	return outCh, errCh
}
