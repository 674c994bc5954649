package input

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
)

// DecodeCSV reads records from CSV with a header row.
func DecodeCSV(ctx context.Context, r io.Reader) (*Result, error) {
	rows, errs := StreamCSV(ctx, r)

	var mapper *rowMapper
	res := &Result{}
	i := 0
	for row := range rows {
		if mapper == nil {
			mapper = newRowMapper(row)
			continue
		}
		if mapper.hasID() {
			rec, reason := mapper.record(row)
			res.add(i, rec, reason)
		}
		i++
	}
	if err := <-errs; err != nil {
		return nil, eris.Wrapf(err, "input: decode csv row %d", i)
	}
	if mapper == nil {
		return nil, eris.New("input: csv has no header row")
	}
	if !mapper.hasID() {
		return nil, eris.New("input: csv header has no id column")
	}
	return res, nil
}

// StreamCSV reads CSV rows, including the header, and sends them to a
// channel. Rows may have varying field counts. Both channels are closed when
// reading completes.
func StreamCSV(ctx context.Context, r io.Reader) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		for {
			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "csv: read row")
				return
			}

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}
