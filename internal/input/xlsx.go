package input

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
)

// LoadXLSX reads records from the first sheet of an XLSX workbook, whose
// first row is the header.
func LoadXLSX(ctx context.Context, path string) (*Result, error) {
	rows, err := ReadXLSX(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("input: %s has no header row", path)
	}

	mapper := newRowMapper(rows[0])
	if !mapper.hasID() {
		return nil, eris.Errorf("input: %s header has no id column", path)
	}

	res := &Result{}
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "input: xlsx context cancelled")
		}
		if isBlank(row) {
			continue
		}
		rec, reason := mapper.record(row)
		res.add(i, rec, reason)
	}

	zap.L().Info("loaded input",
		zap.String("format", string(FormatXLSX)),
		zap.Int("records", len(res.Records)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

// ReadXLSX returns every row of the first sheet as strings.
func ReadXLSX(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "input: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("input: %s has no sheets", path)
	}

	sheet := f.Sheets[0]
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
