package layerfill

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbookRows reads the first sheet of an .xlsx workbook into rows of
// strings, the same shape ParseRows produces for CSV text. Excelize drops
// trailing empty cells, so every non-empty row is padded to columns fields;
// an empty optional column then validates the same way as an empty CSV
// field. Fully empty rows come back as a single empty field, matching the
// blank-row convention.
func ReadWorkbookRows(path string, columns int) ([][]string, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %q has no sheets", path)
	}

	raw, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	rows := make([][]string, 0, len(raw))
	for _, r := range raw {
		if len(r) == 0 {
			rows = append(rows, []string{""})
			continue
		}
		for len(r) < columns {
			r = append(r, "")
		}
		rows = append(rows, r)
	}
	return rows, nil
}
