package dataset

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

func loadWorkbook(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, loadErr(path, 0, "", err)
	}
	defer f.Close()

	return readWorkbook(path, f, sheet)
}

func readWorkbook(name string, f *excelize.File, sheet string) (*Table, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, loadErr(name, 0, "", errors.New("workbook has no sheets"))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, loadErr(name, 0, "", fmt.Errorf("sheet %q: %w", sheet, err))
	}
	if len(rows) == 0 {
		return nil, loadErr(name, 0, "", fmt.Errorf("sheet %q is empty", sheet))
	}

	return parseRecords(name, rows[0], rows[1:])
}
