package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
)

func loadDelimited(path string, delimiter rune) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, loadErr(path, 0, "", err)
	}
	defer file.Close()

	return ReadDelimited(path, file, delimiter)
}

// ReadDelimited reads an observation table from delimited text.
// name identifies the source in errors.
func ReadDelimited(name string, r io.Reader, delimiter rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, loadErr(name, 0, "", errors.New("empty file"))
	}
	if err != nil {
		return nil, loadErr(name, 1, "", err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, loadErr(name, pe.Line, "", pe.Err)
		}
		return nil, loadErr(name, 0, "", err)
	}

	return parseRecords(name, header, rows)
}
