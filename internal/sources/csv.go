package sources

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	ErrMsgCSVEmpty = "csv: no element row found"
)

var (
	ErrCSVEmpty = errors.New(ErrMsgCSVEmpty)
)

// readElementRow reads the first row of a header-less CSV and returns its
// trimmed cells. Later rows are ignored.
func readElementRow(r io.Reader, delimiter rune) ([]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	row, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrCSVEmpty
		}
		return nil, fmt.Errorf("csv: read element row: %w", err)
	}

	elements := make([]string, 0, len(row))
	for _, cell := range row {
		elements = append(elements, strings.TrimSpace(cell))
	}
	return elements, nil
}

func delimiterOrDefault(d rune) rune {
	if d == 0 {
		return ','
	}
	return d
}
