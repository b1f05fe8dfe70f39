package rankings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
)

// ParseCSV reads a ranking sheet with a header row. It returns the entries
// and the number of rows that could not be used.
func ParseCSV(r io.Reader) ([]model.RankedEntry, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, &model.ValidationError{Field: "csv", Reason: "empty file"}
		}
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		// Strip a UTF-8 byte order mark from spreadsheet exports.
		header[0] = trimBOM(header[0])
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, record)
	}
	return fromRecords(header, rows)
}

func trimBOM(s string) string {
	const bom = "\ufeff"
	if len(s) >= len(bom) && s[:len(bom)] == bom {
		return s[len(bom):]
	}
	return s
}
