package rankings

import (
	"io"
	"strings"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
	"golang.org/x/net/html"
)

// ParseHTML reads the first table of a saved cheat-sheet page. The header
// comes from the first row holding th cells, or the first row when there
// are none.
func ParseHTML(r io.Reader) ([]model.RankedEntry, int, error) {
	z := html.NewTokenizer(r)

	var (
		header     []string
		rows       [][]string
		row        []string
		cell       strings.Builder
		inTable    bool
		done       bool
		inRow      bool
		inCell     bool
		headerRow  bool
		tableDepth int
	)

	for !done {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, 0, err
			}
			done = true
		case html.StartTagToken:
			t := z.Token()
			switch t.Data {
			case "table":
				tableDepth++
				inTable = true
			case "tr":
				if inTable && tableDepth == 1 {
					inRow = true
					headerRow = false
					row = row[:0:0]
				}
			case "th", "td":
				if inRow {
					inCell = true
					headerRow = headerRow || t.Data == "th"
					cell.Reset()
				}
			}
		case html.TextToken:
			if inCell {
				cell.Write(z.Text())
			}
		case html.EndTagToken:
			t := z.Token()
			switch t.Data {
			case "th", "td":
				if inCell {
					row = append(row, strings.Join(strings.Fields(cell.String()), " "))
					inCell = false
				}
			case "tr":
				if !inRow {
					continue
				}
				inRow = false
				if len(row) == 0 {
					continue
				}
				if header == nil && (headerRow || len(rows) == 0) {
					header = row
					continue
				}
				rows = append(rows, row)
			case "table":
				tableDepth--
				if tableDepth == 0 && inTable {
					done = true
				}
			}
		}
	}

	if header == nil {
		return nil, 0, &model.ValidationError{Field: "html", Reason: "no table found"}
	}
	return fromRecords(header, rows)
}
