package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/registry"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVReader reads delimited text exports. The delimiter is sniffed from the
// header line; quoted fields and ragged rows are accepted.
type CSVReader struct {
	// Comma forces the delimiter when non-zero.
	Comma rune

	// MaxBytes caps the input size; zero means config.MaxHTTPResponseSize.
	// Larger inputs fail with ErrTooLarge.
	MaxBytes int64
}

// Read implements Reader.
func (c CSVReader) Read(r io.Reader) (registry.RawTable, error) {
	limit := c.MaxBytes
	if limit <= 0 {
		limit = config.MaxHTTPResponseSize
	}
	data, err := io.ReadAll(LimitReader(r, limit))
	if err != nil {
		return registry.RawTable{}, fmt.Errorf("%s: %w", config.ErrCSVRead, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	comma := c.Comma
	if comma == 0 {
		comma = sniffDelimiter(data)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return registry.RawTable{}, fmt.Errorf("%s: %w", config.ErrCSVRead, err)
	}

	grid := make([][]registry.Cell, 0, len(records))
	for _, rec := range records {
		grid = append(grid, textRow(rec))
	}
	return buildTable(grid), nil
}

// sniffDelimiter counts each candidate delimiter on the first non-empty
// line, outside double quotes, and returns the most frequent one. Ties go to
// the earlier candidate; ',' is used when none appears.
func sniffDelimiter(data []byte) rune {
	window := data
	if len(window) > config.CSVSniffWindow {
		window = window[:config.CSVSniffWindow]
	}

	line := firstLine(window)
	counts := make(map[rune]int, len(config.CSVDelimiters))
	inQuotes := false
	for _, r := range string(line) {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[r]++
		}
	}

	best, bestCount := ',', 0
	for _, d := range config.CSVDelimiters {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}

func firstLine(data []byte) []byte {
	for len(data) > 0 {
		line, rest, _ := bytes.Cut(data, []byte("\n"))
		if len(bytes.TrimSpace(line)) > 0 {
			return line
		}
		data = rest
	}
	return nil
}
