// Package sheet decodes registry extracts (XLSX workbooks, CSV files and
// vCard exports) into the raw header/row grid consumed by the registry
// package.
package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/registry"
)

// ErrUnsupportedFormat is returned when no reader fits a source.
var ErrUnsupportedFormat = errors.New(config.ErrUnsupportedFormat)

// Reader decodes a whole extract. The first non-empty row is the header row
// and every data row of the result has exactly len(Headers) cells. An empty
// source yields an empty table and no error.
type Reader interface {
	Read(r io.Reader) (registry.RawTable, error)
}

// ForName picks a reader from the extension of a file name or URL path.
func ForName(name string) (Reader, error) {
	ext := extension(name)
	switch ext {
	case config.ExtXLSX, config.ExtXLSM:
		return XLSXReader{}, nil
	case config.ExtCSV:
		return CSVReader{}, nil
	case config.ExtVCF, config.ExtVCard:
		return VCardReader{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// mediaReaders maps the media types servers send for registry extracts.
var mediaReaders = map[string]Reader{
	config.MediaCSV:      CSVReader{},
	config.MediaCSVAlt:   CSVReader{},
	config.MediaVCard:    VCardReader{},
	config.MediaXVCard:   VCardReader{},
	config.MediaDirVCard: VCardReader{},
	config.MediaXLSX:     XLSXReader{},
	config.MediaXLSM:     XLSXReader{},
}

func extension(name string) string {
	return strings.ToLower(path.Ext(strings.ReplaceAll(name, `\`, "/")))
}

// Detect picks a reader for a source whose name may carry no extension,
// such as a download link ending in "/export?format=csv". A supported
// extension of name wins, then the media type. Only a name without any
// extension falls back to the leading bytes of the content: a zip archive
// is a workbook, "BEGIN:VCARD" an address book and any other text a CSV
// export.
func Detect(name, contentType string, head []byte) (Reader, error) {
	r, err := ForName(name)
	if err == nil {
		return r, nil
	}

	if mt, _, perr := mime.ParseMediaType(contentType); perr == nil {
		if r, ok := mediaReaders[strings.ToLower(mt)]; ok {
			return r, nil
		}
	}

	if extension(name) != "" {
		return nil, err
	}
	if r, ok := sniff(head); ok {
		slog.Debug(config.MsgFormatSniffed,
			config.LogKeyComponent, config.CompSheet,
			config.LogKeyName, name,
			config.LogKeyMediaType, contentType)
		return r, nil
	}
	return nil, err
}

func sniff(head []byte) (Reader, bool) {
	if len(head) == 0 {
		return nil, false
	}
	if bytes.HasPrefix(head, []byte(config.MagicZip)) {
		return XLSXReader{}, true
	}
	text := bytes.TrimSpace(bytes.TrimPrefix(head, utf8BOM))
	if len(text) >= len(config.MagicVCard) && bytes.EqualFold(text[:len(config.MagicVCard)], []byte(config.MagicVCard)) {
		return VCardReader{}, true
	}
	if strings.HasPrefix(http.DetectContentType(head), config.MimePrefixText) {
		return CSVReader{}, true
	}
	return nil, false
}

// buildTable splits a grid into its header row and data rows. Leading empty
// rows are skipped; rows are padded or truncated to the header width.
func buildTable(grid [][]registry.Cell) registry.RawTable {
	start := 0
	for start < len(grid) && blankRow(grid[start]) {
		start++
	}
	if start == len(grid) {
		return registry.RawTable{}
	}

	headerCells := grid[start]
	headers := make([]string, len(headerCells))
	for i, c := range headerCells {
		headers[i] = strings.TrimSpace(c.Text)
	}

	t := registry.RawTable{
		Headers: headers,
		Rows:    make([][]registry.Cell, 0, len(grid)-start-1),
	}
	for _, raw := range grid[start+1:] {
		row := make([]registry.Cell, len(headers))
		copy(row, raw)
		t.Rows = append(t.Rows, row)
	}
	return t
}

func blankRow(row []registry.Cell) bool {
	for _, c := range row {
		if c.IsDate || strings.TrimSpace(c.Text) != "" {
			return false
		}
	}
	return true
}

func textRow(values []string) []registry.Cell {
	row := make([]registry.Cell, len(values))
	for i, v := range values {
		row[i] = registry.TextCell(v)
	}
	return row
}
