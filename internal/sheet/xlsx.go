package sheet

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/registry"
	"github.com/xuri/excelize/v2"
)

// XLSXReader reads the first worksheet of an Office Open XML workbook.
//
// Display strings are the cells' formatted values (cached results for
// formulas). Numeric cells whose number format is a date format, and
// ISO date-typed cells, also carry their native date.
type XLSXReader struct{}

// Read implements Reader.
func (XLSXReader) Read(r io.Reader) (registry.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return registry.RawTable{}, fmt.Errorf("%s: %w", config.ErrWorkbookOpen, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return registry.RawTable{}, nil
	}
	sheet := sheets[0]
	slog.Debug(config.MsgSheetSelected,
		config.LogKeyComponent, config.CompSheet,
		config.LogKeySheet, sheet)

	display, err := f.GetRows(sheet)
	if err != nil {
		return registry.RawTable{}, fmt.Errorf("%s: %w", config.ErrWorkbookRead, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return registry.RawTable{}, fmt.Errorf("%s: %w", config.ErrWorkbookRead, err)
	}

	wb := workbook{file: f, sheet: sheet, date1904: uses1904(f), styles: make(map[int]bool)}
	grid := make([][]registry.Cell, len(display))
	for i, values := range display {
		row := make([]registry.Cell, len(values))
		for j, text := range values {
			row[j] = registry.TextCell(text)
			if i < len(raw) && j < len(raw[i]) {
				if d, ok := wb.nativeDate(j+1, i+1, raw[i][j]); ok {
					row[j].Date, row[j].IsDate = d, true
				}
			}
		}
		grid[i] = row
	}
	return buildTable(grid), nil
}

type workbook struct {
	file     *excelize.File
	sheet    string
	date1904 bool

	// styles caches whether a style index carries a date number format.
	styles map[int]bool
}

// nativeDate returns the date stored in the cell at (col, row), 1-based.
func (w workbook) nativeDate(col, row int, raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return time.Time{}, false
	}

	if typ, err := w.file.GetCellType(w.sheet, cell); err == nil && typ == excelize.CellTypeDate {
		for _, layout := range []string{config.CellDateLayoutFull, config.CellDateLayoutShort} {
			if t, err := time.Parse(layout, strings.TrimSuffix(raw, "Z")); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial <= 0 || !w.dateStyled(cell) {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, w.date1904)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (w workbook) dateStyled(cell string) bool {
	idx, err := w.file.GetCellStyle(w.sheet, cell)
	if err != nil {
		return false
	}
	if isDate, ok := w.styles[idx]; ok {
		return isDate
	}

	isDate := false
	if style, err := w.file.GetStyle(idx); err == nil && style != nil {
		isDate = isDateNumFmt(style.NumFmt, style.CustomNumFmt)
	}
	w.styles[idx] = isDate
	return isDate
}

func uses1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	return err == nil && props.Date1904 != nil && *props.Date1904
}

// builtinDateFormats holds the built-in number format ids that render dates,
// including the East Asian variants.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// Quoted literals, escaped characters and bracketed sections (colors,
// locales, conditions) never hold date tokens.
var numFmtNoise = regexp.MustCompile(`"[^"]*"|\\.|\[[^\]]*\]`)

func isDateNumFmt(id int, custom *string) bool {
	if builtinDateFormats[id] {
		return true
	}
	if custom == nil {
		return false
	}
	code := strings.ToLower(numFmtNoise.ReplaceAllString(*custom, ""))
	if code == "general" {
		return false
	}
	return strings.ContainsAny(code, "dy")
}
