package registry

import (
	"strings"
	"time"

	"github.com/tartampluch/go-scoutalert/internal/config"
)

// textDateLayouts are tried in order by ResolveFromText.
var textDateLayouts = []string{
	config.DateLayoutSlash, // 15/03/2010, 5/3/2010
	config.DateLayoutISO,   // 2010-03-15
	config.DateLayoutDash,  // 15-03-2010
	config.DateLayoutDot,   // 15.03.2010
}

// ResolveFromCell returns the calendar date of a native date cell, at
// midnight local time. The reader's year/month/day decomposition is taken
// as-is: spreadsheet dates carry no time zone.
func ResolveFromCell(c Cell) (time.Time, bool) {
	if !c.IsDate || c.Date.IsZero() {
		return time.Time{}, false
	}
	y, m, d := c.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local), true
}

// ResolveFromText parses a registry date string. Parsing is strict: the
// whole trimmed string must match a layout, the year must have four digits
// and the day must exist in the month.
func ResolveFromText(text string) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range textDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ResolveDate tries the native date of the cell first, then its display text.
func ResolveDate(c Cell) (time.Time, bool) {
	if t, ok := ResolveFromCell(c); ok {
		return t, true
	}
	return ResolveFromText(c.Text)
}
