package engine

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/tartampluch/go-scoutalert/internal/registry"
)

// Entry is a stored record prepared for list views. It decouples the UI
// from the store layout.
type Entry struct {
	// Index is the position of the record in the stored sequence; the
	// editor uses it to replace or remove the record.
	Index  int
	Record registry.BirthdayRecord

	// NextOccurrence is the next birthday on or after today, zero when the
	// record is undated.
	NextOccurrence time.Time

	// AgeNext is the age reached at NextOccurrence. Only valid when the
	// birth year is known.
	AgeNext int
}

// BuildEntries wraps every record, in store order.
func BuildEntries(records []registry.BirthdayRecord, now time.Time) []Entry {
	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = Entry{Index: i, Record: r}
		if r.HasDate() {
			entries[i].NextOccurrence, entries[i].AgeNext = calculateNextOccurrence(now, r)
		}
	}
	return entries
}

// calculateNextOccurrence returns the next birthday relative to now and
// the age reached that day (0 when the year is unknown). time.Date
// normalises Feb 29 to Mar 1 in non-leap years.
func calculateNextOccurrence(now time.Time, r registry.BirthdayRecord) (time.Time, int) {
	loc := now.Location()
	month := time.Month(r.Month)

	candidate := time.Date(now.Year(), month, r.Day, 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if candidate.Before(todayStart) {
		candidate = time.Date(now.Year()+1, month, r.Day, 0, 0, 0, 0, loc)
	}

	ageNext := 0
	if r.HasYear() {
		ageNext = candidate.Year() - r.Year
	}
	return candidate, ageNext
}

// CompareCalendar orders records by month, day and year, undated records
// last, then by surname and given name (case-insensitive).
func CompareCalendar(a, b registry.BirthdayRecord) int {
	if a.HasDate() != b.HasDate() {
		if a.HasDate() {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(a.Month, b.Month); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Day, b.Day); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Year, b.Year); c != 0 {
		return c
	}
	return CompareName(a, b)
}

// CompareName orders records by display name, case-insensitive.
func CompareName(a, b registry.BirthdayRecord) int {
	return strings.Compare(strings.ToLower(a.DisplayName()), strings.ToLower(b.DisplayName()))
}

// SortByCalendar sorts entries in place with CompareCalendar.
func SortByCalendar(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return CompareCalendar(a.Record, b.Record)
	})
}

// FilterEntries keeps the entries whose full name or unit contains query
// (case-insensitive) and, when unit is set, whose unit equals it.
func FilterEntries(entries []Entry, query, unit string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if unit != "" && e.Record.Unit != unit {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(e.Record.FullName()), q) &&
			!strings.Contains(strings.ToLower(e.Record.DisplayName()), q) &&
			!strings.Contains(strings.ToLower(e.Record.Unit), q) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// AvailableUnits returns the distinct known units of records, sorted.
func AvailableUnits(records []registry.BirthdayRecord) []string {
	units := make([]string, 0)
	for _, r := range records {
		if r.HasUnit() && !slices.Contains(units, r.Unit) {
			units = append(units, r.Unit)
		}
	}
	slices.Sort(units)
	return units
}
