// Package registry turns raw membership-registry extracts into canonical
// birthday records: header role detection, per-cell normalisation of names,
// dates and units, blank-row filtering and deduplication.
//
// Every function in this package is pure and safe for concurrent use.
package registry

import (
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-scoutalert/internal/config"
)

// Role is one of the semantic column meanings of a registry extract.
type Role string

const (
	RoleSurname   Role = "surname"
	RoleGivenName Role = "given_name"
	RoleBirthDate Role = "birth_date"
	RoleUnit      Role = "unit"
)

// Roles lists every role in detection order.
var Roles = []Role{RoleSurname, RoleGivenName, RoleBirthDate, RoleUnit}

// HeaderRoleMap maps a role to a column index of a RawTable.
// A missing role is a valid state: consumers treat it as an empty column.
type HeaderRoleMap map[Role]int

// Index returns the column bound to role, if any.
func (m HeaderRoleMap) Index(role Role) (int, bool) {
	idx, ok := m[role]
	return idx, ok
}

// Cell is one spreadsheet cell as reported by a reader: its fully evaluated
// display string and, when the source stores a native date, that date.
type Cell struct {
	Text string

	// Date holds the native date value when IsDate is true.
	// Only its year, month and day are meaningful.
	Date   time.Time
	IsDate bool

	// NoYear marks a native date stored without a year (a vCard --MMDD
	// birthday). Date then sits in a leap year and only its month and day
	// are meaningful.
	NoYear bool
}

// TextCell builds a cell that only carries a display string.
func TextCell(text string) Cell {
	return Cell{Text: text}
}

// RawTable is the header row plus data rows produced by a reader.
// Every row has exactly len(Headers) cells.
type RawTable struct {
	Headers []string
	Rows    [][]Cell
}

// NewTextTable builds a RawTable from plain strings. Rows are padded with
// empty cells or truncated to the header width.
func NewTextTable(headers []string, rows [][]string) RawTable {
	t := RawTable{
		Headers: headers,
		Rows:    make([][]Cell, 0, len(rows)),
	}
	for _, raw := range rows {
		cells := make([]Cell, len(headers))
		for i := range cells {
			if i < len(raw) {
				cells[i] = TextCell(raw[i])
			}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// BirthdayRecord is the canonical birthday entity.
//
// Unit is empty when unknown and Year is 0 when unknown. Day and Month are
// both 0 for a record whose birth date could not be resolved; such a record
// is kept for display but never matches a day.
type BirthdayRecord struct {
	GivenName string `json:"given_name"`
	Surname   string `json:"surname"`
	Unit      string `json:"unit,omitempty"`
	Day       int    `json:"day" validate:"omitempty,min=1,max=31"`
	Month     int    `json:"month" validate:"omitempty,min=1,max=12"`
	Year      int    `json:"year,omitempty" validate:"omitempty,min=1,max=9999"`
}

// FullName joins the given name and surname, skipping blank parts.
// It is never empty.
func (r BirthdayRecord) FullName() string {
	return joinName(r.GivenName, r.Surname)
}

// DisplayName is the registry ordering of the name (surname first), used by
// list views.
func (r BirthdayRecord) DisplayName() string {
	return joinName(r.Surname, r.GivenName)
}

func joinName(first, second string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{first, second} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return config.FallbackName
	}
	return strings.Join(parts, " ")
}

// HasDate reports whether Day and Month form a valid calendar pair.
func (r BirthdayRecord) HasDate() bool {
	return validDayMonth(r.Day, r.Month)
}

// HasYear reports whether the birth year is known.
func (r BirthdayRecord) HasYear() bool {
	return r.Year > 0
}

// HasUnit reports whether the record belongs to a known unit.
func (r BirthdayRecord) HasUnit() bool {
	return r.Unit != ""
}

// DateKey renders the resolved birth date: ISO yyyy-mm-dd when the year is
// known, --mm-dd without it, and "" when no date was resolved.
func (r BirthdayRecord) DateKey() string {
	switch {
	case !r.HasDate():
		return ""
	case r.HasYear():
		return time.Date(r.Year, time.Month(r.Month), r.Day, 0, 0, 0, 0, time.UTC).Format(config.DateLayoutISO)
	default:
		return fmt.Sprintf(config.DateKeyNoYear, r.Month, r.Day)
	}
}

// daysInMonth is indexed by month (1-12). February allows the 29th because
// validity is structural and does not depend on the year.
var daysInMonth = [...]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// MaxDay returns the last valid day of month, or 0 for an invalid month.
func MaxDay(month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return daysInMonth[month]
}

func validDayMonth(day, month int) bool {
	return day >= 1 && day <= MaxDay(month)
}
