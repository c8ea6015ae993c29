package registry

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-scoutalert/internal/config"
)

// ErrColumnOutOfRange is returned when a role map points outside the table.
var ErrColumnOutOfRange = errors.New(config.ErrColumnRange)

// NormalizeRows converts every data row of t into a canonical record.
//
// Rows with a blank surname, a blank given name and no resolvable date are
// dropped; a unit alone does not keep a row. Exact duplicates are then
// collapsed with Dedup. A row whose date cannot be resolved is kept with
// Day and Month at zero, and a yearless native date leaves Year at zero.
func NormalizeRows(t RawTable, roles HeaderRoleMap) ([]BirthdayRecord, error) {
	for _, role := range Roles {
		if idx, ok := roles.Index(role); ok && (idx < 0 || idx >= len(t.Headers)) {
			return nil, fmt.Errorf("%w: %s=%d (%d columns)", ErrColumnOutOfRange, role, idx, len(t.Headers))
		}
	}

	records := make([]BirthdayRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		if rec, ok := normalizeRow(row, roles); ok {
			records = append(records, rec)
		}
	}
	return Dedup(records), nil
}

func normalizeRow(row []Cell, roles HeaderRoleMap) (BirthdayRecord, bool) {
	rec := BirthdayRecord{
		Surname:   NormalizeName(cellFor(row, roles, RoleSurname).Text),
		GivenName: NormalizeName(cellFor(row, roles, RoleGivenName).Text),
		Unit:      NormalizeUnit(cellFor(row, roles, RoleUnit).Text),
	}

	cell := cellFor(row, roles, RoleBirthDate)
	date, resolved := ResolveDate(cell)
	if rec.Surname == "" && rec.GivenName == "" && !resolved {
		return BirthdayRecord{}, false
	}
	if resolved {
		rec.Day, rec.Month = date.Day(), int(date.Month())
		if !cell.IsDate || !cell.NoYear {
			rec.Year = date.Year()
		}
	}
	return rec, true
}

// cellFor returns the cell bound to role, or an empty cell when the role is
// absent or the row is shorter than the header.
func cellFor(row []Cell, roles HeaderRoleMap, role Role) Cell {
	idx, ok := roles.Index(role)
	if !ok || idx >= len(row) {
		return Cell{}
	}
	return row[idx]
}

type recordKey struct {
	surname, givenName, date, unit string
}

// Dedup drops later exact duplicates of (surname, given name, resolved date,
// unit), keeping the first occurrence and the original order. Records that
// differ in any of these fields are all kept.
func Dedup(records []BirthdayRecord) []BirthdayRecord {
	seen := make(map[recordKey]struct{}, len(records))
	out := make([]BirthdayRecord, 0, len(records))
	for _, r := range records {
		k := recordKey{r.Surname, r.GivenName, r.DateKey(), r.Unit}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
