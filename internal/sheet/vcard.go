package sheet

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/registry"
)

// vcardHeaders are the synthetic headers of a vCard table. They use the
// registry vocabulary so header detection binds every role.
var vcardHeaders = []string{
	config.VCardHeaderSurname,
	config.VCardHeaderGivenName,
	config.VCardHeaderBirthDate,
	config.VCardHeaderUnit,
}

// VCardReader turns an address-book export into a table, one row per card.
//
// N provides the surname and given name (FN is the given name when N is
// missing), BDAY the birth date and the first CATEGORIES value the unit.
// A BDAY without a year becomes a yearless native date, so the record keeps
// its day and month.
type VCardReader struct{}

// Read implements Reader. Malformed cards are skipped.
func (VCardReader) Read(r io.Reader) (registry.RawTable, error) {
	t := registry.RawTable{Headers: vcardHeaders, Rows: make([][]registry.Cell, 0)}

	dec := vcard.NewDecoder(r)
	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompSheet,
				config.LogKeyError, err)
			// The decoder cannot resynchronise after a syntax error.
			break
		}
		t.Rows = append(t.Rows, cardRow(card))
	}
	return t, nil
}

func cardRow(card vcard.Card) []registry.Cell {
	surname, given := "", ""
	if n := card.Name(); n != nil {
		surname, given = n.FamilyName, n.GivenName
	}
	if strings.TrimSpace(surname) == "" && strings.TrimSpace(given) == "" {
		given = card.PreferredValue(vcard.FieldFormattedName)
	}

	unit := ""
	if cats := card.Value(vcard.FieldCategories); cats != "" {
		first, _, _ := strings.Cut(cats, ",")
		unit = strings.TrimSpace(first)
	}

	return []registry.Cell{
		registry.TextCell(surname),
		registry.TextCell(given),
		birthdayCell(card.Value(vcard.FieldBirthday)),
		registry.TextCell(unit),
	}
}

func birthdayCell(value string) registry.Cell {
	value = strings.TrimSpace(value)
	if value == "" {
		return registry.Cell{}
	}
	t, yearKnown, err := parseBirthday(value)
	if err != nil {
		slog.Debug(config.MsgSkippedDate,
			config.LogKeyComponent, config.CompSheet,
			config.LogKeyValue, value)
		return registry.TextCell(value)
	}
	if !yearKnown {
		return registry.Cell{Text: value, Date: t, IsDate: true, NoYear: true}
	}
	return registry.Cell{
		Text:   t.Format(config.DateLayoutDisplay),
		Date:   t,
		IsDate: true,
	}
}

// parseBirthday handles the vCard 3.0 and 4.0 BDAY forms. Truncated dates
// (--MMDD) are placed in a leap year so Feb 29 survives.
func parseBirthday(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}
	return time.Time{}, false, errors.New(config.ErrDateParse)
}
