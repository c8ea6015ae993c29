package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/registry"
)

// EventFormatter renders the summary of a birthday event. The UI injects a
// localized implementation.
type EventFormatter func(name string, age int, yearKnown bool) string

// DefaultEventSummary is the formatter used when none is injected.
func DefaultEventSummary(name string, age int, yearKnown bool) string {
	switch {
	case !yearKnown:
		return fmt.Sprintf(config.FallbackSummary, name)
	case age == 0:
		return fmt.Sprintf(config.FallbackSummaryBirth, name)
	default:
		return fmt.Sprintf(config.FallbackSummaryAge, name, age)
	}
}

// BuildCalendar renders an iCalendar feed with one all-day event per dated
// record for the previous, current and next year. No event is created
// before the birth year. UIDs are stable across rebuilds.
func BuildCalendar(records []registry.BirthdayRecord, now time.Time, format EventFormatter) ([]byte, error) {
	if format == nil {
		format = DefaultEventSummary
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Dates follow the local calendar; only DTSTAMP is UTC.
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	seen := make(map[string]int)
	dated := 0
	for _, r := range records {
		if !r.HasDate() {
			continue
		}
		dated++

		uidBase := recordUID(r)
		if n := seen[uidBase]; n > 0 {
			seen[uidBase] = n + 1
			uidBase = fmt.Sprintf(config.FormatUIDDup, uidBase, n)
		} else {
			seen[uidBase] = 1
		}

		for _, e := range createEvents(r, now, uidBase, format) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	slog.Debug(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyRecords, len(records)),
			slog.Int(config.LogKeyCount, dated),
		),
	)

	// Clients reject a VCALENDAR without components.
	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// recordUID hashes the identity fields of a record.
func recordUID(r registry.BirthdayRecord) string {
	input := fmt.Sprintf(config.FormatHashInput, config.UIDSalt, r.Surname, r.GivenName, r.DateKey(), r.Unit)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

func createEvents(r registry.BirthdayRecord, now time.Time, uidBase string, format EventFormatter) []*ical.Event {
	loc := now.Location()
	currentYear := now.Year()
	name := r.FullName()

	var events []*ical.Event
	for _, y := range []int{currentYear - 1, currentYear, currentYear + 1} {
		if r.HasYear() && y < r.Year {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))

		age := 0
		if r.HasYear() {
			age = y - r.Year
		}
		event.Props.SetText(config.PropSummary, format(name, age, r.HasYear()))
		if r.HasUnit() {
			event.Props.SetText(config.PropCategories, r.Unit)
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(time.Date(y, time.Month(r.Month), r.Day, 0, 0, 0, 0, loc))
		event.Props.Set(dtStartProp)

		events = append(events, event)
	}
	return events
}
