package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/registry"
)

// TitleKind selects the phrasing of a summary title from the match count.
type TitleKind int

const (
	TitleNone   TitleKind = iota // no birthday today
	TitleSingle                  // names the only person
	TitleDual                    // fixed phrase, no names
	TitleMany                    // reports the count
)

func (k TitleKind) String() string {
	switch k {
	case TitleSingle:
		return "single"
	case TitleDual:
		return "dual"
	case TitleMany:
		return "many"
	default:
		return "none"
	}
}

// KindFor returns the title kind for a match count.
func KindFor(count int) TitleKind {
	switch {
	case count <= 0:
		return TitleNone
	case count == 1:
		return TitleSingle
	case count == 2:
		return TitleDual
	default:
		return TitleMany
	}
}

// TitleFormatter renders the title of a summary. name is only set for
// TitleSingle. The UI injects a localized implementation.
type TitleFormatter func(kind TitleKind, count int, name string) string

// DefaultTitle is the formatter used when none is injected.
func DefaultTitle(kind TitleKind, count int, name string) string {
	switch kind {
	case TitleSingle:
		return fmt.Sprintf(config.SummaryTitleSingle, name)
	case TitleDual:
		return config.SummaryTitleDual
	case TitleMany:
		return fmt.Sprintf(config.SummaryTitleMany, count)
	default:
		return config.SummaryTitleNone
	}
}

// Summary is the outcome of a daily match.
type Summary struct {
	Count       int                       `json:"count"`
	Title       string                    `json:"title"`
	DetailLines []string                  `json:"detail_lines"`
	Records     []registry.BirthdayRecord `json:"records"`
	Kind        TitleKind                 `json:"-"`
}

// Notify reports whether the summary warrants a notification.
// A zero-count summary is a normal result, not a failure.
func (s Summary) Notify() bool {
	return s.Count > 0
}

// Body joins at most limit detail lines. A limit <= 0 keeps every line.
func (s Summary) Body(limit int) string {
	lines := s.DetailLines
	if limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return strings.Join(lines, config.DetailSeparator)
}

// DetailLine renders one matching record: "<full name> (<unit>)", or the
// bare full name when the unit is unknown.
func DetailLine(r registry.BirthdayRecord) string {
	if !r.HasUnit() {
		return r.FullName()
	}
	return fmt.Sprintf(config.DetailLineFormat, r.FullName(), r.Unit)
}

// Matches reports whether r has its birthday on today's day and month and
// passes the unit filter. An empty filter selects every record, including
// those without a unit; otherwise the record's unit must be in the filter.
func Matches(r registry.BirthdayRecord, today time.Time, units []string) bool {
	if !r.HasDate() || r.Month != int(today.Month()) || r.Day != today.Day() {
		return false
	}
	if len(units) == 0 {
		return true
	}
	return r.HasUnit() && slices.Contains(units, r.Unit)
}

// Match selects the records having their birthday on today and summarises
// them. Records keep their input order. A nil format uses DefaultTitle.
//
// Feb 29 birthdays only match on Feb 29.
func Match(records []registry.BirthdayRecord, today time.Time, units []string, format TitleFormatter) Summary {
	if format == nil {
		format = DefaultTitle
	}

	s := Summary{
		DetailLines: make([]string, 0),
		Records:     make([]registry.BirthdayRecord, 0),
	}
	for _, r := range records {
		if !Matches(r, today, units) {
			continue
		}
		s.Records = append(s.Records, r)
		s.DetailLines = append(s.DetailLines, DetailLine(r))
	}

	s.Count = len(s.Records)
	s.Kind = KindFor(s.Count)

	name := ""
	if s.Kind == TitleSingle {
		name = s.Records[0].FullName()
	}
	s.Title = format(s.Kind, s.Count, name)

	slog.Debug(config.MsgCheckDone,
		config.LogKeyComponent, config.CompMatcher,
		config.LogKeyRecords, len(records),
		config.LogKeyUnits, len(units),
		config.LogKeyToday, s.Count)
	return s
}
