package registry

import (
	"strings"

	"github.com/tartampluch/go-scoutalert/internal/config"
)

type unitBucket struct {
	label    string
	keywords []string
}

// unitBuckets is checked in order; the first bucket with a keyword
// contained in the cleaned label wins.
var unitBuckets = []unitBucket{
	{config.UnitLabelCommunity, []string{"coca", "comunit", "adult"}},
	{config.UnitLabelCubs, []string{"lc", "l c", "lupetti", "coccinell"}},
	{config.UnitLabelScouts, []string{"eg", "e g", "esploratori", "guide"}},
	{config.UnitLabelRovers, []string{"rs", "r s", "rover", "scolte", "noviziato", "novizi"}},
}

var unitPunctuation = strings.NewReplacer(".", "", "-", " ", "/", "")

// NormalizeUnit maps a free-text unit label onto the unit taxonomy.
// Labels that match no bucket are returned trimmed but otherwise verbatim.
func NormalizeUnit(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	cleaned := strings.TrimSpace(strings.Map(dropDigit, strings.ToLower(trimmed)))
	cleaned = strings.TrimSpace(unitPunctuation.Replace(cleaned))

	for _, b := range unitBuckets {
		for _, kw := range b.keywords {
			if strings.Contains(cleaned, kw) {
				return b.label
			}
		}
	}
	return trimmed
}

func dropDigit(r rune) rune {
	if r >= '0' && r <= '9' {
		return -1
	}
	return r
}
