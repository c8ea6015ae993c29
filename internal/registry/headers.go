package registry

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type roleCandidates struct {
	role     Role
	keywords []string
}

// headerCandidates lists, per role, the header words that identify it in
// priority order.
var headerCandidates = []roleCandidates{
	{RoleSurname, []string{"cognome"}},
	{RoleGivenName, []string{"nome"}},
	{RoleBirthDate, []string{"nascita", "data"}},
	{RoleUnit, []string{"unita", "unità", "branca", "reparto"}},
}

// DetectHeaders binds each role to the first header containing one of its
// keywords as a whole word. "Cognome" therefore never binds the given-name
// role even though it contains "nome". Roles without a match are absent.
func DetectHeaders(headers []string) HeaderRoleMap {
	words := make([]map[string]struct{}, len(headers))
	for i, h := range headers {
		words[i] = headerWords(h)
	}

	roles := make(HeaderRoleMap, len(headerCandidates))
	for _, c := range headerCandidates {
		if idx, ok := findColumn(words, c.keywords); ok {
			roles[c.role] = idx
		}
	}
	return roles
}

func findColumn(words []map[string]struct{}, keywords []string) (int, bool) {
	for _, kw := range keywords {
		for idx, set := range words {
			if _, ok := set[kw]; ok {
				return idx, true
			}
		}
	}
	return 0, false
}

// headerWords lower-cases a header, turns every rune that is not a letter or
// digit into a separator and returns the resulting words. Accent-folded
// variants are included so "Unità" yields both "unità" and "unita".
func headerWords(header string) map[string]struct{} {
	set := make(map[string]struct{})
	lower := strings.ToLower(header)
	for _, form := range []string{lower, foldAccents(lower)} {
		for _, w := range strings.Fields(strings.Map(alnumOrSpace, form)) {
			set[w] = struct{}{}
		}
	}
	return set
}

func alnumOrSpace(r rune) rune {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return r
	}
	return ' '
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
