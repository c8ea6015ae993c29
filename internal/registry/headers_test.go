package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    HeaderRoleMap
	}{
		{
			name:    "Registry export",
			headers: []string{"Cognome", "Nome", "Data di nascita", "Unità"},
			want:    HeaderRoleMap{RoleSurname: 0, RoleGivenName: 1, RoleBirthDate: 2, RoleUnit: 3},
		},
		{
			name:    "Cognome never binds the given name",
			headers: []string{"Cognome", "Telefono"},
			want:    HeaderRoleMap{RoleSurname: 0},
		},
		{
			name:    "Reordered and decorated",
			headers: []string{"N.", "NOME_PROPRIO", "COGNOME:", "Branca", "Data nascita"},
			want:    HeaderRoleMap{RoleGivenName: 1, RoleSurname: 2, RoleUnit: 3, RoleBirthDate: 4},
		},
		{
			name:    "Keyword priority beats column order",
			headers: []string{"Data iscrizione", "Data di nascita"},
			want:    HeaderRoleMap{RoleBirthDate: 1},
		},
		{
			name:    "Generic date header as fallback",
			headers: []string{"Nome", "Data"},
			want:    HeaderRoleMap{RoleGivenName: 0, RoleBirthDate: 1},
		},
		{
			name:    "Unaccented unit header",
			headers: []string{"Unita'"},
			want:    HeaderRoleMap{RoleUnit: 0},
		},
		{
			name:    "Reparto",
			headers: []string{"reparto"},
			want:    HeaderRoleMap{RoleUnit: 0},
		},
		{
			name:    "First matching header wins",
			headers: []string{"Nome", "Nome"},
			want:    HeaderRoleMap{RoleGivenName: 0},
		},
		{
			name:    "Nothing recognised",
			headers: []string{"Surname", "Birthday"},
			want:    HeaderRoleMap{},
		},
		{
			name:    "No headers",
			headers: nil,
			want:    HeaderRoleMap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectHeaders(tt.headers))
		})
	}
}

func TestHeaderWords(t *testing.T) {
	words := headerWords("  Unità / Branca  ")
	assert.Contains(t, words, "unità")
	assert.Contains(t, words, "unita")
	assert.Contains(t, words, "branca")
	assert.NotContains(t, words, "/")
}
