package sheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-scoutalert/internal/registry"
)

func TestCSVReader_Delimiters(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Semicolon", "Cognome;Nome;Data di nascita;Unità\nRossi;Mario;15/03/2010;E/G\n"},
		{"Comma", "Cognome,Nome,Data di nascita,Unità\nRossi,Mario,15/03/2010,E/G\n"},
		{"Tab", "Cognome\tNome\tData di nascita\tUnità\nRossi\tMario\t15/03/2010\tE/G\n"},
		{"BOM and CRLF", "\ufeffCognome;Nome;Data di nascita;Unità\r\nRossi;Mario;15/03/2010;E/G\r\n"},
		{"Leading blank lines", "\n\nCognome;Nome;Data di nascita;Unità\nRossi;Mario;15/03/2010;E/G"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := CSVReader{}.Read(strings.NewReader(tt.input))
			require.NoError(t, err)

			assert.Equal(t, []string{"Cognome", "Nome", "Data di nascita", "Unità"}, table.Headers)
			require.Len(t, table.Rows, 1)
			assert.Equal(t, textRow([]string{"Rossi", "Mario", "15/03/2010", "E/G"}), table.Rows[0])
		})
	}
}

func TestCSVReader_QuotedFieldsAndRaggedRows(t *testing.T) {
	input := "Cognome,Nome,\"Data; nascita\",Unità\n" +
		"\"De Rossi, Jr\",Mario\n" +
		"Bianchi,Anna,01/02/2011,L/C,extra\n"

	table, err := CSVReader{}.Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "Data; nascita", table.Headers[2])
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []registry.Cell{registry.TextCell("De Rossi, Jr"), registry.TextCell("Mario"), {}, {}}, table.Rows[0])
	assert.Len(t, table.Rows[1], 4)
}

func TestCSVReader_ForcedDelimiter(t *testing.T) {
	table, err := CSVReader{Comma: '|'}.Read(strings.NewReader("Cognome|Nome\nRossi|Mario\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Cognome", "Nome"}, table.Headers)
}

func TestCSVReader_Empty(t *testing.T) {
	table, err := CSVReader{}.Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestCSVReader_TooLarge(t *testing.T) {
	input := "Cognome;Nome;Data di nascita;Unità\n" +
		"Rossi;Mario;15/03/2010;E/G\n" +
		"Bianchi;Anna;29/02/2012;L/C\n"

	_, err := CSVReader{MaxBytes: int64(len(input) - 5)}.Read(strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooLarge, "an oversized export is rejected, not cut short")

	table, err := CSVReader{MaxBytes: int64(len(input))}.Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ';', sniffDelimiter([]byte("a;b;c\n1,2,3")))
	assert.Equal(t, ',', sniffDelimiter([]byte("a,b;c,d")))
	assert.Equal(t, ';', sniffDelimiter([]byte("a;b,c")), "ties keep candidate order")
	assert.Equal(t, ',', sniffDelimiter([]byte("single")))
	assert.Equal(t, '\t', sniffDelimiter([]byte("\"x;y;z\"\ta\tb")))
}
