package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-scoutalert/internal/registry"
)

func TestForName(t *testing.T) {
	tests := []struct {
		name string
		want Reader
	}{
		{"registro.xlsx", XLSXReader{}},
		{"REGISTRO.XLSM", XLSXReader{}},
		{"/tmp/export.csv", CSVReader{}},
		{`C:\Users\capo\rubrica.vcf`, VCardReader{}},
		{"https://example.com/share/rubrica.vcard", VCardReader{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ForName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForName_Unsupported(t *testing.T) {
	for _, name := range []string{"registro.xls", "registro.ods", "registro", ""} {
		_, err := ForName(name)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
	}
}

func TestDetect(t *testing.T) {
	csvHead := []byte("Cognome;Nome;Data di nascita;Unità\nRossi;Mario;15/03/2010;E/G\n")
	tests := []struct {
		name        string
		source      string
		contentType string
		head        []byte
		want        Reader
	}{
		{"Extension wins", "/share/registro.xlsx", "text/csv", csvHead, XLSXReader{}},
		{"Media type", "/spreadsheets/d/abc/export", "text/csv; charset=utf-8", nil, CSVReader{}},
		{"Media type over unknown extension", "/download.php", "text/csv", nil, CSVReader{}},
		{"Media type case", "/export", "Application/VND.openxmlformats-officedocument.spreadsheetml.sheet", nil, XLSXReader{}},
		{"vCard media type", "/contacts", "text/x-vcard", nil, VCardReader{}},
		{"Zip magic", "/export", "application/octet-stream", []byte("PK\x03\x04\x14\x00\x06\x00"), XLSXReader{}},
		{"vCard magic", "/download", "", []byte("\ufeff\r\nbegin:vcard\r\nVERSION:3.0\r\n"), VCardReader{}},
		{"Plain text", "/export", "application/octet-stream", csvHead, CSVReader{}},
		{"BOM text", "", "", append([]byte("\ufeff"), csvHead...), CSVReader{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.source, tt.contentType, tt.head)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_Unsupported(t *testing.T) {
	// Legacy .xls workbooks are OLE containers.
	ole := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00, 0x00}
	_, err := Detect("/export", "application/vnd.ms-excel", ole)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	// An explicit extension is never second-guessed by sniffing.
	_, err = Detect("registro.ods", "", []byte("Cognome;Nome\nRossi;Mario\n"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Detect("/export", "", nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestBuildTable(t *testing.T) {
	grid := [][]registry.Cell{
		{},
		textRow([]string{"", "  "}),
		textRow([]string{" Cognome ", "Nome"}),
		textRow([]string{"Rossi"}),
		textRow([]string{"Bianchi", "Anna", "extra"}),
	}

	table := buildTable(grid)

	assert.Equal(t, []string{"Cognome", "Nome"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []registry.Cell{registry.TextCell("Rossi"), {}}, table.Rows[0])
	assert.Equal(t, []registry.Cell{registry.TextCell("Bianchi"), registry.TextCell("Anna")}, table.Rows[1])
}

func TestBuildTable_Empty(t *testing.T) {
	assert.Equal(t, registry.RawTable{}, buildTable(nil))
	assert.Equal(t, registry.RawTable{}, buildTable([][]registry.Cell{textRow([]string{" "})}))
}
