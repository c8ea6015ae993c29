package sheet

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitReader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int64
		want    string
		wantErr bool
	}{
		{"Under limit", "Rossi;Mario", 64, "Rossi;Mario", false},
		{"Exactly at limit", "Rossi;Mario", 11, "Rossi;Mario", false},
		{"One byte over", "Rossi;Mario!", 11, "Rossi;Mario", true},
		{"Far over", strings.Repeat("x", 4096), 10, "xxxxxxxxxx", true},
		{"Empty", "", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(LimitReader(strings.NewReader(tt.input), tt.limit))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTooLarge)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestLimitReader_SmallReads(t *testing.T) {
	// One byte per Read call still trips the limit.
	r := LimitReader(iotest.OneByteReader(strings.NewReader("abcdef")), 3)
	got, err := io.ReadAll(r)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Equal(t, "abc", string(got))

	_, err = r.Read(make([]byte, 8))
	assert.ErrorIs(t, err, ErrTooLarge, "the error is sticky")
}
