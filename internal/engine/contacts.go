package engine

import (
	"bytes"
	"fmt"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/registry"
)

// BuildContacts renders the records as a vCard 4.0 address book that can be
// imported back through the vCard reader. Birthdays without a year use the
// truncated --MMDD form; undated records have no BDAY.
func BuildContacts(records []registry.BirthdayRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := vcard.NewEncoder(&buf)

	for _, r := range records {
		card := make(vcard.Card)
		card.SetValue(vcard.FieldVersion, config.VCardVersion)
		card.SetName(&vcard.Name{
			FamilyName: r.Surname,
			GivenName:  r.GivenName,
		})
		card.SetValue(vcard.FieldFormattedName, r.FullName())

		switch {
		case r.HasDate() && r.HasYear():
			card.SetValue(vcard.FieldBirthday, fmt.Sprintf(config.VCardBirthdayFull, r.Year, r.Month, r.Day))
		case r.HasDate():
			card.SetValue(vcard.FieldBirthday, fmt.Sprintf(config.VCardBirthdayNoYear, r.Month, r.Day))
		}
		if r.HasUnit() {
			card.SetValue(vcard.FieldCategories, r.Unit)
		}

		if err := enc.Encode(card); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return buf.Bytes(), nil
}
