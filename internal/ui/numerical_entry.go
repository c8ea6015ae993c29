package ui

import (
	"unicode/utf8"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts digits typed from the
// keyboard. It backs the port field and the day/month/year fields of the
// record editor.
type NumericalEntry struct {
	widget.Entry

	// MaxDigits caps the typed length; 0 means unlimited.
	MaxDigits int
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// NewLimitedNumericalEntry creates a NumericalEntry accepting at most
// maxDigits digits.
func NewLimitedNumericalEntry(maxDigits int) *NumericalEntry {
	entry := NewNumericalEntry()
	entry.MaxDigits = maxDigits
	return entry
}

// TypedRune filters characters to allow only digits (0-9).
func (e *NumericalEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	if e.MaxDigits > 0 && utf8.RuneCountInString(e.Text) >= e.MaxDigits {
		return
	}
	// Pasted text bypasses this filter; the validators catch it.
	e.Entry.TypedRune(r)
}

// Keyboard requests a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
