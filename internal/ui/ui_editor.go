package ui

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/engine"
	"github.com/tartampluch/go-scoutalert/internal/registry"
)

// editorInput is the raw text of the editor fields.
type editorInput struct {
	GivenName string
	Surname   string
	Unit      string
	Day       string
	Month     string
	Year      string
}

// editorWidgets holds references to the editor fields.
type editorWidgets struct {
	givenEntry   *widget.Entry
	surnameEntry *widget.Entry
	unitEntry    *widget.SelectEntry
	dayEntry     *NumericalEntry
	monthEntry   *NumericalEntry
	yearEntry    *NumericalEntry
}

func (ew *editorWidgets) input() editorInput {
	return editorInput{
		GivenName: ew.givenEntry.Text,
		Surname:   ew.surnameEntry.Text,
		Unit:      ew.unitEntry.Text,
		Day:       ew.dayEntry.Text,
		Month:     ew.monthEntry.Text,
		Year:      ew.yearEntry.Text,
	}
}

// parseRecord converts editor input into a validated record. An empty year
// means unknown.
func (app *ScoutAlertApp) parseRecord(in editorInput) (registry.BirthdayRecord, error) {
	var nums [3]int
	for i, s := range []string{in.Day, in.Month, in.Year} {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return registry.BirthdayRecord{}, errors.New(app.GetMsg(config.TKeyErrDate))
		}
		nums[i] = n
	}
	return registry.NewRecord(in.GivenName, in.Surname, in.Unit, nums[0], nums[1], nums[2])
}

// saveRecord appends r when index is negative, otherwise replaces the
// record stored at index.
func (app *ScoutAlertApp) saveRecord(index int, r registry.BirthdayRecord) error {
	var err error
	if index < 0 {
		err = app.Store.Append(r)
	} else {
		err = app.Store.Replace(index, r)
	}
	if err != nil {
		return err
	}

	slog.Info(config.MsgRecordSaved,
		config.LogKeyComponent, config.CompUIEditor,
		config.LogKeyIndex, index,
		config.LogKeyName, r.FullName())
	app.afterEdit()
	return nil
}

func (app *ScoutAlertApp) deleteRecord(index int) error {
	if err := app.Store.Remove(index); err != nil {
		return err
	}
	slog.Info(config.MsgRecordDeleted,
		config.LogKeyComponent, config.CompUIEditor,
		config.LogKeyIndex, index)
	app.afterEdit()
	return nil
}

// afterEdit refreshes the views and feeds that depend on the store.
func (app *ScoutAlertApp) afterEdit() {
	app.reloadBirthdays()
	go func() { _, _ = app.refresh(app.Ctx) }()
}

// ShowEditor opens the record editor. A nil entry creates a new record.
func (app *ScoutAlertApp) ShowEditor(entry *engine.Entry) {
	if app.editorWindow != nil {
		app.editorWindow.Close()
	}

	index := -1
	titleKey := config.TKeyEditorNew
	var current registry.BirthdayRecord
	if entry != nil {
		index = entry.Index
		titleKey = config.TKeyEditorEdit
		current = entry.Record
	}

	slog.Info(config.LogMsgOpenEditor,
		config.LogKeyComponent, config.CompUIEditor,
		config.LogKeyIndex, index)

	w := app.App.NewWindow(app.GetMsg(titleKey))
	app.editorWindow = w

	var units []string
	if records, err := app.Store.Load(); err == nil {
		units = engine.AvailableUnits(records)
	}

	ew := &editorWidgets{
		givenEntry:   widget.NewEntry(),
		surnameEntry: widget.NewEntry(),
		unitEntry:    widget.NewSelectEntry(units),
		dayEntry:     NewLimitedNumericalEntry(config.DayMaxDigits),
		monthEntry:   NewLimitedNumericalEntry(config.MonthMaxDigits),
		yearEntry:    NewLimitedNumericalEntry(config.YearMaxDigits),
	}
	ew.givenEntry.SetText(current.GivenName)
	ew.surnameEntry.SetText(current.Surname)
	ew.unitEntry.SetText(current.Unit)
	if current.HasDate() {
		ew.dayEntry.SetText(strconv.Itoa(current.Day))
		ew.monthEntry.SetText(strconv.Itoa(current.Month))
	}
	if current.HasYear() {
		ew.yearEntry.SetText(strconv.Itoa(current.Year))
	}

	dateRow := container.NewGridWithColumns(config.LayoutColumnsTriple,
		container.NewBorder(nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblDay)), nil, ew.dayEntry),
		container.NewBorder(nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblMonth)), nil, ew.monthEntry),
		container.NewBorder(nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblYear)), nil, ew.yearEntry),
	)

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblGivenName), ew.givenEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblSurname), ew.surnameEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblUnit), ew.unitEntry),
	)

	saveAction := func() {
		r, err := app.parseRecord(ew.input())
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if err := app.saveRecord(index, r); err != nil {
			dialog.ShowError(err, w)
			return
		}
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	buttons := container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave)
	if index >= 0 {
		btnDelete := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnDelete), theme.DeleteIcon(), func() {
			msg, err := app.localize(config.TKeyConfirmDelete, map[string]any{"Name": current.FullName()}, nil)
			if err != nil {
				msg = current.FullName()
			}
			dialog.ShowConfirm(app.GetMsg(config.TKeyBtnDelete), msg, func(ok bool) {
				if !ok {
					return
				}
				if err := app.deleteRecord(index); err != nil {
					dialog.ShowError(err, w)
					return
				}
				w.Close()
			}, w)
		})
		btnDelete.Importance = widget.DangerImportance
		buttons = container.NewGridWithColumns(config.LayoutColumnsTriple, btnDelete, btnCancel, btnSave)
	}

	content := container.NewPadded(container.NewVBox(form, dateRow, buttons))
	w.SetContent(content)
	w.Resize(fyne.NewSize(config.EditorWinWidth, content.MinSize().Height))
	w.SetOnClosed(func() {
		if app.editorWindow == w {
			app.editorWindow = nil
		}
	})
	w.Show()
}
