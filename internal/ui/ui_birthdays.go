package ui

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
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

// birthdayList is the view model behind the birthdays table: the stored
// entries, the active filters and the sort state.
type birthdayList struct {
	all   []engine.Entry
	shown []engine.Entry

	query string
	unit  string // "" shows every unit

	sortCol int
	sortAsc bool
}

func newBirthdayList(entries []engine.Entry) *birthdayList {
	l := &birthdayList{sortCol: config.ColIDDate, sortAsc: true}
	l.setEntries(entries)
	return l
}

func (l *birthdayList) setEntries(entries []engine.Entry) {
	l.all = entries
	l.apply()
}

// apply recomputes the visible rows.
func (l *birthdayList) apply() {
	l.shown = engine.FilterEntries(l.all, l.query, l.unit)
	sortEntries(l.shown, l.sortCol, l.sortAsc)
}

// toggleSort sorts by col, flipping the direction when col is already active.
func (l *birthdayList) toggleSort(col int) {
	if l.sortCol == col {
		l.sortAsc = !l.sortAsc
	} else {
		l.sortCol = col
		l.sortAsc = true
	}
	l.apply()
}

func (l *birthdayList) units() []string {
	records := make([]registry.BirthdayRecord, len(l.all))
	for i, e := range l.all {
		records[i] = e.Record
	}
	return engine.AvailableUnits(records)
}

// sortEntries orders entries by column. Ties fall back to the calendar
// order so the result is deterministic.
func sortEntries(entries []engine.Entry, col int, asc bool) {
	slices.SortStableFunc(entries, func(a, b engine.Entry) int {
		c := compareColumn(a, b, col)
		if c == 0 && col != config.ColIDDate {
			c = engine.CompareCalendar(a.Record, b.Record)
		}
		if !asc {
			return -c
		}
		return c
	})
}

func compareColumn(a, b engine.Entry, col int) int {
	switch col {
	case config.ColIDName:
		return engine.CompareName(a.Record, b.Record)
	case config.ColIDUnit:
		// Unknown units sort last.
		if a.Record.HasUnit() != b.Record.HasUnit() {
			if a.Record.HasUnit() {
				return -1
			}
			return 1
		}
		return cmp.Compare(strings.ToLower(a.Record.Unit), strings.ToLower(b.Record.Unit))
	case config.ColIDAge:
		// Unknown ages sort last.
		ka, kb := ageKnown(a), ageKnown(b)
		if ka != kb {
			if ka {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.AgeNext, b.AgeNext)
	default:
		return engine.CompareCalendar(a.Record, b.Record)
	}
}

func ageKnown(e engine.Entry) bool {
	return e.Record.HasYear() && e.Record.HasDate()
}

// cellText renders one table cell.
func cellText(e engine.Entry, col int) string {
	r := e.Record
	switch col {
	case config.ColIDName:
		return r.DisplayName()
	case config.ColIDDate:
		switch {
		case !r.HasDate():
			return config.DateUnknown
		case r.HasYear():
			return fmt.Sprintf(config.DateFormatFull, r.Day, r.Month, r.Year)
		default:
			return fmt.Sprintf(config.DateFormatDayMonth, r.Day, r.Month)
		}
	case config.ColIDUnit:
		if !r.HasUnit() {
			return config.AgeUnknown
		}
		return r.Unit
	case config.ColIDAge:
		if !ageKnown(e) {
			return config.AgeUnknown
		}
		if e.AgeNext <= 0 {
			return strconv.Itoa(0)
		}
		// Show the transition: "PrevAge → NextAge".
		return fmt.Sprintf(config.AgeTransitionFormat, e.AgeNext-1, e.AgeNext)
	}
	return ""
}

// birthdaysView holds the widgets of the open birthdays window.
type birthdaysView struct {
	window     fyne.Window
	list       *birthdayList
	table      *widget.Table
	unitSelect *widget.Select
}

// ShowBirthdaysWindow displays every stored birthday, filterable by name
// and unit and sortable by column. Only one instance is open at a time.
func (app *ScoutAlertApp) ShowBirthdaysWindow() {
	if app.birthdays != nil {
		app.birthdays.window.RequestFocus()
		return
	}

	records, err := app.Store.Load()
	if err != nil {
		slog.Error(config.ErrStoreRead, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		app.App.SendNotification(fyne.NewNotification(config.AppName, err.Error()))
		return
	}

	v := &birthdaysView{list: newBirthdayList(engine.BuildEntries(records, app.now()))}
	v.window = app.App.NewWindow(app.GetMsg(config.TKeyWinBirthdays))
	v.window.Resize(fyne.NewSize(config.BirthdaysWinWidth, config.BirthdaysWinHeight))
	app.birthdays = v

	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(records))

	v.table = app.buildBirthdaysTable(v)

	search := widget.NewEntry()
	search.SetPlaceHolder(app.GetMsg(config.TKeyLblSearch))
	search.OnChanged = func(s string) {
		v.list.query = s
		v.list.apply()
		v.table.Refresh()
	}

	allUnits := app.GetMsg(config.TKeyLblAllUnits)
	v.unitSelect = widget.NewSelect(nil, func(s string) {
		if s == allUnits {
			s = ""
		}
		v.list.unit = s
		v.list.apply()
		v.table.Refresh()
	})
	app.refreshUnitOptions(v)

	btnAdd := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAdd), theme.ContentAddIcon(), func() {
		app.ShowEditor(nil)
	})

	searchBox := container.NewGridWrap(fyne.NewSize(config.SearchMinWidth, search.MinSize().Height), search)
	toolbar := container.NewBorder(nil, nil, searchBox, btnAdd, v.unitSelect)

	v.window.SetContent(container.NewBorder(toolbar, nil, nil, nil, v.table))
	v.window.SetOnClosed(func() {
		app.birthdays = nil
	})
	v.window.Show()
}

func (app *ScoutAlertApp) buildBirthdaysTable(v *birthdaysView) *widget.Table {
	table := widget.NewTable(
		func() (int, int) {
			return len(v.list.shown), config.ColumnsLen
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(v.list.shown) {
				label.SetText("")
				return
			}
			label.SetText(cellText(v.list.shown[id.Row], id.Col))
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(config.TablePlaceholder, func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		text := app.GetMsg(columnKey(id.Col))
		if id.Col == v.list.sortCol {
			if v.list.sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			v.list.toggleSort(id.Col)
			slog.Debug(config.LogMsgSorted,
				config.LogKeyComponent, config.CompUI,
				config.LogKeySortCol, v.list.sortCol,
				config.LogKeySortAsc, v.list.sortAsc)
			table.Refresh()
		}
	}

	table.OnSelected = func(id widget.TableCellID) {
		table.UnselectAll()
		if id.Row < 0 || id.Row >= len(v.list.shown) {
			return
		}
		entry := v.list.shown[id.Row]
		app.ShowEditor(&entry)
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDUnit, config.ColWidthUnit)
	table.SetColumnWidth(config.ColIDAge, config.ColWidthAge)
	return table
}

func columnKey(col int) string {
	switch col {
	case config.ColIDName:
		return config.TKeyColName
	case config.ColIDUnit:
		return config.TKeyColUnit
	case config.ColIDAge:
		return config.TKeyColAge
	default:
		return config.TKeyColDate
	}
}

func (app *ScoutAlertApp) refreshUnitOptions(v *birthdaysView) {
	allUnits := app.GetMsg(config.TKeyLblAllUnits)
	v.unitSelect.SetOptions(append([]string{allUnits}, v.list.units()...))
	if v.list.unit == "" || !slices.Contains(v.unitSelect.Options, v.list.unit) {
		v.list.unit = ""
		v.unitSelect.SetSelected(allUnits)
		return
	}
	v.unitSelect.SetSelected(v.list.unit)
}

// reloadBirthdays refreshes the open birthdays window from the store.
func (app *ScoutAlertApp) reloadBirthdays() {
	v := app.birthdays
	if v == nil {
		return
	}
	records, err := app.Store.Load()
	if err != nil {
		slog.Error(config.ErrStoreRead, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		dialog.ShowError(err, v.window)
		return
	}
	v.list.setEntries(engine.BuildEntries(records, app.now()))
	app.refreshUnitOptions(v)
	v.table.Refresh()
}
