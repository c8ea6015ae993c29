package ui

import (
	"log/slog"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/engine"
)

// unitChoices returns the units offered in the subscription window: every
// unit found in the records plus subscribed units no longer present, so a
// stale subscription can still be removed.
func unitChoices(available, subscribed []string) []string {
	choices := slices.Clone(available)
	for _, u := range subscribed {
		if !slices.Contains(choices, u) {
			choices = append(choices, u)
		}
	}
	slices.Sort(choices)
	return choices
}

// ShowUnitsWindow lets the user pick the units to be notified for. An empty
// selection means every unit.
func (app *ScoutAlertApp) ShowUnitsWindow() {
	if app.unitsWindow != nil {
		app.unitsWindow.RequestFocus()
		return
	}

	records, err := app.Store.Load()
	if err != nil {
		slog.Error(config.ErrStoreRead, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		return
	}
	subscribed, err := app.Store.LoadUnitSubscriptions()
	if err != nil {
		slog.Error(config.ErrStoreRead, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		return
	}

	slog.Info(config.LogMsgOpenUnits,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyUnits, subscribed)

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinUnits))
	app.unitsWindow = w

	choices := unitChoices(engine.AvailableUnits(records), subscribed)
	checks := widget.NewCheckGroup(choices, nil)
	checks.SetSelected(subscribed)

	help := widget.NewLabel(app.GetMsg(config.TKeyHelpUnits))
	help.Wrapping = fyne.TextWrapWord

	var body fyne.CanvasObject = checks
	if len(choices) == 0 {
		body = widget.NewLabel(app.GetMsg(config.TKeyLblNoUnits))
	}

	btnAll := widget.NewButton(app.GetMsg(config.TKeyBtnSelectAll), func() {
		checks.SetSelected(slices.Clone(choices))
	})
	btnNone := widget.NewButton(app.GetMsg(config.TKeyBtnSelectNone), func() {
		checks.SetSelected(nil)
	})

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := app.Store.SaveUnitSubscriptions(checks.Selected); err != nil {
			dialog.ShowError(err, w)
			return
		}
		go func() { _, _ = app.refresh(app.Ctx) }()
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	content := container.NewBorder(
		help,
		container.NewVBox(
			container.NewGridWithColumns(config.LayoutColumnsDouble, btnAll, btnNone),
			container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		),
		nil, nil,
		container.NewVScroll(body),
	)

	w.SetContent(container.NewPadded(content))
	w.Resize(fyne.NewSize(config.UnitsWinWidth, config.BirthdaysWinHeight))
	w.SetOnClosed(func() { app.unitsWindow = nil })
	w.Show()
}
