package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/scheduler"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	modeSelect    *widget.Select
	urlEntry      *widget.Entry
	userEntry     *widget.Entry
	passEntry     *widget.Entry
	pathEntry     *widget.Entry
	scheduleEntry *widget.Entry
	entryPort     *NumericalEntry
}

// validatePort accepts a TCP port number (1-65535).
func (app *ScoutAlertApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// validateSchedule accepts a standard cron expression.
func (app *ScoutAlertApp) validateSchedule(s string) error {
	if scheduler.ValidateSpec(s) != nil {
		return errors.New(app.GetMsg(config.TKeyErrSchedule))
	}
	return nil
}

// lastImportText renders the time of the last successful import.
func (app *ScoutAlertApp) lastImportText() string {
	when := app.GetMsg(config.TKeyLblNever)
	if raw := app.Preferences.String(config.PrefLastImport); raw != "" {
		if t, err := time.Parse(config.ImportTimestamp, raw); err == nil {
			when = t.Local().Format(config.ImportTimeDisplay)
		}
	}
	msg, err := app.localize(config.TKeyLblLastImport, map[string]any{"Time": when}, nil)
	if err != nil {
		return when
	}
	return msg
}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *ScoutAlertApp) ShowSettingsWindow() {
	if app.Window != nil {
		slog.Debug(config.LogMsgFocusSettings, config.LogKeyComponent, config.CompUISet)
		app.Window.RequestFocus()
		return
	}

	slog.Info(config.LogMsgOpenSettings, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	sw := &settingsWidgets{}

	// refreshLayout resizes the window when the source mode toggles fields.
	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	// --- Language ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	// --- Source ---
	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeLocal),
		app.GetMsg(config.TKeyModeWeb),
	}, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefWebURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)

	// --- General ---
	sw.scheduleEntry = widget.NewEntry()
	sw.scheduleEntry.SetText(app.Preferences.StringWithFallback(config.PrefCheckSpec, config.DefaultCheckSpec))
	sw.scheduleEntry.PlaceHolder = config.PlaceholderSchedule
	sw.scheduleEntry.Validator = app.validateSchedule

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemSchedule := widget.NewFormItem(app.GetMsg(config.TKeyLblSchedule), sw.scheduleEntry)
	itemSchedule.HintText = app.GetMsg(config.TKeyHelpSchedule)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	generalForm := widget.NewForm(itemLang, itemSchedule, itemPort)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", generalForm)

	// --- Actions ---
	saveAction := func() {
		for _, v := range []fyne.Validatable{sw.entryPort, sw.scheduleEntry} {
			if err := v.Validate(); err != nil {
				dialog.ShowError(err, w)
				return
			}
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version) +
		"\n" + app.lastImportText())
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		sourceCard,
		generalCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		minSize := paddedContent.MinSize()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, minSize.Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.Window = nil })

	refreshLayout()
	w.Show()
}

// buildSourceCard constructs the source selection UI.
func (app *ScoutAlertApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{
			config.ExtXLSX, config.ExtXLSM, config.ExtCSV, config.ExtVCF, config.ExtVCard,
		}))
		d.Show()
	})

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)
	itemUser := widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry)
	itemPass := widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry)
	webForm := widget.NewForm(itemURL, itemUser, itemPass)

	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	applyVisibility := func(mode string) {
		if mode == app.GetMsg(config.TKeyModeWeb) {
			webForm.Show()
			localForm.Hide()
		} else {
			webForm.Hide()
			localForm.Show()
		}
	}
	sw.modeSelect.OnChanged = func(mode string) {
		applyVisibility(mode)
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	if app.Preferences.String(config.PrefSourceMode) == config.SourceModeWeb {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeWeb))
	} else {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeLocal))
	}
	applyVisibility(sw.modeSelect.Selected)

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "", container.NewVBox(sw.modeSelect, webForm, localForm))
}

// saveSettings persists the settings and applies them to the running app.
// The schedule change reaches the scheduler through the preference listener.
func (app *ScoutAlertApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSaving, config.LogKeyComponent, config.CompUISet)

	mode := config.SourceModeLocal
	if sw.modeSelect.Selected == app.GetMsg(config.TKeyModeWeb) {
		mode = config.SourceModeWeb
	}

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefSourceMode, mode)
	app.Preferences.SetString(config.PrefWebURL, strings.TrimSpace(sw.urlEntry.Text))
	app.Preferences.SetString(config.PrefUsername, strings.TrimSpace(sw.userEntry.Text))
	app.Preferences.SetString(config.PrefLocalPath, strings.TrimSpace(sw.pathEntry.Text))
	app.Preferences.SetString(config.PrefCheckSpec, strings.TrimSpace(sw.scheduleEntry.Text))

	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	// Save password to Keyring only if provided
	if user := strings.TrimSpace(sw.userEntry.Text); user != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, user, sw.passEntry.Text); err != nil {
			slog.Error(config.MsgCredsSaveFail, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	// Feeds carry localized titles.
	go func() { _, _ = app.refresh(app.Ctx) }()
}
