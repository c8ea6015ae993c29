// Package ui is the system tray shell of Scout Alert: tray menu,
// notifications, settings and the birthday windows.
package ui

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/engine"
	"github.com/tartampluch/go-scoutalert/internal/registry"
	"github.com/tartampluch/go-scoutalert/internal/scheduler"
	"github.com/tartampluch/go-scoutalert/internal/server"
	"github.com/tartampluch/go-scoutalert/internal/store"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// RecordStore is the persistence used by the UI, including the editor
// operations.
type RecordStore interface {
	store.Store
	Append(r registry.BirthdayRecord) error
	Replace(index int, r registry.BirthdayRecord) error
	Remove(index int) error
}

// ScoutAlertApp encapsulates the UI state, preferences, and background logic.
type ScoutAlertApp struct {
	App         fyne.App
	Window      fyne.Window // settings window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Store     RecordStore
	Server    *server.FeedServer
	Fetcher   engine.SourceFetcher
	Clock     engine.Clock // Injected clock for testability
	Scheduler *scheduler.Scheduler

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem    *fyne.MenuItem
	TrayCheckItem     *fyne.MenuItem
	TrayImportItem    *fyne.MenuItem
	TrayBirthdaysItem *fyne.MenuItem
	TrayUnitsItem     *fyne.MenuItem
	TraySettingsItem  *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	// Last check result, re-rendered when the language changes.
	statusMut   sync.Mutex
	statusCount int

	birthdays    *birthdaysView
	unitsWindow  fyne.Window
	editorWindow fyne.Window
}

// NewScoutAlertApp constructs the application and wires dependencies.
func NewScoutAlertApp(a fyne.App, ctx context.Context, st RecordStore, srv *server.FeedServer, fetcher engine.SourceFetcher) *ScoutAlertApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &ScoutAlertApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Store:              st,
		Server:             srv,
		Fetcher:            fetcher,
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
	}
}

// Run launches the application services and the main UI loop.
func (app *ScoutAlertApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	sch, err := scheduler.New(app.checkSpec(), app.runCheck)
	if err != nil {
		// checkSpec already validated; only a programming error lands here.
		slog.Error(config.ErrCronSpec, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
	} else {
		app.Scheduler = sch
		go sch.Start(app.Ctx)
		go app.backgroundWorker()
	}

	app.App.Run()
}

// watchPreferences forwards preference changes to the background worker.
func (app *ScoutAlertApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefCheckSpec:
		default:
		}
	})
}

// backgroundWorker applies schedule changes made in the settings window.
func (app *ScoutAlertApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompUI)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgCtxCancel)
			return

		case <-app.configChan:
			if app.Scheduler == nil {
				continue
			}
			if err := app.Scheduler.Reschedule(app.checkSpec()); err != nil {
				log.Error(config.ErrCronSpec, config.LogKeyError, err)
			}
		}
	}
}

// checkSpec returns the stored check schedule, or the default one when the
// stored value is not a valid cron expression.
func (app *ScoutAlertApp) checkSpec() string {
	spec := app.Preferences.StringWithFallback(config.PrefCheckSpec, config.DefaultCheckSpec)
	if err := scheduler.ValidateSpec(spec); err != nil {
		slog.Warn(config.MsgScheduleBad,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySchedule, spec,
			config.LogKeyError, err)
		return config.DefaultCheckSpec
	}
	return spec
}

// setupTrayMenu constructs the system tray menu.
func (app *ScoutAlertApp) setupTrayMenu() {
	// The status item doubles as a shortcut to the birthdays window.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowBirthdaysWindow()
	})

	app.TrayCheckItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuCheck), func() {
		app.TriggerCheck()
	})
	app.TrayImportItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuImport), func() {
		go app.runImport(true)
	})
	app.TrayBirthdaysItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuBirthdays), func() {
		app.ShowBirthdaysWindow()
	})
	app.TrayUnitsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuUnits), func() {
		app.ShowUnitsWindow()
	})
	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayCheckItem,
		app.TrayImportItem,
		fyne.NewMenuItemSeparator(),
		app.TrayBirthdaysItem,
		app.TrayUnitsItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *ScoutAlertApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayCheckItem.Label = app.GetMsg(config.TKeyMenuCheck)
	app.TrayImportItem.Label = app.GetMsg(config.TKeyMenuImport)
	app.TrayBirthdaysItem.Label = app.GetMsg(config.TKeyMenuBirthdays)
	app.TrayUnitsItem.Label = app.GetMsg(config.TKeyMenuUnits)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)

	app.statusMut.Lock()
	count := app.statusCount
	app.statusMut.Unlock()
	app.updateTrayStatus(count)
}

// TriggerCheck requests an on-demand check. Without a running scheduler
// the check runs in its own goroutine.
func (app *ScoutAlertApp) TriggerCheck() {
	if app.Scheduler != nil {
		app.Scheduler.TriggerNow()
		return
	}
	go app.runCheck(app.Ctx, true)
}

// runCheck is the scheduler job: match today's birthdays, refresh the
// feeds and notify.
func (app *ScoutAlertApp) runCheck(ctx context.Context, manual bool) {
	slog.Info(config.MsgCheckReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	summary, err := app.refresh(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifCheckErr)))
		}
		return
	}

	// A zero-count result only surfaces when the user asked for it.
	if summary.Notify() {
		app.App.SendNotification(fyne.NewNotification(summary.Title, summary.Body(config.MaxDetailLines)))
	} else if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, summary.Title))
	}
}

// refresh runs the daily match and updates the feeds and the tray status
// without notifying.
func (app *ScoutAlertApp) refresh(ctx context.Context) (engine.Summary, error) {
	checker := &engine.Checker{
		Store:       app.Store,
		Clock:       app.Clock,
		FormatTitle: app.buildTitleFormatter(),
	}

	summary, err := checker.Check(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error(config.MsgCheckFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
			app.updateTrayStatus(-1)
		}
		return engine.Summary{}, err
	}

	app.publishFeeds(summary)
	app.updateTrayStatus(summary.Count)
	return summary, nil
}

// publishFeeds regenerates the calendar, contacts and today feeds.
func (app *ScoutAlertApp) publishFeeds(summary engine.Summary) {
	if app.Server == nil {
		return
	}
	log := slog.With(config.LogKeyComponent, config.CompUI)

	if err := app.Server.UpdateToday(summary); err != nil {
		log.Error(config.MsgFeedsFailed, config.LogKeyRoute, config.RouteToday, config.LogKeyError, err)
	}

	records, err := app.Store.Load()
	if err != nil {
		log.Error(config.MsgFeedsFailed, config.LogKeyError, err)
		return
	}

	ics, err := engine.BuildCalendar(records, app.now(), app.buildSummaryFormatter())
	if err != nil {
		log.Error(config.MsgFeedsFailed, config.LogKeyRoute, config.RouteCalendar, config.LogKeyError, err)
	} else {
		app.Server.UpdateCalendar(ics)
	}

	vcf, err := engine.BuildContacts(records)
	if err != nil {
		log.Error(config.MsgFeedsFailed, config.LogKeyRoute, config.RouteContacts, config.LogKeyError, err)
	} else {
		app.Server.UpdateContacts(vcf)
	}
}

// runImport replaces the stored records with the configured registry
// extract, then runs a check so feeds and tray reflect the new data.
func (app *ScoutAlertApp) runImport(manual bool) {
	log := slog.With(config.LogKeyComponent, config.CompUI)
	cfg := app.loadSourceConfig()

	importer := &engine.Importer{Fetcher: app.Fetcher, Store: app.Store}
	records, err := importer.Run(app.Ctx, cfg)
	if err != nil {
		log.Error(config.MsgImportFailed, config.LogKeyMode, cfg.Mode, config.LogKeyError, err)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleImportError, app.GetMsg(config.TKeyNotifImportErr)))
		}
		return
	}

	app.Preferences.SetString(config.PrefLastImport, app.now().Format(config.ImportTimestamp))

	if manual {
		msg, err := app.localize(config.TKeyNotifImportOK, map[string]any{"Count": len(records)}, len(records))
		if err != nil {
			msg = fmt.Sprintf(config.FallbackImportOK, len(records))
		}
		app.App.SendNotification(fyne.NewNotification(config.AppName, msg))
	}

	fyne.Do(app.reloadBirthdays)
	app.runCheck(app.Ctx, false)
}

// updateTrayStatus shows how many birthdays are today; a negative count
// reports a failed check.
func (app *ScoutAlertApp) updateTrayStatus(count int) {
	if count >= 0 {
		app.statusMut.Lock()
		app.statusCount = count
		app.statusMut.Unlock()
	}

	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	app.TrayStatusItem.Label = app.trayStatusLabel(count)
	app.Menu.Refresh()
}

func (app *ScoutAlertApp) trayStatusLabel(count int) string {
	switch {
	case count < 0:
		return config.FallbackTrayError
	case count == 0:
		if label, err := app.localize(config.TKeyTrayStatusZero, nil, nil); err == nil {
			return label
		}
	default:
		if label, err := app.localize(config.TKeyTrayStatus, map[string]any{"Count": count}, count); err == nil {
			return label
		}
	}
	return fmt.Sprintf(config.FallbackTrayDefault, count)
}

// loadSourceConfig assembles the import source from preferences and the
// keyring.
func (app *ScoutAlertApp) loadSourceConfig() engine.SourceConfig {
	cfg := engine.SourceConfig{
		Mode:      app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeLocal),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.String(config.PrefWebURL),
		WebUser:   app.Preferences.String(config.PrefUsername),
	}

	if cfg.Mode == config.SourceModeWeb && cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	return cfg
}

func (app *ScoutAlertApp) now() time.Time {
	if app.Clock == nil {
		return time.Now()
	}
	return app.Clock.Now()
}
