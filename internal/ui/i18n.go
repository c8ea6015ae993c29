package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n initializes the translation bundle and detects available languages.
func (app *ScoutAlertApp) SetupI18n() {
	bundle := i18n.NewBundle(language.Italian)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detectedLangs []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	app.SupportedLanguages = detectedLangs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator based on the user's language preference.
func (app *ScoutAlertApp) UpdateLocalizer() {
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	if lang == "" {
		lang = config.DefaultLanguage
	}
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang)
}

// GetMsg is a helper to translate a key safely. Missing keys render as
// the key itself.
func (app *ScoutAlertApp) GetMsg(key string) string {
	msg, err := app.localize(key, nil, nil)
	if err != nil {
		return key
	}
	return msg
}

// localize renders key with data. plural, when set, selects the CLDR
// plural form.
func (app *ScoutAlertApp) localize(key string, data map[string]any, plural any) (string, error) {
	if app.Localizer == nil {
		return "", fmt.Errorf("%s: %s", config.ErrLocNotInit, key)
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
		PluralCount:  plural,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return "", err
	}
	return msg, nil
}

// buildSummaryFormatter returns a closure that localizes calendar event
// summaries, falling back to the built-in phrasing.
func (app *ScoutAlertApp) buildSummaryFormatter() engine.EventFormatter {
	return func(name string, age int, yearKnown bool) string {
		key, data := config.TKeyEvtSummary, map[string]any{"Name": name}
		if yearKnown {
			// Age 0 is the birth itself.
			if age == 0 {
				key = config.TKeyEvtSummaryBirth
			} else {
				key = config.TKeyEvtSummaryAge
				data["Age"] = age
			}
		}

		msg, err := app.localize(key, data, nil)
		if err != nil || msg == "" {
			return engine.DefaultEventSummary(name, age, yearKnown)
		}
		return msg
	}
}

// buildTitleFormatter returns a closure that localizes the title of the
// daily summary.
func (app *ScoutAlertApp) buildTitleFormatter() engine.TitleFormatter {
	return func(kind engine.TitleKind, count int, name string) string {
		var key string
		data := map[string]any{"Count": count, "Name": name}
		switch kind {
		case engine.TitleSingle:
			key = config.TKeySummarySingle
		case engine.TitleDual:
			key = config.TKeySummaryDual
		case engine.TitleMany:
			key = config.TKeySummaryMany
		default:
			key = config.TKeySummaryNone
		}

		msg, err := app.localize(key, data, nil)
		if err != nil || msg == "" {
			return engine.DefaultTitle(kind, count, name)
		}
		return msg
	}
}
