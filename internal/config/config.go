package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Scout-Alert/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Scout Alert"
	AppID             = "com.github.tartampluch.go-scoutalert"
	KeyringService    = "com.github.tartampluch.go-scoutalert"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
	StoreFileName     = "birthdays.json"
	LockFileSuffix    = ".lock"
	TempFilePattern   = ".tmp-*"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and the birthday store, which holds personal data.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagImport       = "import"
	FlagCheck        = "check"
	FlagData         = "data"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescImport   = "Import a registry extract (.xlsx, .csv, .vcf) into the store and exit"
	FlagDescCheck    = "Print today's birthday summary as JSON and exit"
	FlagDescData     = "Path of the birthday store (defaults to the user config dir)"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
	MsgCLIImported   = "Imported %d birthdays into %s\n"
	JSONIndent       = "  "
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 600

	// Preference Keys
	PrefWebURL      = "web_url"
	PrefUsername    = "username"
	PrefLanguage    = "language"
	PrefCheckSpec   = "check_schedule"
	PrefServerPort  = "server_port"
	PrefSourceMode  = "source_mode"
	PrefLocalPath   = "local_path"
	PrefLastRun     = "last_run_version"
	PrefLastImport  = "last_import"
	ImportTimestamp = time.RFC3339
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "it"}

// -----------------------------------------------------------------------------
// UI Birthdays Window Constants
// -----------------------------------------------------------------------------

const (
	BirthdaysWinWidth  = 640
	BirthdaysWinHeight = 460
	UnitsWinWidth      = 320
	EditorWinWidth     = 420
	SearchMinWidth     = 220

	// Table Column IDs
	ColIDName  = 0
	ColIDDate  = 1
	ColIDUnit  = 2
	ColIDAge   = 3
	ColumnsLen = 4

	// Table Layout
	ColWidthName = 240
	ColWidthDate = 110
	ColWidthUnit = 110
	ColWidthAge  = 110

	// Display Formats & Placeholders
	DateFormatDisplay   = "02/01"
	DateFormatDayMonth  = "%02d/%02d"
	DateFormatFull      = "%02d/%02d/%04d"
	TablePlaceholder    = "Cell Content"
	AgeUnknown          = "-"
	DateUnknown         = "--/--"
	AgeTransitionFormat = "%d → %d"
	LogMsgOpenWin       = "Opening birthdays window"
	LogMsgOpenUnits     = "Opening notification units window"
	LogMsgOpenSettings  = "Opening settings window"
	LogMsgFocusSettings = "Settings window already open, requesting focus"
	LogMsgOpenEditor    = "Opening record editor"
	LogMsgSorted        = "Birthdays sorted"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"

	// Editor input limits
	DayMaxDigits   = 2
	MonthMaxDigits = 2
	YearMaxDigits  = 4
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinBirthdays   = "win_birthdays_title"
	TKeyWinUnits       = "win_units_title"
	TKeyMenuCheck      = "menu_check"
	TKeyMenuImport     = "menu_import"
	TKeyMenuBirthdays  = "menu_birthdays"
	TKeyMenuUnits      = "menu_units"
	TKeyMenuSettings   = "menu_settings"
	TKeyTrayStatus     = "tray_status"      // Requires Count > 0
	TKeyTrayStatusZero = "tray_status_zero" // Explicit key for 0
	TKeyNotifImportOK  = "notif_import_success" // Requires Count
	TKeyNotifImportErr = "notif_err_import"
	TKeyNotifCheckErr  = "notif_err_check"
	TKeyModeWeb        = "mode_web"
	TKeyModeLocal      = "mode_local"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblSchedule    = "lbl_check_schedule"
	TKeyHelpSchedule   = "help_check_schedule"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblGeneral     = "lbl_general"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyBtnDelete      = "btn_delete"
	TKeyBtnAdd         = "btn_add"
	TKeyBtnSelectAll   = "btn_select_all"
	TKeyBtnSelectNone  = "btn_select_none"
	TKeyLblFooter      = "lbl_footer"
	TKeyBtnBrowse      = "btn_browse"
	TKeyLblURL         = "lbl_url"
	TKeyHelpURL        = "help_url"
	TKeyLblUser        = "lbl_user"
	TKeyLblPass        = "lbl_pass"
	TKeyLblSource      = "lbl_source"
	TKeyLblSearch      = "lbl_search"
	TKeyLblAllUnits    = "lbl_all_units"
	TKeyHelpUnits      = "help_units"
	TKeyLblNoUnits     = "lbl_no_units"
	TKeyLblNever       = "lbl_never"
	TKeyLblLastImport  = "lbl_last_import" // Requires Time
	TKeyConfirmDelete  = "confirm_delete"  // Requires Name

	// Summary titles (DailyMatcher output)
	TKeySummaryNone   = "summary_none"
	TKeySummarySingle = "summary_single" // Requires Name
	TKeySummaryDual   = "summary_dual"
	TKeySummaryMany   = "summary_many" // Requires Count

	// Calendar event summaries
	TKeyEvtSummary      = "event_summary"       // Requires Name
	TKeyEvtSummaryAge   = "event_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth = "event_summary_birth" // Requires Name (For age 0)

	// Editor
	TKeyEditorNew    = "editor_new_title"
	TKeyEditorEdit   = "editor_edit_title"
	TKeyLblGivenName = "lbl_given_name"
	TKeyLblSurname   = "lbl_surname"
	TKeyLblUnit      = "lbl_unit"
	TKeyLblDay       = "lbl_day"
	TKeyLblMonth     = "lbl_month"
	TKeyLblYear      = "lbl_year"

	// Column Headers
	TKeyColName = "col_name"
	TKeyColDate = "col_date"
	TKeyColUnit = "col_unit"
	TKeyColAge  = "col_age"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrSchedule  = "err_schedule"
	TKeyErrDate      = "err_invalid_date"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb    = "web"
	SourceModeLocal  = "local"
	DefaultPort      = "18081"
	DefaultLanguage  = "it"
	DefaultCheckSpec = "0 8 * * *" // Every day at 08:00 local time
	DefaultLeapYear  = 2000        // Leap year fallback for dates like --02-29
	UIDSalt          = "go-scoutalert-v1-"
	MaxDetailLines   = 3 // Space budget of the tray/notification body
	MinYear          = 1
	MaxYear          = 9999
)

// Unit taxonomy labels produced by the unit normaliser.
const (
	UnitLabelCommunity = "Co.Ca."
	UnitLabelCubs      = "L/C"
	UnitLabelScouts    = "E/G"
	UnitLabelRovers    = "R/S"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Scout Alert//Registry//IT"
	ICalCalName = "Compleanni"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "scoutalert"

	// iCal Fields
	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropCategories = "CATEGORIES"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardVersion = "4.0"

	DefaultICalRefresh = 12 * time.Hour
)

// Headers of the table synthesised from a vCard stream. They are chosen so
// that header detection binds every role.
const (
	VCardHeaderSurname   = "Cognome"
	VCardHeaderGivenName = "Nome"
	VCardHeaderBirthDate = "Data di nascita"
	VCardHeaderUnit      = "Unità"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Registry date layouts, tried in order. Go's "2" and "1" accept one or
	// two digits, so each layout also covers its zero-padded form.
	DateLayoutSlash = "2/1/2006"
	DateLayoutISO   = "2006-01-02"
	DateLayoutDash  = "2-1-2006"
	DateLayoutDot   = "2.1.2006"

	DateLayoutDisplay = "02/01/2006"
	ImportTimeDisplay = "02/01/2006 15:04"
	DateKeyNoYear     = "--%02d-%02d"

	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
	VCardBirthdayNoYear = "--%02d%02d"
	VCardBirthdayFull   = "%04d%02d%02d"

	// Date layouts of ISO date-typed spreadsheet cells
	CellDateLayoutFull  = "2006-01-02T15:04:05"
	CellDateLayoutShort = "2006-01-02"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s%s|%s|%s|%s"
	FormatUID       = "%s-%d@%s"
	FormatUIDDup    = "%s-%d"

	// File Extensions
	ExtXLSX  = ".xlsx"
	ExtXLSM  = ".xlsm"
	ExtCSV   = ".csv"
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"

	// CSV sniffing
	CSVSniffWindow = 4096

	// Format sniffing for sources without a usable extension
	FormatSniffLen = 512
	MagicZip       = "PK\x03\x04"
	MagicVCard     = "BEGIN:VCARD"
	MimePrefixText = "text/plain"
)

// CSVDelimiters lists the delimiters considered when sniffing a CSV header line,
// in tie-break order.
var CSVDelimiters = []rune{';', ',', '\t'}

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteCalendar       = "/calendar.ics"
	RouteContacts       = "/contacts.vcf"
	RouteToday          = "/today"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderDisposition     = "Content-Disposition"
	DispositionFilename   = "filename"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextVCard       = "text/vcard; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// Media types of downloaded registry extracts, without parameters.
	MediaCSV      = "text/csv"
	MediaCSVAlt   = "application/csv"
	MediaVCard    = "text/vcard"
	MediaXVCard   = "text/x-vcard"
	MediaDirVCard = "text/directory"
	MediaXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MediaXLSM     = "application/vnd.ms-excel.sheet.macroenabled.12"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty    = "configuration error: local path is empty"
	ErrWebURLEmpty       = "configuration error: web URL is empty"
	ErrFetcherMissing    = "internal error: network fetcher is not initialized"
	ErrModeUnsupport     = "configuration error: unsupported source mode"
	ErrServerStartup     = "server startup failed"
	ErrServerShutdown    = "server shutdown failed"
	ErrPortRequired      = "server port is required"
	ErrPortNumber        = "server port must be a number"
	ErrPortRange         = "server port must be between 1 and 65535"
	ErrInvalidURL        = "invalid URL structure"
	ErrProtocol          = "unsupported protocol scheme (http/https only)"
	ErrSourceRead        = "failed to read registry source"
	ErrUnsupportedFormat = "unsupported registry file format"
	ErrSourceTooLarge    = "registry source exceeds size limit"
	ErrRequestBuild      = "failed to create request"
	ErrNetwork           = "network error during fetch"
	ErrHTTPStatus        = "server returned unexpected status"
	ErrWorkbookOpen      = "failed to open workbook"
	ErrWorkbookRead      = "failed to read worksheet rows"
	ErrCSVRead           = "failed to read CSV data"
	ErrColumnRange       = "header role references a column outside the table"
	ErrInvalidRecord     = "invalid birthday record"
	ErrICalEncode        = "failed to encode iCalendar data"
	ErrVCardEncode       = "failed to encode vCard data"
	ErrSummaryEncode     = "failed to encode summary"
	ErrDateParse         = "unable to parse date"
	ErrStoreRead         = "failed to read birthday store"
	ErrStoreDecode       = "birthday store is corrupted"
	ErrStoreWrite        = "failed to write birthday store"
	ErrStoreLock         = "failed to lock birthday store"
	ErrIndexRange        = "record index out of range"
	ErrCronSpec          = "invalid check schedule"
	ErrLogFile           = "failed to open log file"
	ErrCacheDir          = "could not determine user cache dir"
	ErrConfigDir         = "could not determine user config dir"
	ErrCreateDir         = "could not create app directory"
	ErrAppFailed         = "application failed unexpectedly"
	ErrCLIFailed         = "command failed"
	ErrWriteResp         = "failed to write response body"
	ErrLocalesAccess     = "failed to access embedded locales"
	ErrLocaleLoad        = "failed to load locale file"
	ErrTrayNotSupported  = "system tray not supported on this platform/driver"
	ErrLocNotInit        = "localizer not initialized"
)

// -----------------------------------------------------------------------------
// Validation Messages
// -----------------------------------------------------------------------------

const (
	ValMsgDayRange     = "day must be between 1 and 31"
	ValMsgMonthRange   = "month must be between 1 and 12"
	ValMsgYearRange    = "year must be between 1 and 9999"
	ValMsgCalendarDay  = "day %s does not exist in month %s"
	ValMsgPartialDate  = "day and month must be set together"
	ValMsgDateRequired = "a birth date is required"
	ValMsgFormat       = "validation failed: %d error(s): [%s]"

	ValTagCalendarDay = "calendar_day"
	ValTagPartialDate = "partial_date"
	ValTagRequired    = "required"
	ValFieldDay       = "day"
	ValFieldMonth     = "month"
	ValFieldYear      = "year"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	// Summary titles used when no localizer is available.
	SummaryTitleNone   = "Nessun compleanno oggi"
	SummaryTitleSingle = "Oggi è il compleanno di %s"
	SummaryTitleDual   = "Oggi 2 compleanni in unità AGESCI 🎂"
	SummaryTitleMany   = "Oggi %d compleanni in unità AGESCI 🎂"

	DetailLineFormat = "%s (%s)"
	DetailSeparator  = "\n"

	FallbackSummary      = "Compleanno: %s"
	FallbackSummaryAge   = "Compleanno: %s (%d)"
	FallbackSummaryBirth = "Compleanno: %s (nascita)"
	FallbackTrayError    = "Scout Alert: errore"
	FallbackTrayDefault  = "Scout Alert (%d oggi)"
	FallbackTrayLabel    = "Scout Alert"
	FallbackName         = "Senza nome"
	FallbackImportOK     = "Importati %d compleanni"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	TitleImportError  = "Import Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgImportStarted  = "Registry import started"
	MsgFetchStart     = "Initiating registry download"
	MsgFetchStatus    = "Server returned error status"
	MsgFetchOK        = "Registry downloading"
	MsgFormatSniffed  = "Registry format chosen from content"
	MsgImportDone     = "Registry import completed"
	MsgHeadersFound   = "Header roles detected"
	MsgRoleMissing    = "Header role not found"
	MsgCheckReq       = "Birthday check requested"
	MsgCheckDone      = "Birthday check completed"
	MsgCheckFailed    = "Birthday check failed"
	MsgImportFailed   = "Registry import failed"
	MsgWorkerStart    = "Scheduler started"
	MsgWorkerStop     = "Scheduler stopping due to context cancellation"
	MsgTriggerPending = "Check already pending, trigger coalesced"
	MsgReschedule     = "Updating check schedule"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping unusable birthday value"
	MsgSkippedRecord  = "Skipping invalid stored record"
	MsgGenSuccess     = "Calendar generation successful"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Feed cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgBdayToday      = "Birthday found today"
	MsgStoreSaved     = "Birthday store saved"
	MsgUnitsSaved     = "Notification units saved"
	MsgSaving         = "Saving preferences"
	MsgCredsSaveFail  = "Failed to save credentials to keyring"
	MsgRecordSaved    = "Birthday record saved"
	MsgRecordDeleted  = "Birthday record deleted"
	MsgFeedsFailed    = "Feed generation failed"
	MsgScheduleBad    = "Stored check schedule is invalid, using default"
	MsgSheetSelected  = "Reading worksheet"

	PlaceholderURL      = "https://..."
	PlaceholderSchedule = DefaultCheckSpec
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeySchedule  = "schedule"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyUser      = "user"
	LogKeyRows      = "rows"
	LogKeyRecords   = "records"
	LogKeyToday     = "birthdays_today"
	LogKeySizeBytes = "size_bytes"
	LogKeyMediaType = "media_type"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyUnit      = "unit"
	LogKeyUnits     = "units"
	LogKeyRole      = "role"
	LogKeyIndex     = "index"
	LogKeyHeader    = "header"
	LogKeySheet     = "sheet"
	LogKeyRoute     = "route"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompUIEditor  = "ui_editor"
	CompEngine    = "engine"
	CompImporter  = "importer"
	CompMatcher   = "matcher"
	CompServer    = "server"
	CompFetcher   = "fetcher"
	CompScheduler = "scheduler"
	CompStore     = "store"
	CompSheet     = "sheet"
	CompMain      = "main"
	CompI18n      = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutColumnsTriple = 3
)
