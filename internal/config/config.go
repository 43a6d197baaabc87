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

// UserAgent identifies the HTTP feed in logs and response headers.
var UserAgent = "Go-Easter/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Easter"
	AppID             = "com.github.tartampluch.go-easter"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
	ExitCodeUsage   = 2
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
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
	FlagVersion = "version"
	FlagDebug   = "debug"
	FlagVerbose = "verbose"
	FlagV       = "v"
	FlagTest    = "test"
	FlagT       = "t"
	FlagOn      = "on"
	FlagFrom    = "from"
	FlagTo      = "to"
	FlagICS     = "ics"
	FlagAlarm   = "alarm"
	FlagAlgo    = "algo"
	FlagLang    = "lang"
	FlagServe   = "serve"
	FlagPort    = "port"

	FlagDescVersion = "Show application version and exit"
	FlagDescDebug   = "Enable debug logging to stderr"
	FlagDescVerbose = "Show all related Christian calendar days"
	FlagDescTest    = "Run the embedded self tests"
	FlagDescOn      = "List years where Easter falls on MMDD (bare flag means " + DefaultMonthDay + ")"
	FlagDescFrom    = "First year searched by -on (inclusive)"
	FlagDescTo      = "Last year searched by -on (exclusive)"
	FlagDescICS     = "Print the observances as an iCalendar document"
	FlagDescAlarm   = "ISO 8601 alarm trigger added to iCalendar events (e.g. -P1D)"
	FlagDescAlgo    = "Computus variant: " + AlgoMeeus + " or " + AlgoNewScientist
	FlagDescLang    = "Language of the report (BCP 47 tag)"
	FlagDescServe   = "Serve the iCalendar feed over HTTP until interrupted"
	FlagDescPort    = "Port used by -serve"

	UsageLine        = "Usage: %s [flags] [YEAR]\n\nCalculate Good Friday and Easter for a given year.\n\nFlags:\n"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
	MsgUsageError    = "%s: %v\n"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	AlgoMeeus        = "meeus"
	AlgoNewScientist = "newscientist"

	// DefaultMonthDay is the date searched by a bare -on flag.
	DefaultMonthDay = "0404"

	// Search window for -on, half-open [DefaultSearchFrom, DefaultSearchTo).
	DefaultSearchFrom = 1999
	DefaultSearchTo   = 2100

	// Two-digit years are read as 20YY.
	TwoDigitYearLimit = 100
	TwoDigitYearBase  = 2000

	// A leap year: MMDD values are checked against it so that 0229 exists.
	LeapProbeYear = 2000

	// Range over which the Computus result is documented.
	ValidatedYearMin = 1900
	ValidatedYearMax = 2100

	// Easter never falls outside [March 22, April 25].
	EarliestEasterMonth = time.March
	EarliestEasterDay   = 22
	LatestEasterMonth   = time.April
	LatestEasterDay     = 25

	DefaultLanguage = "en"
	DefaultPort     = "18081"
	UIDSalt         = "go-easter-v1-"
)

// SupportedLanguages lists the embedded catalogs (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Observances
// -----------------------------------------------------------------------------

// Observance keys double as translation keys.
const (
	ObsAshWednesday  = "obs_ash_wednesday"
	ObsMaundyThurs   = "obs_maundy_thursday"
	ObsGoodFriday    = "obs_good_friday"
	ObsHolySaturday  = "obs_holy_saturday"
	ObsEasterSunday  = "obs_easter_sunday"
	ObsAscension     = "obs_ascension"
	ObsPentecost     = "obs_pentecost"
	OffsetAshWed     = -46
	OffsetMaundy     = -3
	OffsetGoodFriday = -2
	OffsetHolySat    = -1
	OffsetEaster     = 0
	OffsetAscension  = 39
	OffsetPentecost  = 49
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyEasterHeadline = "easter_headline"   // Requires Year, Date
	TKeyObservanceLine = "observance_line"   // Requires Name, Date
	TKeyFormatDate     = "format_date_short" // Go time layout
	TKeySearchHeader   = "search_header"     // Requires Date, From, To
	TKeySearchNone     = "search_none"
	TKeyTestPass       = "test_pass"    // Requires Name
	TKeyTestFail       = "test_fail"    // Requires Name, Detail
	TKeyTestSummary    = "test_summary" // Requires Passed, Total
	TKeyCalName        = "cal_name"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Easter//Engine//EN"
	ICalCalName   = "Easter"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goeaster"
	ICalTransp    = "TRANSPARENT"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropTransp      = "TRANSP"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	DateFormatISO     = "2006-01-02"
	DateFormatDefault = "02 January"
	MonthDayLength    = 4

	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	AllowedMethods     = "GET, HEAD"
	AddrSeparator      = ":"
	CORSMaxAge         = 300

	RouteRoot       = "/"
	RouteFeed       = "/easter.ics"
	RouteYearICS    = "/ics/{year}"
	RouteYearReport = "/report/{year}"
	URLParamYear    = "year"
	QueryVerbose    = "verbose"
)

// CORSAllowedOrigins is permissive: the feed is public and read-only.
var CORSAllowedOrigins = []string{"*"}

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderIfNoneMatch  = "If-None-Match"
	HeaderServer       = "Server"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidInput     = "invalid input"
	ErrMonthDayFormat   = "date must be four digits MMDD"
	ErrMonthDayRange    = "no such month/day"
	ErrYearFormat       = "year must be an integer"
	ErrTooManyArgs      = "too many arguments"
	ErrSearchYear       = "a year cannot be combined with -on"
	ErrNoYears          = "no years to render"
	ErrAlgoUnknown      = "unknown computus algorithm"
	ErrAlarmFormat      = "alarm must be an ISO 8601 duration such as -P1D"
	ErrLangTag          = "unsupported language tag"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrWriteOutput      = "failed to write output"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrSelfTestFailed   = "self test failed"
	ErrRenderFeed       = "failed to render calendar feed"
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgBadYear      = "Bad Request: year must be an integer"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped"
	MsgComputed      = "Easter computed"
	MsgSearchDone    = "Year search finished"
	MsgSelfTestDone  = "Self test finished"
	MsgGenSuccess    = "Calendar generation successful"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgOutOfRange    = "Year outside the validated range, result is not checked"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyYear      = "year"
	LogKeyDate      = "date"
	LogKeyAlgo      = "algo"
	LogKeyFrom      = "from"
	LogKeyTo        = "to"
	LogKeyCount     = "count"
	LogKeyEvents    = "events"
	LogKeyPassed    = "passed"
	LogKeyTotal     = "total"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
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
	CompMain   = "main"
	CompEngine = "engine"
	CompServer = "server"
	CompI18n   = "i18n"
)
