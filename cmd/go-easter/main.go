package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/tartampluch/go-easter/internal/config"
	"github.com/tartampluch/go-easter/internal/engine"
	"github.com/tartampluch/go-easter/internal/locale"
	"github.com/tartampluch/go-easter/internal/report"
	"github.com/tartampluch/go-easter/internal/server"
)

// clock supplies the default year; tests replace it.
var clock engine.Clock = engine.RealClock{}

// main delegates to runMain so that deferred calls run before os.Exit.
func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr))
}

// monthDayFlag is an -on flag whose value is optional: a bare -on searches
// config.DefaultMonthDay, -on=MMDD and -on MMDD search the given date.
type monthDayFlag struct {
	set   bool
	bare  bool // Given without a value; the next argument may still be the MMDD.
	month time.Month
	day   int
	raw   string
}

func (f *monthDayFlag) String() string { return f.raw }

func (f *monthDayFlag) Set(s string) error {
	bare := s == "true"
	if bare {
		s = config.DefaultMonthDay
	}
	m, d, err := engine.ParseMonthDay(s)
	if err != nil {
		return err
	}
	f.set, f.bare, f.month, f.day, f.raw = true, bare, m, d, s
	return nil
}

// IsBoolFlag lets the flag package accept -on without a value.
func (f *monthDayFlag) IsBoolFlag() bool { return true }

type options struct {
	year      int
	verbose   bool
	selfTest  bool
	on        monthDayFlag
	from, to  int
	ics       bool
	alarm     string
	algorithm engine.Algorithm
	lang      string
	serve     bool
	port      string
	version   bool
	debug     bool
}

// parseArgs reads flags and the optional YEAR. Flags and the year may be
// given in any order. Every error has been reported on stderr when it returns.
func parseArgs(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	var algo string

	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), config.UsageLine, fs.Name())
		fs.PrintDefaults()
	}
	fs.BoolVar(&o.verbose, config.FlagVerbose, false, config.FlagDescVerbose)
	fs.BoolVar(&o.verbose, config.FlagV, false, config.FlagDescVerbose)
	fs.BoolVar(&o.selfTest, config.FlagTest, false, config.FlagDescTest)
	fs.BoolVar(&o.selfTest, config.FlagT, false, config.FlagDescTest)
	fs.Var(&o.on, config.FlagOn, config.FlagDescOn)
	fs.IntVar(&o.from, config.FlagFrom, config.DefaultSearchFrom, config.FlagDescFrom)
	fs.IntVar(&o.to, config.FlagTo, config.DefaultSearchTo, config.FlagDescTo)
	fs.BoolVar(&o.ics, config.FlagICS, false, config.FlagDescICS)
	fs.StringVar(&o.alarm, config.FlagAlarm, "", config.FlagDescAlarm)
	fs.StringVar(&algo, config.FlagAlgo, config.AlgoMeeus, config.FlagDescAlgo)
	fs.StringVar(&o.lang, config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	fs.BoolVar(&o.serve, config.FlagServe, false, config.FlagDescServe)
	fs.StringVar(&o.port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	fs.BoolVar(&o.version, config.FlagVersion, false, config.FlagDescVersion)
	fs.BoolVar(&o.debug, config.FlagDebug, false, config.FlagDescDebug)

	var positional []string
	rest := args
	for {
		// The flag package prints its own errors and the usage text.
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		rest = rest[1:]
	}

	if err := o.finish(positional, algo); err != nil {
		fmt.Fprintf(stderr, config.MsgUsageError, fs.Name(), err)
		return nil, err
	}
	return o, nil
}

// finish validates what the flag package cannot: the positional year, the
// algorithm name and the alarm trigger. After a bare -on the single
// positional is its MMDD value, and a search takes no year.
func (o *options) finish(positional []string, algo string) error {
	if o.on.set {
		if o.on.bare && len(positional) == 1 {
			if err := o.on.Set(positional[0]); err != nil {
				return err
			}
			positional = nil
		}
		if len(positional) > 0 {
			return fmt.Errorf("%s: %v", config.ErrSearchYear, positional)
		}
	}

	switch len(positional) {
	case 0:
	case 1:
		y, err := strconv.Atoi(positional[0])
		if err != nil {
			return &engine.InvalidInputError{Value: positional[0], Reason: config.ErrYearFormat}
		}
		o.year = y
	default:
		return fmt.Errorf("%s: %v", config.ErrTooManyArgs, positional)
	}

	alg, err := engine.ParseAlgorithm(algo)
	if err != nil {
		return err
	}
	o.algorithm = alg

	return engine.ValidateTrigger(o.alarm)
}

// runMain manages argument parsing, logging and exit codes.
func runMain(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return config.ExitCodeSuccess
	}
	if err != nil {
		return config.ExitCodeUsage
	}

	if opts.version {
		printVersion(stdout)
		return config.ExitCodeSuccess
	}

	logCloser := setupLogging(opts.debug, stderr)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	tr, err := locale.New(opts.lang)
	if err != nil {
		fmt.Fprintf(stderr, config.MsgUsageError, filepath.Base(os.Args[0]), err)
		return config.ExitCodeUsage
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	if err := run(ctx, opts, report.Writer{T: tr}, stdout); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		fmt.Fprintln(stderr, err)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run dispatches to the selected mode.
func run(ctx context.Context, opts *options, rw report.Writer, stdout io.Writer) error {
	switch {
	case opts.selfTest:
		return runSelfTest(rw, stdout)
	case opts.serve:
		return runServer(ctx, opts, rw)
	case opts.on.set:
		return runSearch(opts, rw, stdout)
	}

	year := engine.NormalizeYear(opts.year, clock)
	if !engine.InValidatedRange(year) {
		slog.Warn(config.MsgOutOfRange,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyYear, year,
		)
	}
	easter := engine.ComputeEasterWith(opts.algorithm, year)
	slog.Info(config.MsgComputed,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyYear, year,
		config.LogKeyDate, easter.String(),
		config.LogKeyAlgo, opts.algorithm.String(),
	)

	if opts.ics {
		gen := newGenerator(rw)
		data, _, err := gen.Render(ctx, engine.CalendarConfig{
			Years:           []int{year},
			Algorithm:       opts.algorithm,
			ReminderTrigger: opts.alarm,
		})
		if err != nil {
			return err
		}
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
		}
		return nil
	}
	return rw.Easter(stdout, year, easter, engine.RelatedObservances(opts.verbose))
}

func runSearch(opts *options, rw report.Writer, stdout io.Writer) error {
	years := engine.YearsWhereEasterFalls(opts.on.month, opts.on.day, opts.from, opts.to)
	slog.Info(config.MsgSearchDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyFrom, opts.from,
		config.LogKeyTo, opts.to,
		config.LogKeyCount, len(years),
	)
	return rw.Years(stdout, opts.on.month, opts.on.day, opts.from, opts.to, years)
}

func runSelfTest(rw report.Writer, stdout io.Writer) error {
	results := engine.SelfTest()
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	slog.Info(config.MsgSelfTestDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyPassed, passed,
		config.LogKeyTotal, len(results),
	)
	if err := rw.SelfTest(stdout, results); err != nil {
		return err
	}
	if !engine.AllPassed(results) {
		return errors.New(config.ErrSelfTestFailed)
	}
	return nil
}

func runServer(ctx context.Context, opts *options, rw report.Writer) error {
	srv := server.NewCalendarServer(opts.port, newGenerator(rw))
	srv.Report = rw
	srv.Algorithm = opts.algorithm
	srv.Trigger = opts.alarm
	return srv.Start(ctx)
}

// newGenerator wires translated observance names into the calendar output.
func newGenerator(rw report.Writer) *engine.Generator {
	return &engine.Generator{
		Clock:        clock,
		CalendarName: rw.T.Msg(config.TKeyCalName, nil),
		FormatSummary: func(o engine.Observance, _ int) string {
			return rw.ObservanceName(o)
		},
	}
}

// printVersion outputs the build information.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Debug(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger. Logs go to a file in the
// user's cache directory, and to stderr in debug mode; stdout carries only
// the report.
func setupLogging(debugMode bool, stderr io.Writer) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if debugMode {
		writers = append(writers, stderr)
	}

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on every run to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else if debugMode {
			fmt.Fprintf(stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
