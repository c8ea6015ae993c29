package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/engine"
	"github.com/tartampluch/go-scoutalert/internal/server"
	"github.com/tartampluch/go-scoutalert/internal/store"
	"github.com/tartampluch/go-scoutalert/internal/ui"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	importSrc := flag.String(config.FlagImport, "", config.FlagDescImport)
	checkOnly := flag.Bool(config.FlagCheck, false, config.FlagDescCheck)
	dataPath := flag.String(config.FlagData, "", config.FlagDescData)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// One-shot commands keep stdout for their own output.
	console := io.Writer(os.Stdout)
	headless := *importSrc != "" || *checkOnly
	if headless {
		console = os.Stderr
	}
	logCloser := setupLogging(*debugMode, headless, console)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	st, err := openStore(*dataPath)
	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if headless {
		if err := runHeadless(ctx, st, *importSrc, *checkOnly, os.Stdout); err != nil {
			slog.Error(config.ErrCLIFailed,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyError, err,
			)
			return config.ExitCodeError
		}
		return config.ExitCodeSuccess
	}

	if err := run(ctx, st); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// openStore opens the birthday store at path, or at the default location.
func openStore(path string) (*store.FileStore, error) {
	if path == "" {
		p, err := store.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return store.New(path), nil
}

// run initializes the Fyne application, wires dependencies, and starts the UI loop.
func run(ctx context.Context, st *store.FileStore) error {
	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := server.NewFeedServer(port)
	fetcher := engine.NewHTTPFetcher()

	gui := ui.NewScoutAlertApp(a, ctx, st, srv, fetcher)

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	// Blocks until the app quits.
	gui.Run()

	return nil
}

// runHeadless executes the one-shot commands: an optional import followed
// by an optional check printed as JSON to out.
func runHeadless(ctx context.Context, st *store.FileStore, source string, check bool, out io.Writer) error {
	if source != "" {
		im := &engine.Importer{Fetcher: engine.NewHTTPFetcher(), Store: st}
		records, err := im.Run(ctx, sourceConfig(source))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, config.MsgCLIImported, len(records), st.Path())
	}

	if !check {
		return nil
	}

	checker := &engine.Checker{Store: st, Clock: engine.RealClock{}}
	summary, err := checker.Check(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", config.JSONIndent)
	return enc.Encode(summary)
}

// sourceConfig maps the -import argument onto a source: http(s) URLs are
// downloaded, anything else is a local path.
func sourceConfig(source string) engine.SourceConfig {
	if u, err := url.Parse(source); err == nil && (u.Scheme == config.SchemeHTTP || u.Scheme == config.SchemeHTTPS) {
		return engine.SourceConfig{Mode: config.SourceModeWeb, WebURL: source}
	}
	return engine.SourceConfig{Mode: config.SourceModeLocal, LocalPath: source}
}

// printVersion outputs the build information to stdout and exits.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
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

// setupLogging configures the default slog logger to write JSON to console
// and to the log file.
func setupLogging(debugMode, headless bool, console io.Writer) io.Closer {
	writers := []io.Writer{console}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		f, err := openLogFile(logPath, headless)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
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

// openLogFile opens the shared log file. The tray app truncates it on start
// to prevent indefinite growth; one-shot commands append, since a tray app
// may be running and writing to the same file.
func openLogFile(path string, headless bool) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if headless {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	return os.OpenFile(path, flags, config.FilePermUserRW)
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
