package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

func parseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

func newLoggerTo(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "docexplorer",
		Level:           parseLevel(level),
		ReportTimestamp: true,
	})
}

// newLogger logs to --log-file when set, stderr otherwise.
func newLogger(app *App, stderr io.Writer) (*log.Logger, func(), error) {
	if strings.TrimSpace(app.LogFile) == "" {
		return newLoggerTo(stderr, app.LogLevel), func() {}, nil
	}
	return openLogFile(app)
}

// newTUILogger never writes to the terminal: the alternate screen owns it.
func newTUILogger(app *App) (*log.Logger, func(), error) {
	if strings.TrimSpace(app.LogFile) == "" {
		return newLoggerTo(io.Discard, app.LogLevel), func() {}, nil
	}
	return openLogFile(app)
}

func openLogFile(app *App) (*log.Logger, func(), error) {
	f, err := os.OpenFile(app.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return newLoggerTo(f, app.LogLevel), func() { _ = f.Close() }, nil
}
