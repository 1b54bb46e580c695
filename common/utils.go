package common

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// ExitWithError prints a one-line error message prefixed with the program
// name and exits with the error's exit code (1 unless the error says
// otherwise). Errors with an empty message set the exit code silently.
func ExitWithError(err error) {
	if msg := err.Error(); msg != "" {
		fmt.Fprintf(os.Stderr, "%s: %s\n", AppName, msg)
	}

	code := 1
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		code = coder.ExitCode()
	}
	os.Exit(code)
}

// IsTTY checks if the given file is a TTY
func IsTTY(file *os.File) bool {
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// NewLogger creates a new zerolog logger with appropriate settings.
// It configures colorful output when stderr is a TTY and sets the log level
// based on the verbose flag from the CLI context.
func NewLogger(c *cli.Context) zerolog.Logger {
	// Set time format with millisecond precision
	zerolog.TimeFieldFormat = "2006-01-02 15:04:05.000"

	// Set global time function to use UTC
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	// Determine log level based on verbose flag
	level := zerolog.ErrorLevel
	if c.Bool("verbose") {
		level = zerolog.DebugLevel
	}

	// Create console writer with colors if stderr is a TTY
	var consoleWriter io.Writer
	if IsTTY(os.Stderr) {
		consoleWriter = zerolog.ConsoleWriter{
			Out:        colorable.NewColorableStderr(),
			TimeFormat: "2006-01-02 15:04:05.000",
			NoColor:    false,
		}
	} else {
		consoleWriter = os.Stderr
	}

	// Create and return configured logger
	return zerolog.New(consoleWriter).
		Level(level).
		With().
		Timestamp().
		Logger()
}
