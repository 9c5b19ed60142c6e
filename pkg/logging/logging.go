// Package logging configures the zerolog global logger used across wrench.
//
// Output goes to stderr for the user and, in append mode, to wrench.log in
// the state directory so a failed copy or import can be inspected later.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvStateDir overrides the directory holding wrench.log
const EnvStateDir = "WRENCH_STATE_DIR"

const logFileName = "wrench.log"

var (
	fileMu  sync.Mutex
	logFile *os.File
)

// SetupLogger configures the global logger based on verbosity level.
// It sets up dual output to both console and a log file. Calling it again
// replaces the previous setup and closes the log file it opened.
func SetupLogger(verbosity int) {
	// -v count: 0 warn, 1 info, 2 debug, 3+ trace
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	// Pretty console output, uncolored when NO_COLOR is set
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}

	writers := []io.Writer{consoleWriter}

	path := getLogFilePath()
	handle, err := setupLogFile(path)
	if err == nil {
		writers = append(writers, handle)
	}
	swapLogFile(handle)

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	// Report a missing log file through the console-only logger
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to create log file, logging to console only")
	}

	// Caller information for debug and trace
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", path).Msg("Logger initialized")
}

// GetLogger returns a logger tagged with the component name, such as
// "manager.copy" or "backend.local"
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// getLogFilePath returns the path to the log file.
// It respects WRENCH_STATE_DIR, then XDG_STATE_HOME, otherwise uses ~/.local/state/wrench/
func getLogFilePath() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return filepath.Join(dir, logFileName)
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory if we can't get home
			return logFileName
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "wrench", logFileName)
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Append so earlier sessions stay readable
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// swapLogFile records the open log file and closes the one it replaces
func swapLogFile(next *os.File) {
	fileMu.Lock()
	defer fileMu.Unlock()
	if logFile != nil && logFile != next {
		_ = logFile.Close()
	}
	logFile = next
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
