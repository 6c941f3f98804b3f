// Package logger is the process-wide dual-output logger: a console writer for
// what the user should see and a log file that keeps everything.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// maxLogSize is the size above which Init rotates the log file to <name>.1
const maxLogSize = 5 << 20

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger handles dual-output logging (console + file)
type Logger struct {
	consoleLogger *log.Logger
	fileLogger    *log.Logger
	logFile       *os.File
	verbose       bool
	minLevel      Level
}

var (
	mu           sync.RWMutex
	globalLogger *Logger

	// parse errors since Init, reported as a count on the console
	parseErrors atomic.Int64
)

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// Init initializes the global logger
// consoleOutput: where user-facing messages go (the CLI passes os.Stderr so
// command output on stdout stays machine-readable)
// logFilePath: every message, DEBUG included, is appended here
// verbose: if true, show DEBUG logs on console as well
func Init(consoleOutput io.Writer, logFilePath string, verbose bool) error {
	logDir := filepath.Dir(logFilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	if info, err := os.Stat(logFilePath); err == nil && info.Size() > maxLogSize {
		if err := os.Rename(logFilePath, logFilePath+".1"); err != nil {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	minLevel := LevelInfo
	if verbose {
		minLevel = LevelDebug
	}

	l := &Logger{
		consoleLogger: log.New(consoleOutput, "", 0), // No prefix for clean console output
		fileLogger:    log.New(logFile, "", log.LstdFlags),
		logFile:       logFile,
		verbose:       verbose,
		minLevel:      minLevel,
	}

	mu.Lock()
	old := globalLogger
	globalLogger = l
	mu.Unlock()
	if old != nil && old.logFile != nil {
		old.logFile.Close()
	}
	parseErrors.Store(0)

	return nil
}

// Close closes the log file and falls back to plain stdout output
func Close() {
	mu.Lock()
	l := globalLogger
	globalLogger = nil
	mu.Unlock()
	if l != nil && l.logFile != nil {
		l.logFile.Close()
	}
}

// Debug logs a debug message (file only, unless verbose)
func Debug(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.log(LevelDebug, format, args...)
	}
}

// Info logs an info message (console + file)
func Info(format string, args ...interface{}) {
	l := current()
	if l == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message (console + file)
func Warn(format string, args ...interface{}) {
	l := current()
	if l == nil {
		fmt.Printf("WARN: "+format+"\n", args...)
		return
	}
	l.log(LevelWarn, format, args...)
}

// Error logs an error message (console + file)
func Error(format string, args ...interface{}) {
	l := current()
	if l == nil {
		fmt.Printf("ERROR: "+format+"\n", args...)
		return
	}
	l.log(LevelError, format, args...)
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// the file gets every level
	l.fileLogger.Printf("[%s] %s", level.String(), message)

	if level < l.minLevel {
		return
	}

	switch level {
	case LevelDebug:
		l.consoleLogger.Printf("[DEBUG] %s", message)
	case LevelInfo:
		l.consoleLogger.Printf("%s", message)
	case LevelWarn:
		l.consoleLogger.Printf("⚠️  %s", message)
	case LevelError:
		l.consoleLogger.Printf("❌ %s", message)
	}
}

// InfoClean logs an info message without any prefix (console only)
// Useful for progress updates that shouldn't go to log file
func InfoClean(format string, args ...interface{}) {
	l := current()
	if l == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	l.consoleLogger.Printf(format, args...)
}

// LogParseError records a failed parse strategy for a file (file only, not
// console). The console only sees the total, via ParseErrorCount.
func LogParseError(filePath string, err error, strategy string) {
	parseErrors.Add(1)
	l := current()
	if l == nil {
		return
	}
	l.fileLogger.Printf("[PARSE_ERROR] File: %s, Strategy: %s, Error: %v", filePath, strategy, err)
	if l.verbose {
		l.consoleLogger.Printf("[DEBUG] Parse error in %s (%s): %v", filePath, strategy, err)
	}
}

// ParseErrorCount returns the number of parse errors logged since Init
func ParseErrorCount() int64 {
	return parseErrors.Load()
}

// GetLogFilePath returns the path to the current log file
func GetLogFilePath() string {
	if l := current(); l != nil && l.logFile != nil {
		return l.logFile.Name()
	}
	return ""
}

// IsVerbose returns whether verbose logging is enabled
func IsVerbose() bool {
	if l := current(); l != nil {
		return l.verbose
	}
	return false
}
