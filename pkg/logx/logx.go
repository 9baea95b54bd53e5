package logx

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Level controls which messages are emitted
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	currentLevel int32 = int32(LevelInfo)
	std                = log.New(os.Stdout, "", log.LstdFlags|log.Lmsgprefix)
)

// SetLevel sets the minimum level that will be logged
func SetLevel(level Level) {
	atomic.StoreInt32(&currentLevel, int32(level))
}

func enabled(level Level) bool {
	return int32(level) >= atomic.LoadInt32(&currentLevel)
}

func output(level Level, prefix, msg string) {
	if !enabled(level) {
		return
	}
	std.Printf("%s %s", prefix, msg)
}

// Debug logs a debug message
func Debug(args ...any) { output(LevelDebug, "[DEBUG]", fmt.Sprint(args...)) }

// Debugf logs a formatted debug message
func Debugf(format string, args ...any) {
	output(LevelDebug, "[DEBUG]", fmt.Sprintf(format, args...))
}

// Info logs an info message
func Info(args ...any) { output(LevelInfo, "[INFO]", fmt.Sprint(args...)) }

// Infof logs a formatted info message
func Infof(format string, args ...any) {
	output(LevelInfo, "[INFO]", fmt.Sprintf(format, args...))
}

// Warn logs a warning message
func Warn(args ...any) { output(LevelWarn, "[WARN]", fmt.Sprint(args...)) }

// Warnf logs a formatted warning message
func Warnf(format string, args ...any) {
	output(LevelWarn, "[WARN]", fmt.Sprintf(format, args...))
}

// Error logs an error message
func Error(args ...any) { output(LevelError, "[ERROR]", fmt.Sprint(args...)) }

// Errorf logs a formatted error message
func Errorf(format string, args ...any) {
	output(LevelError, "[ERROR]", fmt.Sprintf(format, args...))
}

// Fatal logs an error message and exits
func Fatal(args ...any) {
	output(LevelError, "[FATAL]", fmt.Sprint(args...))
	os.Exit(1)
}

// Fatalf logs a formatted error message and exits
func Fatalf(format string, args ...any) {
	output(LevelError, "[FATAL]", fmt.Sprintf(format, args...))
	os.Exit(1)
}
