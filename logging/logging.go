package logging

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/kpango/glg"
)

var (
	logger  = newConsoleLogger()
	logFile *os.File
	mu      sync.Mutex
	isSetup bool
)

// newConsoleLogger prints INFO, WARN and ERR to the console and drops debug
// output until a log file is configured
func newConsoleLogger() *glg.Glg {
	return glg.New().
		SetMode(glg.NONE).
		SetLevelMode(glg.INFO, glg.STD).
		SetLevelMode(glg.WARN, glg.STD).
		SetLevelMode(glg.ERR, glg.STD)
}

// SetupLogger routes all log levels to the specified log file. Debug
// messages are only written when debug is true.
func SetupLogger(logFilePath string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	// Check if logger is already set up
	if isSetup {
		return nil
	}

	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f

	// Everything goes to the file; INFO, WARN and ERR also stay on the console
	l := glg.New().
		DisableColor().
		SetMode(glg.WRITER).
		AddWriter(logFile).
		SetLevelMode(glg.INFO, glg.BOTH).
		SetLevelMode(glg.WARN, glg.BOTH).
		SetLevelMode(glg.ERR, glg.BOTH)
	if !debug {
		l.SetLevelMode(glg.DEBG, glg.NONE)
	}
	logger = l

	logger.Infof("--- pbrconvert log started at %s ---", time.Now().Format(time.RFC3339))

	isSetup = true
	return nil
}

// CloseLogger closes the log file and restores console logging
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logger.Infof("--- pbrconvert log closed at %s ---", time.Now().Format(time.RFC3339))
		logFile.Close()
		logFile = nil
	}
	logger = newConsoleLogger()
	isSetup = false
}

// LogInfo logs an information message
func LogInfo(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	logger.Infof(format, args...)
}

// DebugLog logs a message if debug mode is enabled
func DebugLog(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	logger.Debugf(format, args...)
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	logger.Errorf(format, args...)
}

// LogWarning logs a warning message
func LogWarning(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	logger.Warnf(format, args...)
}

// LogTextureProcessed logs the outcome of converting one texture
func LogTextureProcessed(path string, success bool, errMsg string) {
	mu.Lock()
	defer mu.Unlock()

	// Successes are debug output; the console only shows the progress line
	if success {
		logger.Debugf("PROCESSED: %s", path)
	} else {
		logger.Errorf("FAILED: %s - Error: %s", path, errMsg)
	}
}

// LogTextureSkipped logs a texture left untouched because its artifacts are current
func LogTextureSkipped(path string) {
	mu.Lock()
	defer mu.Unlock()

	logger.Debugf("SKIPPED: %s", path)
}
