// Package logging provides the file-backed debug logger used by the CLI.
// All output goes to a single log file; when no logger has been set up the
// messages are dropped (except LogInfo, which falls back to stderr).
package logging

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

var (
	debugLogger *log.Logger
	logFile     *os.File
	mu          sync.Mutex
	isSetup     bool
)

// SetupLogger initializes the debug logger with the specified log file.
// Calling it again while a logger is active is a no-op.
func SetupLogger(logFilePath string) error {
	mu.Lock()
	defer mu.Unlock()

	if isSetup {
		return nil
	}

	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	debugLogger = log.New(logFile, "", log.LstdFlags)
	debugLogger.Printf("--- rupphash debug log started at %s ---\n", time.Now().Format(time.RFC3339))

	isSetup = true
	return nil
}

// CloseLogger closes the log file.
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		debugLogger.Printf("--- rupphash debug log closed at %s ---\n", time.Now().Format(time.RFC3339))
		logFile.Close()
		logFile = nil
		isSetup = false
	}
}

func logf(prefix, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Printf(prefix+format, args...)
	}
}

// LogInfo logs an information message, falling back to the standard logger
// when no log file is configured.
func LogInfo(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Printf("INFO: "+format, args...)
	} else {
		log.Printf("INFO: "+format, args...)
	}
}

// DebugLog logs a message if a log file is configured.
func DebugLog(format string, args ...interface{}) {
	logf("", format, args...)
}

// LogError logs an error message.
func LogError(format string, args ...interface{}) {
	logf("ERROR: ", format, args...)
}

// LogWarning logs a warning message.
func LogWarning(format string, args ...interface{}) {
	logf("WARNING: ", format, args...)
}

// LogImageProcessed records the outcome of hashing one image.
func LogImageProcessed(path string, success bool, errMsg string) {
	if success {
		logf("", "PROCESSED: %s", path)
	} else {
		logf("", "FAILED: %s - Error: %s", path, errMsg)
	}
}
