package utils

import (
	"fmt"
	"log"
	"os"
)

// Logger is a custom logger type writing leveled lines to a file, or to
// stderr when no file path is configured.
type Logger struct {
	file   *os.File
	logger *log.Logger
}

// NewLogger creates a new logger instance. An empty filePath logs to stderr.
func NewLogger(filePath string) (*Logger, error) {
	if filePath == "" {
		return &Logger{logger: log.New(os.Stderr, "", log.LstdFlags)}, nil
	}

	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		file:   file,
		logger: log.New(file, "", log.LstdFlags),
	}, nil
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	l.logger.SetPrefix("INFO: ")
	l.logger.Println(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) {
	l.logger.SetPrefix("WARN: ")
	l.logger.Println(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string) {
	l.logger.SetPrefix("ERROR: ")
	l.logger.Println(msg)
}

// Close closes the log file, if any.
func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
	}
}
