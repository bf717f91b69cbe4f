package logging

import (
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	fileMaxSizeMB  = 64
	fileMaxBackups = 2
)

// FileAppender writes console formatted log lines to a size rotated file.
type FileAppender struct {
	console ConsoleAppender
	file    *lumberjack.Logger
}

// NewFileAppender returns an appender writing to path. Old files are compressed once the
// current one grows past its size limit.
func NewFileAppender(path string) *FileAppender {
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
		Compress:   true,
	}
	return &FileAppender{console: NewWriterAppender(file), file: file}
}

// Write outputs the log entry to the file.
func (appender *FileAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return appender.console.Write(entry, fields)
}

// Sync is a no-op, writes go straight to the file.
func (appender *FileAppender) Sync() error {
	return nil
}

// Close closes the underlying file.
func (appender *FileAppender) Close() error {
	return appender.file.Close()
}
