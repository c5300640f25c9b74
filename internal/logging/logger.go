// Package logging configures slog: JSON to stdout, plus ERROR records
// persisted to system_logs once the database is up.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gorm.io/gorm"
)

// Setup installs a JSON stdout logger. It runs before the database exists.
func Setup() {
	slog.SetDefault(slog.New(newStdout(os.Stdout)))
}

func newStdout(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}

// AttachDB fans logs out to stdout and a DBHandler writing to db.
// The returned handler must be stopped on shutdown to flush its buffer.
func AttachDB(db *gorm.DB) *DBHandler {
	h := NewDBHandler(db, DefaultFlushInterval, DefaultBatchSize)
	slog.SetDefault(slog.New(NewMultiHandler(newStdout(os.Stdout), h)))
	return h
}
