package logger

import (
	"context"
	"fmt"
	"time"

	common_models "go-dutyleave/internal/common/models"
	"go-dutyleave/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to the background worker
type LogEntry struct {
	Level    zapcore.Level
	Message  string
	Function string
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	db      *mongo.Database
	logChan chan LogEntry
}

// NewDBLogWriter initializes the worker
func NewDBLogWriter(mongodb *database.MongodbDB) *DBLogWriter {
	writer := &DBLogWriter{
		db:      mongodb.DB,
		logChan: make(chan LogEntry, 1000),
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by the Zap core hook
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		// Channel full: drop rather than block the request path
		fmt.Println("DB log channel full, dropping:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		logRecord := common_models.Log{
			Message:      entry.Message,
			Level:        entry.Level.String(),
			Function:     entry.Function,
			CreatedOnUtc: time.Now().UTC(),
		}

		// Insert errors are ignored so logging can never take the app down
		w.db.Collection("logs").InsertOne(context.Background(), logRecord)
	}
}
