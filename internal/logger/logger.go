package logger

import (
	"go-dutyleave/internal/config"
	"go-dutyleave/internal/database"

	"go.uber.org/zap"
)

// NewLogger builds the application logger: console output plus an async
// writer that mirrors entries into the logs collection. The collection
// writer is skipped when running on the in-memory backend.
func NewLogger(cfg *config.Config, mongodb *database.MongodbDB) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Enable Caller to get the function name into entries
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	if mongodb.DB == nil {
		return baseLogger, nil
	}

	dbWriter := NewDBLogWriter(mongodb)
	finalCore := NewDBCore(baseLogger.Core(), dbWriter)

	return zap.New(finalCore, zap.AddCaller()), nil
}
