package db

import (
	"fmt"
	"time"

	"agricredit-backend/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver named by DB_DRIVER.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return mysql.Open(cfg.MySQLDSN()), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.PostgresDSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLitePath), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

func OpenGorm(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dial, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	return OpenGormWithDialector(dial, log, cfg.LogLevel)
}

func OpenGormWithDialector(dial gorm.Dialector, log *zap.Logger, level string) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := &gorm.Config{
		Logger: logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLevel(level),
			IgnoreRecordNotFoundError: true,
		}),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Info("gorm: connected", zap.String("dialect", dial.Name()))
	return db, nil
}

func gormLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "error", "dpanic", "panic", "fatal":
		return logger.Error
	}
	return logger.Warn
}
