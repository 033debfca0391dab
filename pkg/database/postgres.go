package database

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aebalz/mindful-journal/internal/config"
	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/pkg/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DSN builds the postgres connection string from configuration.
func DSN(cfg *config.AppConfig) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSslMode,
		cfg.DBTimezone,
	)
}

// SQLiteDSN builds a sqlite DSN with foreign keys enforced so that
// cascading deletes behave the same as on postgres.
func SQLiteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// ConnectDB initializes the database connection using GORM.
func ConnectDB(cfg *config.AppConfig, log zerolog.Logger) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	}

	dialector := postgres.Open(DSN(cfg))
	if cfg.DBDriver == "sqlite" {
		dialector = sqlite.Open(SQLiteDSN(cfg.DBPath))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger: logger.NewGormLogger(log, logger.GormLoggerConfig{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Pipelines each hold one dedicated connection while they persist results,
	// so the pool needs headroom above the request load.
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info().Str("driver", db.Dialector.Name()).Str("db", cfg.DBName).Msg("database connection established")
	return db, nil
}

// MigrateDB brings the schema up to date. Postgres runs the embedded goose
// migrations; other dialects (sqlite in tests) fall back to GORM auto-migration.
func MigrateDB(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if db.Dialector.Name() != "postgres" {
		return AutoMigrate(db)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// AutoMigrate runs GORM auto-migrations for the defined models.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(&model.User{}, &model.JournalEntry{}, &model.Article{})
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// CloseDB closes the database connection.
func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// PingDB checks the database connection.
func PingDB(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB for ping: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
