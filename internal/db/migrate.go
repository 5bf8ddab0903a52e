package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/config"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

// Options controls Connect.
type Options struct {
	// SQLMigrations runs ./migrations through golang-migrate instead of AutoMigrate (postgres only).
	SQLMigrations bool
	MigrationsDir string
	Retries       int
}

// Connect opens the session database described by cfg and brings its schema up to date.
func Connect(cfg config.DatabaseConfig, opts Options) (*gorm.DB, error) {
	dsn := NormalizeDSN(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("DATABASE_DSN is empty")
	}
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	if IsSQLite(dsn) {
		path := SQLitePath(dsn)
		if dir := filepath.Dir(path); dir != "." && !isMemory(path) {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		db, err := gorm.Open(sqlite.Open(path), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, AutoMigrate(db)
	}

	retries := opts.Retries
	if retries <= 0 {
		retries = 1
	}
	var db *gorm.DB
	var err error
	for i := 0; i < retries; i++ {
		db, err = gorm.Open(postgres.Open(dsn), gcfg)
		if err == nil {
			break
		}
		log.Printf("db connect attempt %d/%d failed: %v", i+1, retries, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	log.Printf("[DB] Using DSN: %s", MaskDSN(dsn))

	if opts.SQLMigrations {
		dir := opts.MigrationsDir
		if dir == "" {
			dir = "migrations"
		}
		if err := runSQLMigrations(dir, dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	if !db.Migrator().HasTable(&session.Record{}) {
		return nil, errors.New("missing table after migration: sessions")
	}
	return db, nil
}

// AutoMigrate creates or updates every table owned by this application.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&session.Record{}); err != nil {
		return fmt.Errorf("automigrate %T: %w", &session.Record{}, err)
	}
	return nil
}

// runSQLMigrations executes migrations in dir using golang-migrate file source.
// golang-migrate wants the URL form, so key=value DSNs are not supported here.
func runSQLMigrations(dir, dsn string) error {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func isMemory(path string) bool {
	return path == ":memory:" || filepath.Base(path) == ":memory:" || len(path) > 5 && path[:5] == "file:"
}
