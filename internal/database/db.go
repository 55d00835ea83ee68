package database

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Per-connection settings, applied by the modernc driver from the DSN
var connPragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
}

// Config holds database configuration
type Config struct {
	Path  string // Path to SQLite database file
	Debug bool   // Log every statement
}

// DB wraps the GORM database instance
type DB struct {
	db *gorm.DB
}

// NewDB opens (creating if needed) the history database and migrates the schema
func NewDB(config Config, log *log.Logger) (*DB, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(config.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.New(sqlite.Config{
		DriverName: "sqlite",
		DSN:        historyDSN(config.Path),
	}), &gorm.Config{Logger: newGormLogger(log, config.Debug)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", config.Path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers anyway
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Transmission{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if log != nil {
		log.Printf("History database ready: %s", config.Path)
	}
	return &DB{db: db}, nil
}

func historyDSN(path string) string {
	q := url.Values{}
	for _, p := range connPragmas {
		q.Add("_pragma", p)
	}
	return path + "?" + q.Encode()
}

// newGormLogger routes GORM output through log; nil silences it
func newGormLogger(log *log.Logger, debug bool) logger.Interface {
	if log == nil {
		return logger.Default.LogMode(logger.Silent)
	}
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(log, logger.Config{
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// GetDB returns the underlying GORM database instance
func (db *DB) GetDB() *gorm.DB {
	return db.db
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health pings the database
func (db *DB) Health() error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
