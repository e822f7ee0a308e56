package repository

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vinicius342/AnotaJa-sub000/config"
	"github.com/vinicius342/AnotaJa-sub000/models"
)

// InitDB initializes and returns a GORM database instance for the configured driver.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	level := ParseLogLevel(cfg.Database.LogLevel)

	switch cfg.Database.Driver {
	case "sqlite":
		dsn := cfg.Database.Name
		if !strings.Contains(dsn, "?") {
			dsn += "?_foreign_keys=on"
		}
		return OpenSQLite(dsn, level)
	case "mysql", "":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.Name,
		)
		db, err := gorm.Open(mysql.Open(dsn), gormConfig(level))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// OpenSQLite opens an embedded database. The pool is pinned to one connection so that
// in-memory databases survive and writers never contend for table locks.
func OpenSQLite(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(level))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func gormConfig(level logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}
}

// ParseLogLevel maps a config string to a gorm log level. Unknown values fall back to warn.
func ParseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Category{},
		&models.Addition{},
		&models.CategoryAddition{},
		&models.MenuItem{},
		&models.ItemAddition{},
		&models.ExclusiveComplement{},
		&models.Neighborhood{},
		&models.Customer{},
		&models.Order{},
		&models.OrderLine{},
		&models.OrderLineComplement{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}
