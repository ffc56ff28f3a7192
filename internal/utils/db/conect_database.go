package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Connect abre o banco indicado em cfg. TranslateError faz o gorm devolver
// gorm.ErrDuplicatedKey e gorm.ErrForeignKeyViolated.
func Connect(cfg Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(ParseLogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("abrir banco %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == DriverSQLite {
		// sqlite aceita um escritor por vez
		sqlDB, err := database.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return database, nil
}

func dialectorFor(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverSQLite:
		return sqlite.Open(SQLiteDSN(cfg.Path)), nil
	case DriverPostgres, "":
		username, password, err := retrieveCredentials(context.Background(), cfg.SecretID)
		if err != nil {
			return nil, err
		}
		return postgres.Open(PostgresDSN(cfg, username, password)), nil
	}
	return nil, fmt.Errorf("DB_DRIVER desconhecido: %q", cfg.Driver)
}

func PostgresDSN(cfg Config, username, password string) string {
	var sslMode string
	if cfg.SSLDisable {
		sslMode = " sslmode=disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s", cfg.Host, username, password, cfg.Name, cfg.Port, sslMode)
}

// SQLiteDSN liga as chaves estrangeiras, que o sqlite deixa desligadas por padrão.
func SQLiteDSN(path string) string {
	if path == ":memory:" {
		path = "file::memory:"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

func ParseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Error
	}
}
