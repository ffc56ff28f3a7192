package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PORT", "abc")
	t.Setenv("DB_PATH", "/tmp/farmacia.db")
	t.Setenv("DB_SSL_MODE_DISABLE", "true")
	t.Setenv("DB_LOG_LEVEL", "")

	cfg := LoadConfig()
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, uint(5432), cfg.Port)
	assert.Equal(t, "/tmp/farmacia.db", cfg.Path)
	assert.True(t, cfg.SSLDisable)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5433, Name: "farmacia", SSLDisable: true}
	assert.Equal(t,
		"host=db user=u password=p dbname=farmacia port=5433 sslmode=disable",
		PostgresDSN(cfg, "u", "p"))

	cfg.SSLDisable = false
	assert.Equal(t, "host=db user=u password=p dbname=farmacia port=5433", PostgresDSN(cfg, "u", "p"))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?_pragma=foreign_keys(1)", SQLiteDSN(":memory:"))
	assert.Equal(t, "farmacia.db?_pragma=foreign_keys(1)", SQLiteDSN("farmacia.db"))
	assert.Equal(t, "f.db?mode=rw&_pragma=foreign_keys(1)", SQLiteDSN("f.db?mode=rw"))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, ParseLogLevel("SILENT"))
	assert.Equal(t, logger.Warn, ParseLogLevel("warn"))
	assert.Equal(t, logger.Info, ParseLogLevel("info"))
	assert.Equal(t, logger.Error, ParseLogLevel("qualquer"))
}

func TestRetrieveCredentialsFromEnv(t *testing.T) {
	t.Setenv("DB_USERNAME", "farmaceutico")
	t.Setenv("DB_PASSWORD", "segredo")

	u, p, err := retrieveCredentials(t.Context(), "")
	require.NoError(t, err)
	assert.Equal(t, "farmaceutico", u)
	assert.Equal(t, "segredo", p)
}

func TestRetrieveCredentialsSemFonte(t *testing.T) {
	t.Setenv("DB_USERNAME", "")
	t.Setenv("DB_PASSWORD", "")

	_, _, err := retrieveCredentials(t.Context(), "")
	assert.Error(t, err)
}

func TestParseCredentials(t *testing.T) {
	u, p, err := parseCredentials(`{"username":"admin","password":"123"}`)
	require.NoError(t, err)
	assert.Equal(t, "admin", u)
	assert.Equal(t, "123", p)

	_, _, err = parseCredentials("não é json")
	assert.Error(t, err)
}

func TestConnectSQLiteEMigrate(t *testing.T) {
	database, err := Connect(Config{Driver: DriverSQLite, Path: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, Migrate(database))

	for _, tabela := range []string{"endereco", "cliente", "produto", "receita", "venda", "venda_produto"} {
		assert.True(t, database.Migrator().HasTable(tabela), tabela)
	}
}

func TestConnectDriverDesconhecido(t *testing.T) {
	_, err := Connect(Config{Driver: "oracle"})
	assert.Error(t, err)
}
