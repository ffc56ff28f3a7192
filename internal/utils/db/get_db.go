package db

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Config reúne as variáveis de ambiente de acesso ao banco.
type Config struct {
	Driver     string // "postgres" ou "sqlite"
	Host       string
	Port       uint
	Name       string
	SecretID   string
	Path       string // arquivo do sqlite
	SSLDisable bool
	LogLevel   string
}

// LoadConfig carrega o .env (se existir) e lê as variáveis DB_*.
func LoadConfig() Config {
	_ = godotenv.Load()

	port, err := strconv.ParseUint(os.Getenv("DB_PORT"), 10, 32)
	if err != nil {
		port = 5432 // Default PostgreSQL port
	}

	return Config{
		Driver:     getEnv("DB_DRIVER", DriverPostgres),
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       uint(port),
		Name:       getEnv("DB_NAME", "farmacia"),
		SecretID:   os.Getenv("DB_SECRET_ID"),
		Path:       getEnv("DB_PATH", "farmacia.db"),
		SSLDisable: os.Getenv("DB_SSL_MODE_DISABLE") == "true",
		LogLevel:   getEnv("DB_LOG_LEVEL", "error"),
	}
}

func GetDB() (*gorm.DB, error) {
	return Connect(LoadConfig())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
