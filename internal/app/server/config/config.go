package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress = "localhost:8080"
	defaultAuditPath  = "mockapi_audit.db"
	defaultMigrations = "migrations"
)

type Config struct {
	Env    string
	Server server
	Audit  audit
	Seed   seed
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type audit struct {
	DatabasePath string `env:"AUDIT_DB_PATH"`
	Migrations   string `env:"MIGRATIONS_PATH"`
}

type seed struct {
	AdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
}

// MustLoad собирает конфигурацию заглушки из .env и переменных
// окружения. Отсутствие .env не фатально - это сервер для разработки.
func MustLoad() *Config {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", EnvLocal)
	viper.SetDefault("RUN_ADDRESS", defaultRunAddress)
	viper.SetDefault("AUDIT_DB_PATH", defaultAuditPath)
	viper.SetDefault("MIGRATIONS_PATH", defaultMigrations)
	viper.SetDefault("SEED_ADMIN_EMAIL", "admin@example.com")
	viper.SetDefault("SEED_ADMIN_PASSWORD", "admin12345")

	return &Config{
		Env: viper.GetString("APP_ENV"),
		Server: server{
			RunAddress: viper.GetString("RUN_ADDRESS"),
		},
		Audit: audit{
			DatabasePath: viper.GetString("AUDIT_DB_PATH"),
			Migrations:   viper.GetString("MIGRATIONS_PATH"),
		},
		Seed: seed{
			AdminEmail:    viper.GetString("SEED_ADMIN_EMAIL"),
			AdminPassword: viper.GetString("SEED_ADMIN_PASSWORD"),
		},
	}
}
