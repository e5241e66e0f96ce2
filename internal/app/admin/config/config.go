package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultEnv       = "local"
	defaultLogLevel  = "info"
	defaultConfigDir = ".adminhub"
	defaultPageSize  = 10
	defaultBaseURL   = "http://localhost:8080"
)

// Продукты, которыми управляет консоль. У каждого свой бэкенд
// и свой адрес в окружении: ADMINHUB_COURSES_URL и т.д.
var ProductNames = []string{"courses", "security", "pdftools", "hr", "social", "recruit"}

// Продукты с собственной лентой уведомлений.
var NotifySourceNames = []string{"courses", "security", "hr"}

type Product struct {
	Name    string
	BaseURL string
}

type Config struct {
	Env       string `mapstructure:"app_env"`
	LogLevel  string `mapstructure:"log_level"`
	ConfigDir string `mapstructure:"config_dir"`
	CachePath string `mapstructure:"cache_path"`
	ExportDir string `mapstructure:"export_dir"`
	PageSize  int    `mapstructure:"page_size"`
	Products  []Product
}

// MustLoad загружает конфигурацию консоли
func MustLoad() *Config {
	// Определяем путь к .env файлу (относительно места запуска)
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("PAGE_SIZE", defaultPageSize)
	viper.SetDefault("EXPORT_DIR", ".")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("Ошибка создания директории конфигурации: %v\n", err)
	}

	products := make([]Product, 0, len(ProductNames))
	for _, name := range ProductNames {
		key := "ADMINHUB_" + strings.ToUpper(name) + "_URL"
		viper.SetDefault(key, defaultBaseURL)
		products = append(products, Product{
			Name:    name,
			BaseURL: viper.GetString(key),
		})
	}

	config := &Config{
		Env:       viper.GetString("APP_ENV"),
		LogLevel:  viper.GetString("LOG_LEVEL"),
		ConfigDir: configDir,
		CachePath: filepath.Join(configDir, "snapshots.db"),
		ExportDir: viper.GetString("EXPORT_DIR"),
		PageSize:  viper.GetInt("PAGE_SIZE"),
		Products:  products,
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size должен быть положительным")
	}
	for _, p := range c.Products {
		if p.BaseURL == "" {
			return fmt.Errorf("не задан адрес продукта %s", p.Name)
		}
	}
	return nil
}

// Product возвращает продукт по имени.
func (c *Config) Product(name string) (Product, bool) {
	for _, p := range c.Products {
		if p.Name == name {
			return p, true
		}
	}
	return Product{}, false
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}
