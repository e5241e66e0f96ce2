// cmd/admin/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/slog"

	"adminhub/cmd/admin/cmd/types"
	"adminhub/internal/app/admin"
	"adminhub/internal/app/admin/config"
	"adminhub/internal/utils/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
	app     *admin.App
	debug   bool
	product string
)

var rootCmd = &cobra.Command{
	Use:   "adminhub",
	Short: "AdminHub - единая консоль администратора продуктов",
	Long: `AdminHub — консоль для управления несколькими продуктовыми
бэкендами из одного места: пользователи, курсы, заказы, уведомления.

У каждого продукта свой сервер и своя сессия; консоль переживает
разнобой форматов их ответов и работает с кэшем, когда сервер лежит.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	if debug {
		cfg.Env = "local"
	}

	log = logger.New(cfg.Env)

	app, err = admin.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	// Передаем приложение командам через контекст
	cmd.SetContext(context.WithValue(cmd.Context(), types.AppKey, app))

	return nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		configDir := filepath.Join(home, ".adminhub")
		viper.AddConfigPath(configDir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Конфиг не найден, используем значения по умолчанию
	}

	return config.MustLoad(), nil
}

func init() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().StringVarP(&product, "product", "p", "courses", "продукт, с которым работаем")

	// Команды будут добавлены в init() соответствующих файлов
}
