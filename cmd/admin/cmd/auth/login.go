// cmd/admin/cmd/auth/login.go
package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"adminhub/cmd/admin/cmd/types"
	"adminhub/internal/app/admin"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в продукт",
	Long: `Аутентификация на бэкенде выбранного продукта (--product).

После входа токен сохраняется локально для последующих операций.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.AppKey).(*admin.App)
		if !ok {
			return fmt.Errorf("приложение не инициализировано")
		}
		product, _ := cmd.Flags().GetString("product")

		fmt.Printf("=== Вход: %s ===\n", product)
		fmt.Println()

		fmt.Print("Email: ")
		var email string
		_, _ = fmt.Scanln(&email)

		fmt.Print("Пароль: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		fmt.Println("Аутентификация...")
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		profile, err := app.Login(ctx, product, email, string(password))
		if err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		fmt.Println()
		color.Green("✅ Вход выполнен успешно!")
		if name := profile.StringField("name"); name != "" {
			fmt.Printf("Здравствуйте, %s\n", name)
		}

		return nil
	},
}
