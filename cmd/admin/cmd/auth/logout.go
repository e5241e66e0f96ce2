package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"adminhub/cmd/admin/cmd/types"
	"adminhub/internal/app/admin"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из продукта",
	Long:  `Отзывает токен на сервере и удаляет его локально.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.AppKey).(*admin.App)
		if !ok {
			return fmt.Errorf("приложение не инициализировано")
		}
		product, _ := cmd.Flags().GetString("product")

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if err := app.Logout(ctx, product); err != nil {
			return fmt.Errorf("ошибка выхода: %w", err)
		}

		fmt.Printf("✓ Сессия %s завершена\n", product)
		return nil
	},
}
