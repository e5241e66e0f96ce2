package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Доступность бэкендов всех продуктов",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Println("=== Состояние продуктов ===")
		fmt.Println()

		for _, p := range cfg.Products {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			err := app.CheckConnection(ctx, p.Name)
			cancel()

			if err != nil {
				fmt.Printf("%-10s %s  %v\n", p.Name, color.RedString("✗ недоступен"), err)
				continue
			}
			fmt.Printf("%-10s %s\n", p.Name, color.GreenString("✓ в строю"))
		}

		return nil
	},
}
