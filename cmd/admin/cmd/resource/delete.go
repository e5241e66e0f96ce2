package resource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <коллекция> <id>",
	Short: "Удалить запись",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, product, err := appFrom(cmd)
		if err != nil {
			return err
		}
		resourceName, id := args[0], args[1]

		if !deleteYes {
			fmt.Printf("Удалить %s/%s #%s? [y/N]: ", product, resourceName, id)
			var answer string
			_, _ = fmt.Scanln(&answer)
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Отменено")
				return nil
			}
		}

		st, err := app.Store(product, resourceName)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := st.Remove(ctx, id); err != nil {
			return fmt.Errorf("ошибка удаления записи: %w", err)
		}

		fmt.Printf("✓ Запись %s удалена\n", id)
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "не спрашивать подтверждение")
}
