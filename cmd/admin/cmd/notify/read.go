package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var ReadCmd = &cobra.Command{
	Use:   "read <id>...",
	Short: "Пометить уведомления прочитанными",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		agg := app.Notifier()
		agg.Refresh(ctx)

		for _, id := range args {
			if err := agg.MarkAsRead(ctx, id); err != nil {
				return fmt.Errorf("ошибка пометки %s: %w", id, err)
			}
			fmt.Printf("✓ %s прочитано\n", id)
		}

		fmt.Printf("Непрочитанных осталось: %d\n", agg.Unread())
		return nil
	},
}
