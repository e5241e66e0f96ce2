// cmd/admin/cmd/notify/list.go
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"adminhub/internal/app/admin/config"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать объединенную ленту",
	Long: `Опрашивает все источники и печатает ленту, новые сверху.
Недоступный источник помечается, остальные показываются как обычно.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		agg := app.Notifier()
		agg.Refresh(ctx)

		for _, name := range config.NotifySourceNames {
			if err := agg.SourceErr(name); err != nil {
				color.Yellow("⚠️  %s недоступен: %v", name, err)
			}
		}

		feed := agg.Feed()
		if len(feed) == 0 {
			fmt.Println("Уведомлений нет")
			return nil
		}

		fmt.Printf("Непрочитанных: %s\n\n", color.New(color.Bold).Sprint(agg.Unread()))

		for _, n := range feed {
			marker := " "
			title := n.Title
			if !n.Read {
				marker = color.YellowString("●")
				title = color.New(color.Bold).Sprint(title)
			}

			fmt.Printf("%s [%s] %s\n", marker, n.Source, title)
			if n.Message != "" {
				fmt.Printf("    %s\n", n.Message)
			}
			fmt.Printf("    #%s · %s\n", n.ID, n.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Println()
		}

		return nil
	},
}
