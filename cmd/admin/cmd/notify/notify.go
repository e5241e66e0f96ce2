package notify

import (
	"fmt"

	"github.com/spf13/cobra"

	"adminhub/cmd/admin/cmd/types"
	"adminhub/internal/app/admin"
)

// NotifyCmd - родительская команда для ленты уведомлений
var NotifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Уведомления всех продуктов",
	Long:  `Объединенная лента уведомлений: источники опрашиваются параллельно.`,
}

func appFrom(cmd *cobra.Command) (*admin.App, error) {
	app, ok := cmd.Context().Value(types.AppKey).(*admin.App)
	if !ok {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}
