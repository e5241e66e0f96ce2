package resource

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

var GetCmd = &cobra.Command{
	Use:   "get <коллекция> <id>",
	Short: "Получить одну запись",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, product, err := appFrom(cmd)
		if err != nil {
			return err
		}
		resourceName, id := args[0], args[1]

		tr, err := app.Transport(product)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		env, err := tr.Request(ctx, http.MethodGet, "/api/"+resourceName+"/"+id, nil)
		if err != nil {
			return fmt.Errorf("ошибка получения записи: %w", err)
		}

		rec, ok := env.One("data", singular(resourceName))
		if !ok {
			return fmt.Errorf("сервер не вернул запись")
		}

		fmt.Printf("ID: %s\n", rec.ID)

		keys := make([]string, 0, len(rec.Fields))
		for k := range rec.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s: %s\n", k, rec.StringField(k))
		}

		if !rec.CreatedAt.IsZero() {
			fmt.Printf("Создано: %s\n", rec.CreatedAt.Format(time.RFC3339))
		}
		if !rec.UpdatedAt.IsZero() {
			fmt.Printf("Обновлено: %s\n", rec.UpdatedAt.Format(time.RFC3339))
		}

		return nil
	},
}
