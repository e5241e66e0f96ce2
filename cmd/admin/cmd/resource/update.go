// cmd/admin/cmd/resource/update.go
package resource

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"adminhub/internal/domain/dialog"
	"adminhub/internal/model"
)

var UpdateCmd = &cobra.Command{
	Use:   "update <коллекция> <id>",
	Short: "Обновить запись",
	Long: `Интерактивное редактирование. Пустой ввод оставляет текущее
значение, пустой пароль означает "не менять".`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, product, err := appFrom(cmd)
		if err != nil {
			return err
		}
		resourceName, id := args[0], args[1]

		st, err := app.Store(product, resourceName)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := st.Load(ctx, nil); err != nil {
			return fmt.Errorf("ошибка загрузки коллекции: %w", err)
		}

		var rec model.Record
		found := false
		for _, r := range st.Records() {
			if r.ID == id {
				rec = r
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("запись %s не найдена в %s", id, resourceName)
		}

		schema := schemaFor(resourceName)
		d := dialog.New(st, schema, app.Logger())
		d.OpenEdit(rec)

		fmt.Printf("=== Редактирование: %s/%s #%s ===\n", product, resourceName, id)
		fmt.Println()

		reader := bufio.NewReader(os.Stdin)
		for _, spec := range schema {
			current := ""
			if !spec.Sensitive {
				current = rec.StringField(spec.Name)
			}

			value, err := promptField(reader, spec, current)
			if err != nil {
				d.Cancel()
				return err
			}
			if value == "" && !spec.Sensitive {
				// Пустой ввод - оставить как было
				continue
			}
			if err := d.SetField(spec.Name, value); err != nil {
				d.Cancel()
				return err
			}
		}

		if _, err := d.Submit(ctx); err != nil {
			return fmt.Errorf("ошибка обновления записи: %w", err)
		}

		color.Green("✅ Запись %s обновлена", id)
		return nil
	},
}
