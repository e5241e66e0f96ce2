package resource

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"adminhub/cmd/admin/cmd/types"
	"adminhub/internal/app/admin"
	"adminhub/internal/domain/dialog"
)

// ResourceCmd - родительская команда для работы с коллекциями продукта
var ResourceCmd = &cobra.Command{
	Use:   "resource",
	Short: "Управление записями продукта",
	Long: `Просмотр, создание, обновление, удаление и выгрузка записей
любой коллекции выбранного продукта: users, courses, orders и т.д.`,
}

func appFrom(cmd *cobra.Command) (*admin.App, string, error) {
	app, ok := cmd.Context().Value(types.AppKey).(*admin.App)
	if !ok {
		return nil, "", fmt.Errorf("приложение не инициализировано")
	}
	product, _ := cmd.Flags().GetString("product")
	return app, product, nil
}

// schemaFor описывает поля формы коллекции. Незнакомая коллекция
// получает минимальную схему.
func schemaFor(resource string) []dialog.FieldSpec {
	switch resource {
	case "users":
		return []dialog.FieldSpec{
			{Name: "name", Required: true},
			{Name: "email", Required: true},
			{Name: "password", Required: true, Sensitive: true},
			{Name: "role"},
			{Name: "status"},
			{Name: "site", IsURL: true},
		}
	case "courses":
		return []dialog.FieldSpec{
			{Name: "title", Required: true},
			{Name: "status"},
			{Name: "students"},
		}
	case "orders":
		return []dialog.FieldSpec{
			{Name: "number", Required: true},
			{Name: "status"},
			{Name: "total"},
		}
	default:
		return []dialog.FieldSpec{
			{Name: "name", Required: true},
			{Name: "status"},
		}
	}
}

func fieldNames(schema []dialog.FieldSpec) []string {
	out := make([]string, 0, len(schema))
	for _, spec := range schema {
		if spec.Sensitive {
			continue
		}
		out = append(out, spec.Name)
	}
	return out
}

func singular(resource string) string {
	return strings.TrimSuffix(resource, "s")
}
