// cmd/admin/cmd/resource/export.go
package resource

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"adminhub/internal/domain/dialog"
	"adminhub/internal/domain/export"
	"adminhub/internal/domain/view"
)

var (
	exportSearch      string
	exportFilter      string
	exportFilterField string
)

var ExportCmd = &cobra.Command{
	Use:   "export <коллекция>",
	Short: "Выгрузить коллекцию в CSV",
	Long: `Сохраняет текущее представление коллекции (с учетом поиска и
фильтра) в CSV-файл с датой в имени. Пустая коллекция дает файл
из одного заголовка.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, product, err := appFrom(cmd)
		if err != nil {
			return err
		}
		resourceName := args[0]

		records, err := loadRecords(cmd.Context(), app, product, resourceName)
		if err != nil {
			return err
		}

		schema := schemaFor(resourceName)

		// Выгружаются все строки представления, без пагинации
		pageSize := len(records)
		if pageSize == 0 {
			pageSize = 1
		}
		proj := view.Derive(records, view.Params{
			Search:       exportSearch,
			SearchFields: fieldNames(schema),
			Filter:       exportFilter,
			FilterField:  exportFilterField,
			PageSize:     pageSize,
		})

		data, err := export.Rows(proj.Items, exportColumns(schema))
		if err != nil {
			return fmt.Errorf("ошибка сборки выгрузки: %w", err)
		}

		path, err := export.WriteFile(app.Config().ExportDir, resourceName, data)
		if err != nil {
			return err
		}

		color.Green("✅ Выгружено записей: %d", len(proj.Items))
		fmt.Printf("Файл: %s\n", path)
		return nil
	},
}

// exportColumns строит колонки из схемы: ID, открытые поля, дата создания.
func exportColumns(schema []dialog.FieldSpec) []export.Column {
	columns := []export.Column{export.IDColumn("id")}
	for _, spec := range schema {
		if spec.Sensitive {
			continue
		}
		columns = append(columns, export.FieldColumn(spec.Name, spec.Name))
	}
	columns = append(columns, export.CreatedColumn("created_at"))
	return columns
}

func init() {
	ExportCmd.Flags().StringVar(&exportSearch, "search", "", "поиск по текстовым полям")
	ExportCmd.Flags().StringVar(&exportFilter, "filter", view.FilterAll, "значение фильтра")
	ExportCmd.Flags().StringVar(&exportFilterField, "filter-field", "", "поле фильтра")
}
