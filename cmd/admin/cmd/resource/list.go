// cmd/admin/cmd/resource/list.go
package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"adminhub/internal/app/admin"
	"adminhub/internal/domain/dialog"
	"adminhub/internal/domain/export"
	"adminhub/internal/domain/view"
	"adminhub/internal/model"
)

var (
	listSearch      string
	listFilter      string
	listFilterField string
	listSort        string
	listDesc        bool
	listPage        int
	listPageSize    int
	listFormat      string
	listStats       bool
)

var ListCmd = &cobra.Command{
	Use:   "list <коллекция>",
	Short: "Список записей коллекции",
	Long: `Просмотр записей с поиском, фильтром, сортировкой и пагинацией.

Если бэкенд недоступен, показывается последний локальный снимок.`,
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

		pageSize := listPageSize
		if pageSize <= 0 {
			pageSize = app.Config().PageSize
		}

		schema := schemaFor(resourceName)
		proj := view.Derive(records, view.Params{
			Search:       listSearch,
			SearchFields: fieldNames(schema),
			Filter:       listFilter,
			FilterField:  listFilterField,
			SortKey:      listSort,
			SortDesc:     listDesc,
			Page:         listPage,
			PageSize:     pageSize,
		})

		switch listFormat {
		case "json":
			if err := printJSON(proj.Items); err != nil {
				return err
			}
		case "csv":
			if err := printCSV(proj.Items, schema); err != nil {
				return err
			}
		default:
			printTable(proj.Items, schema)
		}

		fmt.Printf("\nСтраница %d из %d (всего записей: %d)\n",
			proj.Page, proj.TotalPages, proj.TotalCount)

		if listStats {
			field := listFilterField
			if field == "" {
				field = "status"
			}
			printStats(records, field)
		}

		return nil
	},
}

// loadRecords тянет коллекцию с сервера, при отказе падает на кэш.
func loadRecords(parent context.Context, app *admin.App, product, resourceName string) ([]model.Record, error) {
	st, err := app.Store(product, resourceName)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(parent, 30*time.Second)
	defer cancel()

	if err := st.Load(ctx, nil); err != nil {
		cached, savedAt, cerr := app.CachedRecords(product, resourceName)
		if cerr != nil || cached == nil {
			return nil, fmt.Errorf("ошибка загрузки коллекции: %w", err)
		}
		color.Yellow("⚠️  %s недоступен, показан снимок от %s",
			product, savedAt.Format("2006-01-02 15:04"))
		return cached, nil
	}

	return st.Records(), nil
}

func printTable(records []model.Record, schema []dialog.FieldSpec) {
	if len(records) == 0 {
		fmt.Println("Записи не найдены")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprint(w, "ID")
	for _, spec := range schema {
		if spec.Sensitive {
			continue
		}
		fmt.Fprintf(w, "\t%s", spec.Name)
	}
	fmt.Fprintln(w, "\tСоздано")

	for _, rec := range records {
		fmt.Fprint(w, rec.ID)
		for _, spec := range schema {
			if spec.Sensitive {
				continue
			}
			fmt.Fprintf(w, "\t%s", rec.StringField(spec.Name))
		}
		created := ""
		if !rec.CreatedAt.IsZero() {
			created = rec.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "\t%s\n", created)
	}
}

func printJSON(records []model.Record) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func printCSV(records []model.Record, schema []dialog.FieldSpec) error {
	data, err := export.Rows(records, exportColumns(schema))
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func printStats(records []model.Record, field string) {
	stats := view.Aggregate(records, field, 7, time.Now())

	fmt.Println()
	fmt.Printf("Всего: %d, уникальных значений %q: %d, за 7 дней: %d\n",
		stats.Total, field, stats.UniqueValues, stats.CreatedLastN)
	for value, count := range stats.ByValue {
		fmt.Printf("  %s: %d\n", value, count)
	}
}

func init() {
	ListCmd.Flags().StringVar(&listSearch, "search", "", "поиск по текстовым полям")
	ListCmd.Flags().StringVar(&listFilter, "filter", view.FilterAll, "значение фильтра")
	ListCmd.Flags().StringVar(&listFilterField, "filter-field", "", "поле фильтра")
	ListCmd.Flags().StringVar(&listSort, "sort", "", "поле сортировки")
	ListCmd.Flags().BoolVar(&listDesc, "desc", false, "сортировать по убыванию")
	ListCmd.Flags().IntVar(&listPage, "page", 1, "номер страницы")
	ListCmd.Flags().IntVar(&listPageSize, "page-size", 0, "размер страницы")
	ListCmd.Flags().StringVar(&listFormat, "format", "table", "формат вывода: table, json, csv")
	ListCmd.Flags().BoolVar(&listStats, "stats", false, "показать сводку по коллекции")
}
