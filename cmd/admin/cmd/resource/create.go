// cmd/admin/cmd/resource/create.go
package resource

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"adminhub/internal/domain/dialog"
)

var CreateCmd = &cobra.Command{
	Use:   "create <коллекция>",
	Short: "Создать запись",
	Long: `Интерактивная форма создания записи. Обязательные поля помечены *,
пароли запрашиваются скрыто.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, product, err := appFrom(cmd)
		if err != nil {
			return err
		}
		resourceName := args[0]

		st, err := app.Store(product, resourceName)
		if err != nil {
			return err
		}

		schema := schemaFor(resourceName)
		d := dialog.New(st, schema, app.Logger())
		d.OpenCreate()

		fmt.Printf("=== Новая запись: %s/%s ===\n", product, resourceName)
		fmt.Println()

		reader := bufio.NewReader(os.Stdin)
		for _, spec := range schema {
			value, err := promptField(reader, spec, "")
			if err != nil {
				d.Cancel()
				return err
			}
			if value == "" {
				continue
			}
			if err := d.SetField(spec.Name, value); err != nil {
				d.Cancel()
				return err
			}
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		rec, err := d.Submit(ctx)
		if err != nil {
			return fmt.Errorf("ошибка создания записи: %w", err)
		}

		color.Green("✅ Запись создана, ID: %s", rec.ID)
		return nil
	},
}

// promptField спрашивает одно поле. Чувствительные поля читаются скрыто,
// пустой ввод означает "пропустить" (или "не менять" при редактировании).
func promptField(reader *bufio.Reader, spec dialog.FieldSpec, current string) (string, error) {
	label := spec.Name
	if spec.Required {
		label += "*"
	}
	if current != "" {
		label += " [" + current + "]"
	}

	if spec.Sensitive {
		fmt.Printf("%s: ", label)
		value, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", fmt.Errorf("ошибка чтения поля %s: %w", spec.Name, err)
		}
		fmt.Println()
		return string(value), nil
	}

	fmt.Printf("%s: ", label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("ошибка чтения поля %s: %w", spec.Name, err)
	}
	return strings.TrimSpace(line), nil
}
