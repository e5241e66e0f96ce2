// Package export превращает текущую проекцию в табличный файл выгрузки.
// Чистая трансформация: никакой сети, никакого состояния.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"adminhub/internal/model"
)

// Column - одна колонка выгрузки: подпись и извлечение значения.
// Порядок колонок в срезе задает порядок в файле.
type Column struct {
	Label string
	Value func(model.Record) string
}

// FieldColumn - колонка по имени поля записи.
func FieldColumn(label, field string) Column {
	return Column{
		Label: label,
		Value: func(r model.Record) string { return r.StringField(field) },
	}
}

// IDColumn - колонка с идентификатором записи.
func IDColumn(label string) Column {
	return Column{
		Label: label,
		Value: func(r model.Record) string { return r.ID },
	}
}

// CreatedColumn - колонка с датой создания в формате RFC3339.
func CreatedColumn(label string) Column {
	return Column{
		Label: label,
		Value: func(r model.Record) string {
			if r.CreatedAt.IsZero() {
				return ""
			}
			return r.CreatedAt.Format(time.RFC3339)
		},
	}
}

// Rows строит CSV: строка заголовка плюс по строке на запись.
// Ноль записей - валидный файл из одного заголовка, а не ошибка.
func Rows(records []model.Record, columns []Column) ([]byte, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("нет колонок для выгрузки")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Label
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("ошибка записи заголовка: %w", err)
	}

	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = col.Value(rec)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("ошибка записи строки: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("ошибка сборки CSV: %w", err)
	}

	return buf.Bytes(), nil
}

// Filename строит имя файла с текущей датой: users_2026-08-28.csv
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format("2006-01-02"))
}

// WriteFile кладет выгрузку на диск и возвращает полный путь.
func WriteFile(dir, prefix string, data []byte) (string, error) {
	path := filepath.Join(dir, Filename(prefix, time.Now()))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("ошибка записи файла выгрузки: %w", err)
	}
	return path, nil
}
