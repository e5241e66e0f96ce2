// Package view derives what the table actually shows: a filtered, sorted,
// paginated projection of a collection. Everything here is a pure function
// over (records, params) - the input slice is never mutated.
package view

import (
	"sort"
	"strings"
	"time"

	"adminhub/internal/model"
)

// FilterAll - сентинел, отключающий категориальный фильтр.
const FilterAll = "all"

// DefaultPageSize используется, когда PageSize не задан.
const DefaultPageSize = 10

type Params struct {
	Search       string
	SearchFields []string
	Filter       string
	FilterField  string
	SortKey      string
	SortDesc     bool
	Page         int
	PageSize     int
}

type Projection struct {
	Items      []model.Record
	TotalCount int
	TotalPages int
	Page       int
}

// Derive строит проекцию: поиск -> фильтр -> сортировка -> страница.
// Пустая коллекция дает TotalPages == 1 и пустой Items, деления на ноль
// в математике страниц нет.
func Derive(records []model.Record, p Params) Projection {
	filtered := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if matchesSearch(rec, p.Search, p.SearchFields) && matchesFilter(rec, p.Filter, p.FilterField) {
			filtered = append(filtered, rec)
		}
	}

	if p.SortKey != "" {
		sortRecords(filtered, p.SortKey, p.SortDesc)
	}

	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalCount := len(filtered)
	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	items := make([]model.Record, end-start)
	copy(items, filtered[start:end])

	return Projection{
		Items:      items,
		TotalCount: totalCount,
		TotalPages: totalPages,
		Page:       page,
	}
}

// matchesSearch - регистронезависимое вхождение подстроки по настроенным
// полям. Пустой запрос пропускает все записи.
func matchesSearch(rec model.Record, query string, fields []string) bool {
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(rec.StringField(field)), needle) {
			return true
		}
	}
	return false
}

// matchesFilter - равенство по одному категориальному полю.
// Сентинел "all" (или пустое значение) отключает фильтр.
func matchesFilter(rec model.Record, value, field string) bool {
	if value == "" || value == FilterAll || field == "" {
		return true
	}
	return rec.StringField(field) == value
}

// sortRecords - стабильная сортировка по одному полю. Строки сравниваются
// без учета регистра, отсутствующие значения идут как пустая строка.
func sortRecords(records []model.Record, key string, desc bool) {
	sort.SliceStable(records, func(i, j int) bool {
		if desc {
			return fieldLess(records[j], records[i], key)
		}
		return fieldLess(records[i], records[j], key)
	})
}

func fieldLess(a, b model.Record, key string) bool {
	switch key {
	case "created_at":
		return a.CreatedAt.Before(b.CreatedAt)
	case "updated_at":
		return a.UpdatedAt.Before(b.UpdatedAt)
	}

	av, bv := a.Field(key), b.Field(key)

	an, aok := numeric(av)
	bn, bok := numeric(bv)
	if aok && bok {
		return an < bn
	}

	return strings.ToLower(stringOrEmpty(av)) < strings.ToLower(stringOrEmpty(bv))
}

func numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	}
	return 0, false
}

func stringOrEmpty(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Stats - сводные показатели над НЕфильтрованной коллекцией: заголовочные
// цифры не должны прыгать, пока пользователь фильтрует таблицу под ними.
type Stats struct {
	Total        int
	ByValue      map[string]int
	UniqueValues int
	CreatedLastN int
}

// Aggregate считает количество по значениям категориального поля,
// число уникальных значений и записи, созданные за последние days дней.
func Aggregate(records []model.Record, field string, days int, now time.Time) Stats {
	stats := Stats{
		Total:   len(records),
		ByValue: make(map[string]int),
	}

	cutoff := now.AddDate(0, 0, -days)
	for _, rec := range records {
		if value := rec.StringField(field); value != "" {
			stats.ByValue[value]++
		}
		if days > 0 && !rec.CreatedAt.IsZero() && rec.CreatedAt.After(cutoff) {
			stats.CreatedLastN++
		}
	}
	stats.UniqueValues = len(stats.ByValue)

	return stats
}
