package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminhub/internal/model"
)

func rec(id, name, status string) model.Record {
	return model.Record{
		ID: id,
		Fields: map[string]any{
			"name":   name,
			"status": status,
		},
	}
}

func sample() []model.Record {
	return []model.Record{
		rec("1", "Alice", "pending"),
		rec("2", "Bob", "done"),
		rec("3", "alina", "pending"),
		rec("4", "Carol", "archived"),
	}
}

func TestDeriveIsIdempotent(t *testing.T) {
	records := sample()
	params := Params{Search: "al", SearchFields: []string{"name"}, SortKey: "name"}

	first := Derive(records, params)
	second := Derive(records, params)

	assert.Equal(t, first, second)
	// Исходная коллекция не мутирована
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "2", records[1].ID)
}

func TestSearchSubsumption(t *testing.T) {
	records := sample()
	proj := Derive(records, Params{Search: "AL", SearchFields: []string{"name"}})

	ids := map[string]bool{}
	for _, r := range proj.Items {
		ids[r.ID] = true
	}
	// Совпадающие есть, несовпадающих нет
	assert.True(t, ids["1"], "Alice")
	assert.True(t, ids["3"], "alina")
	assert.False(t, ids["2"])
	assert.False(t, ids["4"])
}

func TestFilterAllIsNoop(t *testing.T) {
	records := sample()
	proj := Derive(records, Params{Filter: FilterAll, FilterField: "status"})
	assert.Equal(t, len(records), proj.TotalCount)
}

func TestFilterEquality(t *testing.T) {
	records := sample()
	proj := Derive(records, Params{Filter: "pending", FilterField: "status"})

	require.Len(t, proj.Items, 2)
	for _, r := range proj.Items {
		assert.Equal(t, "pending", r.StringField("status"))
	}
}

func TestPaginationCoverage(t *testing.T) {
	var records []model.Record
	for i := 0; i < 23; i++ {
		records = append(records, rec(string(rune('a'+i)), "", ""))
	}

	params := Params{PageSize: 10}
	first := Derive(records, params)
	require.Equal(t, 3, first.TotalPages)

	seen := map[string]int{}
	total := 0
	for page := 1; page <= first.TotalPages; page++ {
		params.Page = page
		proj := Derive(records, params)
		for _, r := range proj.Items {
			seen[r.ID]++
			total++
		}
	}

	// Конкатенация страниц восстанавливает коллекцию ровно по одному разу
	assert.Equal(t, len(records), total)
	for id, count := range seen {
		assert.Equal(t, 1, count, "запись %s встретилась %d раз", id, count)
	}
}

func TestPageClamping(t *testing.T) {
	records := sample()

	proj := Derive(records, Params{Page: 99, PageSize: 2})
	assert.Equal(t, 2, proj.Page)
	assert.NotEmpty(t, proj.Items)

	proj = Derive(records, Params{Page: -5, PageSize: 2})
	assert.Equal(t, 1, proj.Page)
}

func TestSortStableAndReversible(t *testing.T) {
	records := []model.Record{
		rec("1", "bob", ""),
		rec("2", "Alice", ""),
		rec("3", "carol", ""),
	}

	asc := Derive(records, Params{SortKey: "name"})
	desc := Derive(records, Params{SortKey: "name", SortDesc: true})

	require.Len(t, asc.Items, 3)
	assert.Equal(t, "2", asc.Items[0].ID, "сравнение строк без учета регистра")
	assert.Equal(t, "1", asc.Items[1].ID)
	assert.Equal(t, "3", asc.Items[2].ID)

	// Без дублей значений desc - это точный реверс asc
	for i := range asc.Items {
		assert.Equal(t, asc.Items[i].ID, desc.Items[len(desc.Items)-1-i].ID)
	}
}

func TestSortTiesKeepInputOrder(t *testing.T) {
	records := []model.Record{
		rec("1", "same", ""),
		rec("2", "same", ""),
		rec("3", "same", ""),
	}

	proj := Derive(records, Params{SortKey: "name"})
	assert.Equal(t, "1", proj.Items[0].ID)
	assert.Equal(t, "2", proj.Items[1].ID)
	assert.Equal(t, "3", proj.Items[2].ID)
}

func TestSortMissingFieldAsEmptyString(t *testing.T) {
	records := []model.Record{
		rec("1", "zed", ""),
		{ID: "2", Fields: map[string]any{}},
	}

	proj := Derive(records, Params{SortKey: "name"})
	assert.Equal(t, "2", proj.Items[0].ID, "отсутствующее значение сортируется как пустая строка")
}

func TestStatusScenario(t *testing.T) {
	records := []model.Record{
		rec("1", "Alice", "pending"),
		rec("2", "Bob", "done"),
	}

	proj := Derive(records, Params{Filter: "pending", FilterField: "status"})
	require.Len(t, proj.Items, 1)
	assert.Equal(t, "1", proj.Items[0].ID)

	// После смены статуса у записи 1 фильтр pending пустеет
	records[0].Fields["status"] = "done"
	proj = Derive(records, Params{Filter: "pending", FilterField: "status"})
	assert.Empty(t, proj.Items)
}

func TestEmptyCollection(t *testing.T) {
	proj := Derive(nil, Params{PageSize: 10})
	assert.Equal(t, 1, proj.TotalPages)
	assert.Empty(t, proj.Items)
	assert.Equal(t, 0, proj.TotalCount)
	assert.Equal(t, 1, proj.Page)
}

func TestAggregateUsesUnfilteredCollection(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	records := []model.Record{
		{ID: "1", Fields: map[string]any{"status": "pending"}, CreatedAt: now.AddDate(0, 0, -2)},
		{ID: "2", Fields: map[string]any{"status": "done"}, CreatedAt: now.AddDate(0, 0, -40)},
		{ID: "3", Fields: map[string]any{"status": "pending"}, CreatedAt: now.AddDate(0, 0, -1)},
	}

	stats := Aggregate(records, "status", 7, now)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByValue["pending"])
	assert.Equal(t, 1, stats.ByValue["done"])
	assert.Equal(t, 2, stats.UniqueValues)
	assert.Equal(t, 2, stats.CreatedLastN)
}
