package admin

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminhub/internal/model"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{ID: "1", Fields: map[string]any{"name": "Anna"}},
		{ID: "2", Fields: map[string]any{"name": "Boris"}},
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()

	records, savedAt, err := c.LoadSnapshot("users")
	require.NoError(t, err)
	assert.Nil(t, records, "снимка еще нет")
	assert.True(t, savedAt.IsZero())

	require.NoError(t, c.SaveSnapshot("users", sampleRecords()))

	records, savedAt, err = c.LoadSnapshot("users")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Anna", records[0].StringField("name"))
	assert.False(t, savedAt.IsZero())
}

func TestMemoryCacheIsolation(t *testing.T) {
	c := NewMemoryCache()
	require.NoError(t, c.SaveSnapshot("users", sampleRecords()))

	records, _, err := c.LoadSnapshot("users")
	require.NoError(t, err)

	// Мутация результата не трогает кеш
	records[0].ID = "hacked"
	again, _, err := c.LoadSnapshot("users")
	require.NoError(t, err)
	assert.Equal(t, "1", again[0].ID)
}

func TestSQLiteCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")

	c, err := NewSQLiteCache(path)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	records, _, err := c.LoadSnapshot("users")
	require.NoError(t, err)
	assert.Nil(t, records)

	require.NoError(t, c.SaveSnapshot("users", sampleRecords()))

	// Повторная запись перезаписывает снимок, а не дописывает
	require.NoError(t, c.SaveSnapshot("users", sampleRecords()[:1]))

	records, savedAt, err := c.LoadSnapshot("users")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].ID)
	assert.False(t, savedAt.IsZero())
}
