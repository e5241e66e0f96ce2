package admin

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"adminhub/internal/model"
)

// SQLiteCache держит последние снимки коллекций на диске: консоль
// может показать хоть что-то, пока бэкенд недоступен.
type SQLiteCache struct {
	db *sql.DB
}

func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	cache := &SQLiteCache{db: db}
	if err := cache.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return cache, nil
}

func (c *SQLiteCache) initTables() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			resource TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			saved_at DATETIME NOT NULL
		)
	`)
	return err
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// SaveSnapshot перезаписывает снимок ресурса целиком.
func (c *SQLiteCache) SaveSnapshot(resource string, records []model.Record) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("ошибка сериализации снимка: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT INTO snapshots (resource, payload, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(resource) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at
	`, resource, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("ошибка сохранения снимка: %w", err)
	}
	return nil
}

// LoadSnapshot возвращает последний снимок ресурса и время его записи.
func (c *SQLiteCache) LoadSnapshot(resource string) ([]model.Record, time.Time, error) {
	var payload string
	var savedAt time.Time

	err := c.db.QueryRow(`
		SELECT payload, saved_at FROM snapshots WHERE resource = ?
	`, resource).Scan(&payload, &savedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("ошибка чтения снимка: %w", err)
	}

	var records []model.Record
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, time.Time{}, fmt.Errorf("ошибка разбора снимка: %w", err)
	}
	return records, savedAt, nil
}
