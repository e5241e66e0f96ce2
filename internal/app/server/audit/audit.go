// Package audit пишет журнал действий администраторов в sqlite.
// Схему накатывает мигратор, здесь только запись и выборка.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type Entry struct {
	ID        int64
	AdminID   int
	Action    string
	Resource  string
	ItemID    string
	CreatedAt time.Time
}

type Log struct {
	db *sql.DB
}

func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}
	return &Log{db: db}, nil
}

func (l *Log) Close() error {
	return l.db.Close()
}

// Record пишет одно событие. action - create/update/delete/login.
func (l *Log) Record(ctx context.Context, adminID int, action, resource, itemID string) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO audit_log (admin_id, action, resource, item_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, adminID, action, resource, itemID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("ошибка записи в журнал: %w", err)
	}
	return nil
}

// Recent возвращает последние n событий, новые первыми.
func (l *Log) Recent(ctx context.Context, n int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, admin_id, action, resource, item_id, created_at
		FROM audit_log
		ORDER BY id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.AdminID, &e.Action, &e.Resource, &e.ItemID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки журнала: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
