// Package store - память локальной заглушки: админы, токены, коллекции
// продуктовых ресурсов и уведомления. Каждая коллекция объявляет свой
// стиль конверта, чтобы клиент учился жить с разнобоем реальных бэкендов.
package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Стили конверта ответа списка.
const (
	StyleData  = "data"  // {"success":true,"data":[...]}
	StyleKeyed = "keyed" // {"success":true,"users":[...]}
	StyleBare  = "bare"  // [...]
)

var (
	ErrNotFound     = fmt.Errorf("запись не найдена")
	ErrUnauthorized = fmt.Errorf("неверные учетные данные")
)

type Admin struct {
	ID           int
	Email        string
	Name         string
	PasswordHash []byte
}

type Item struct {
	ID        int
	Fields    map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Notification struct {
	ID        string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}

type collection struct {
	style  string
	nextID int
	items  []*Item
}

// Memory - все состояние заглушки под одним мьютексом. Персистентности
// нет намеренно: рестарт возвращает чистые демо-данные.
type Memory struct {
	mu            sync.RWMutex
	admins        map[string]*Admin // по email
	nextAdminID   int
	tokens        map[string]int // токен -> admin ID
	collections   map[string]*collection
	notifications []*Notification
	nextNotifID   int
}

func NewMemory() *Memory {
	return &Memory{
		admins:      make(map[string]*Admin),
		tokens:      make(map[string]int),
		collections: make(map[string]*collection),
	}
}

// RegisterAdmin заводит администратора. Пароль хранится только хешем.
func (m *Memory) RegisterAdmin(email, name, password string) (*Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.admins[email]; exists {
		return nil, fmt.Errorf("администратор %s уже существует", email)
	}

	m.nextAdminID++
	admin := &Admin{
		ID:           m.nextAdminID,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	m.admins[email] = admin
	return admin, nil
}

// Authenticate сверяет пароль и выдает токен сессии.
func (m *Memory) Authenticate(email, password string) (*Admin, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	admin, ok := m.admins[email]
	if !ok {
		return nil, "", ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(password)); err != nil {
		return nil, "", ErrUnauthorized
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, "", fmt.Errorf("ошибка генерации токена: %w", err)
	}
	token := hex.EncodeToString(buf)
	m.tokens[token] = admin.ID

	return admin, token, nil
}

// ValidateToken возвращает ID администратора по токену.
func (m *Memory) ValidateToken(token string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.tokens[token]
	return id, ok
}

// RevokeToken гасит сессию. Незнакомый токен - не ошибка.
func (m *Memory) RevokeToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
}

// AddCollection объявляет ресурс и стиль его конверта.
func (m *Memory) AddCollection(name, style string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[name] = &collection{style: style}
}

// Style возвращает стиль конверта ресурса.
func (m *Memory) Style(resource string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[resource]
	if !ok {
		return "", false
	}
	return c.style, true
}

// List возвращает копию элементов ресурса, новые первыми.
func (m *Memory) List(resource string) ([]*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[resource]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]*Item, len(c.items))
	copy(out, c.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Get возвращает элемент по строковому ID.
func (m *Memory) Get(resource, id string) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[resource]
	if !ok {
		return nil, ErrNotFound
	}
	for _, it := range c.items {
		if strconv.Itoa(it.ID) == id {
			return it, nil
		}
	}
	return nil, ErrNotFound
}

// Create добавляет элемент и проставляет серверные поля.
func (m *Memory) Create(resource string, fields map[string]any) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[resource]
	if !ok {
		return nil, ErrNotFound
	}

	c.nextID++
	now := time.Now().UTC()
	item := &Item{
		ID:        c.nextID,
		Fields:    cloneFields(fields),
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.items = append(c.items, item)
	return item, nil
}

// Update меняет элемент. replace=true затирает все поля (PUT),
// replace=false обновляет только пришедшие (PATCH).
func (m *Memory) Update(resource, id string, fields map[string]any, replace bool) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[resource]
	if !ok {
		return nil, ErrNotFound
	}

	for _, it := range c.items {
		if strconv.Itoa(it.ID) != id {
			continue
		}
		if replace {
			it.Fields = cloneFields(fields)
		} else {
			for k, v := range fields {
				it.Fields[k] = v
			}
		}
		it.UpdatedAt = time.Now().UTC()
		return it, nil
	}
	return nil, ErrNotFound
}

// Delete удаляет элемент.
func (m *Memory) Delete(resource, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[resource]
	if !ok {
		return ErrNotFound
	}

	for i, it := range c.items {
		if strconv.Itoa(it.ID) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// AddNotification кладет уведомление в ленту заглушки.
func (m *Memory) AddNotification(title, message string, createdAt time.Time) *Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextNotifID++
	n := &Notification{
		ID:        strconv.Itoa(m.nextNotifID),
		Title:     title,
		Message:   message,
		CreatedAt: createdAt,
	}
	m.notifications = append(m.notifications, n)
	return n
}

// Notifications возвращает ленту и число непрочитанных.
func (m *Memory) Notifications() ([]*Notification, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Notification, len(m.notifications))
	copy(out, m.notifications)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	unread := 0
	for _, n := range m.notifications {
		if !n.Read {
			unread++
		}
	}
	return out, unread
}

// MarkNotificationRead помечает уведомление и возвращает новый счетчик.
func (m *Memory) MarkNotificationRead(id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := false
	unread := 0
	for _, n := range m.notifications {
		if n.ID == id {
			n.Read = true
			found = true
		}
		if !n.Read {
			unread++
		}
	}
	if !found {
		return unread, ErrNotFound
	}
	return unread, nil
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
