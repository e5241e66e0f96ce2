package admin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Session хранит токены по продуктам в файлах 0600 и рассылает
// изменения подписчикам: транспорты узнают о новом токене без
// перезапуска консоли.
type Session struct {
	dir string

	mu   sync.Mutex
	subs []func(product, token string)
}

func NewSession(dir string) *Session {
	return &Session{dir: dir}
}

// Subscribe регистрирует получателя изменений токена.
func (s *Session) Subscribe(fn func(product, token string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Save пишет токен продукта на диск и оповещает подписчиков.
func (s *Session) Save(product, token string) error {
	if err := os.WriteFile(s.tokenPath(product), []byte(token), 0600); err != nil {
		return fmt.Errorf("ошибка сохранения токена: %w", err)
	}
	s.notify(product, token)
	return nil
}

// Load читает токен продукта. Отсутствие файла - пустой токен, не ошибка.
func (s *Session) Load(product string) (string, error) {
	data, err := os.ReadFile(s.tokenPath(product))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("ошибка чтения токена: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear удаляет токен продукта и оповещает подписчиков пустым значением.
func (s *Session) Clear(product string) error {
	err := os.Remove(s.tokenPath(product))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка удаления токена: %w", err)
	}
	s.notify(product, "")
	return nil
}

func (s *Session) notify(product, token string) {
	s.mu.Lock()
	subs := make([]func(string, string), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(product, token)
	}
}

func (s *Session) tokenPath(product string) string {
	return filepath.Join(s.dir, "token_"+product)
}
