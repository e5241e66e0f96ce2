package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"adminhub/internal/model"
)

// Transport - единственная точка, где консоль ходит по HTTP в бэкенд
// продукта. Один экземпляр на продукт: базовый URL, токен и логгер свои.
// Политика отказов: никаких автоматических повторов, каждая ошибка
// возвращается вызывающему синхронно.
type Transport struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

// FileUpload - файл для multipart-запроса (резюме, видео, документы).
type FileUpload struct {
	Field    string
	Filename string
	Path     string
}

func New(baseURL string, log *slog.Logger) *Transport {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			DisableCompression:  false,
			DisableKeepAlives:   false,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &Transport{
		client:    client,
		log:       log,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "AdminHub-Console/1.0",
	}
}

// SetToken устанавливает токен аутентификации
func (t *Transport) SetToken(token string) {
	t.token = token
}

// BaseURL возвращает базовый адрес бэкенда.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// HealthCheck проверяет доступность бэкенда
func (t *Transport) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("сервер вернул статус: %d", resp.StatusCode)
	}

	return nil
}

// Request выполняет запрос с JSON-телом и нормализует ответ в Envelope.
func (t *Transport) Request(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return t.do(req)
}

// Upload выполняет multipart/form-data запрос: строковые поля + файлы.
func (t *Transport) Upload(ctx context.Context, method, path string, fields map[string]string, files []FileUpload) (*Envelope, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("ошибка записи поля %s: %w", name, err)
		}
	}

	for _, file := range files {
		name := file.Filename
		if name == "" {
			name = filepath.Base(file.Path)
		}
		part, err := writer.CreateFormFile(file.Field, name)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания части %s: %w", file.Field, err)
		}
		f, err := os.Open(file.Path)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения файла: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, fmt.Errorf("ошибка копирования файла: %w", err)
		}
		f.Close()
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("ошибка закрытия multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return t.do(req)
}

// Login выполняет обмен учетных данных на токен. Полученный токен
// сразу устанавливается на транспорт.
func (t *Transport) Login(ctx context.Context, email, password string) (string, model.Record, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	env, err := t.Request(ctx, http.MethodPost, "/api/auth/login", body)
	if err != nil {
		return "", model.Record{}, err
	}

	token, ok := env.String("token")
	if !ok || token == "" {
		return "", model.Record{}, fmt.Errorf("сервер не вернул токен")
	}

	profile, _ := env.One("user", "admin")
	t.SetToken(token)

	return token, profile, nil
}

func (t *Transport) do(req *http.Request) (*Envelope, error) {
	req.Header.Set("User-Agent", t.userAgent)
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	t.log.Debug("Отправка запроса",
		"method", req.Method,
		"url", req.URL.String(),
	)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	t.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	env, err := ParseEnvelope(resp.StatusCode, body)
	if err != nil {
		return nil, err
	}

	return env, nil
}
