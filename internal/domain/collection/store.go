// Package collection реализует клиентский кэш одной коллекции ресурса:
// загрузка списка с бэкенда, мутации и ресинхронизация массива.
// Коллекция - кэш, а не источник истины: между успешной мутацией и
// следующей полной загрузкой она может быть устаревшей.
package collection

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/exp/slog"

	"adminhub/internal/model"
	"adminhub/internal/transport"
)

// Client - транспорт, через который магазин ходит на сервер.
type Client interface {
	Request(ctx context.Context, method, path string, body any) (*transport.Envelope, error)
}

// Snapshotter - необязательный приемник снимков коллекции (локальный кэш).
type Snapshotter interface {
	SaveSnapshot(resource string, records []model.Record) error
}

// Store хранит последний загруженный массив записей, флаг загрузки и
// последнюю ошибку. Мутации по умолчанию перечитывают список целиком;
// WithOptimisticPatch включает локальную правку массива (риск дрейфа,
// если сервер дописывает вычисляемые поля).
type Store struct {
	client     Client
	log        *slog.Logger
	resource   string
	basePath   string
	optimistic bool
	snapshot   Snapshotter

	mu      sync.Mutex
	records []model.Record
	loading bool
	loadErr error
	gen     uint64
}

type Option func(*Store)

// WithOptimisticPatch включает локальную правку массива после мутаций
// вместо полной перезагрузки. Явный компромисс: меньше запросов, но
// серверные значения по умолчанию не попадут в кэш до следующего Load.
func WithOptimisticPatch() Option {
	return func(s *Store) { s.optimistic = true }
}

// WithSnapshotter подключает локальный кэш снимков.
func WithSnapshotter(snap Snapshotter) Option {
	return func(s *Store) { s.snapshot = snap }
}

func New(cl Client, resource string, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		client:   cl,
		log:      log.With(slog.String("resource", resource)),
		resource: resource,
		basePath: "/api/" + resource,
		records:  []model.Record{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load перечитывает коллекцию целиком. Ошибка не пробрасывается паникой:
// она запоминается в состоянии и возвращается, прежний массив остается
// на месте. Ответ устаревшего поколения молча отбрасывается - последняя
// выданная загрузка всегда побеждает.
func (s *Store) Load(ctx context.Context, query url.Values) error {
	s.mu.Lock()
	s.loading = true
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	path := s.basePath
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	env, err := s.client.Request(ctx, http.MethodGet, path, nil)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		// Пока ждали ответ, ушел более свежий Load
		s.log.Debug("Ответ устаревшего поколения отброшен", "gen", gen)
		return nil
	}

	s.loading = false

	if err != nil {
		s.loadErr = err
		s.log.Error("Ошибка загрузки коллекции", "error", err)
		return err
	}

	s.loadErr = nil
	s.records = env.List(s.resource)

	if s.snapshot != nil {
		if err := s.snapshot.SaveSnapshot(s.resource, s.records); err != nil {
			s.log.Warn("Не удалось сохранить снимок коллекции", "error", err)
		}
	}

	return nil
}

// Records возвращает копию массива: вызывающие не могут мутировать кэш.
func (s *Store) Records() []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Loading сообщает, идет ли загрузка.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err возвращает ошибку последней загрузки.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Create отправляет черновик на сервер. При успехе запись попадает в
// начало массива (новое - сверху, как и сортировка по умолчанию);
// при ошибке массив не трогаем.
func (s *Store) Create(ctx context.Context, draft map[string]any) (model.Record, error) {
	env, err := s.client.Request(ctx, http.MethodPost, s.basePath, draft)
	if err != nil {
		return model.Record{}, err
	}

	created, ok := env.One(singular(s.resource))
	if !ok {
		return model.Record{}, fmt.Errorf("сервер не вернул созданную запись")
	}

	s.resync(ctx, func() {
		s.records = append([]model.Record{created}, s.records...)
	})

	return created, nil
}

// Update отправляет полное обновление записи (PUT).
func (s *Store) Update(ctx context.Context, id string, fields map[string]any) (model.Record, error) {
	return s.mutate(ctx, http.MethodPut, id, fields)
}

// Patch отправляет частичное обновление (PATCH): переключатели статуса,
// флаги прочтения и т.п.
func (s *Store) Patch(ctx context.Context, id string, patch map[string]any) (model.Record, error) {
	return s.mutate(ctx, http.MethodPatch, id, patch)
}

func (s *Store) mutate(ctx context.Context, method, id string, fields map[string]any) (model.Record, error) {
	env, err := s.client.Request(ctx, method, s.basePath+"/"+id, fields)
	if err != nil {
		return model.Record{}, err
	}

	updated, ok := env.One(singular(s.resource))
	if !ok {
		// Сервер мог ответить голым success: подставляем локальную версию
		updated = s.patchedLocal(id, fields)
	}

	s.resync(ctx, func() {
		for i := range s.records {
			if s.records[i].ID == id {
				s.records[i] = updated
				break
			}
		}
	})

	return updated, nil
}

// Remove удаляет запись. При успехе элемент выбывает из массива,
// при ошибке массив не трогаем.
func (s *Store) Remove(ctx context.Context, id string) error {
	if _, err := s.client.Request(ctx, http.MethodDelete, s.basePath+"/"+id, nil); err != nil {
		return err
	}

	s.resync(ctx, func() {
		out := s.records[:0]
		for _, rec := range s.records {
			if rec.ID != id {
				out = append(out, rec)
			}
		}
		s.records = out
	})

	return nil
}

// resync приводит массив в порядок после успешной мутации: либо локальная
// правка (оптимистичный режим), либо полная перезагрузка.
func (s *Store) resync(ctx context.Context, patch func()) {
	if s.optimistic {
		s.mu.Lock()
		patch()
		s.mu.Unlock()
		return
	}

	if err := s.Load(ctx, nil); err != nil {
		// Мутация прошла, перезагрузка - нет. Кэш остается устаревшим
		// до следующего Load, это зафиксированное поведение.
		s.log.Warn("Перезагрузка после мутации не удалась", "error", err)
	}
}

func (s *Store) patchedLocal(id string, fields map[string]any) model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.ID == id {
			out := rec.Clone()
			for k, v := range fields {
				out.Fields[k] = v
			}
			return out
		}
	}
	return model.Record{ID: id, Fields: fields}
}

// singular обрезает множественное число имени ресурса для ключей вида
// {"user": {...}} в ответах на создание.
func singular(resource string) string {
	if len(resource) > 1 && resource[len(resource)-1] == 's' {
		return resource[:len(resource)-1]
	}
	return resource
}
