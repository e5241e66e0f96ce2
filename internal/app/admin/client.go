// Package admin собирает консоль в одно приложение: транспорт на каждый
// продукт, хранилища коллекций, агрегатор уведомлений и локальный кэш
// снимков.
package admin

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"adminhub/internal/app/admin/config"
	"adminhub/internal/domain/collection"
	"adminhub/internal/domain/notify"
	"adminhub/internal/model"
	"adminhub/internal/transport"
)

// Cache - локальное хранилище снимков коллекций.
type Cache interface {
	SaveSnapshot(resource string, records []model.Record) error
	LoadSnapshot(resource string) ([]model.Record, time.Time, error)
}

type App struct {
	cfg        *config.Config
	log        *slog.Logger
	session    *Session
	cache      Cache
	transports map[string]*transport.Transport
	notifier   *notify.Aggregator

	mu     sync.Mutex
	stores map[string]*collection.Store
}

// New создает приложение: поднимает кэш, читает сохраненные токены
// и подписывает транспорты на смену сессии.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	session := NewSession(cfg.ConfigDir)

	var cache Cache
	sqliteCache, err := NewSQLiteCache(cfg.CachePath)
	if err != nil {
		log.Warn("Кэш снимков недоступен, работаем в памяти", "error", err)
		cache = NewMemoryCache()
	} else {
		cache = sqliteCache
	}

	app := &App{
		cfg:        cfg,
		log:        log,
		session:    session,
		cache:      cache,
		transports: make(map[string]*transport.Transport, len(cfg.Products)),
		stores:     make(map[string]*collection.Store),
	}

	for _, p := range cfg.Products {
		tr := transport.New(p.BaseURL, log)
		token, err := session.Load(p.Name)
		if err != nil {
			log.Warn("Не удалось прочитать токен", "product", p.Name, "error", err)
		}
		if token != "" {
			tr.SetToken(token)
		}
		app.transports[p.Name] = tr
	}

	session.Subscribe(func(product, token string) {
		if tr, ok := app.transports[product]; ok {
			tr.SetToken(token)
		}
	})

	sources := make([]notify.Source, 0, len(config.NotifySourceNames))
	for _, name := range config.NotifySourceNames {
		tr, ok := app.transports[name]
		if !ok {
			continue
		}
		sources = append(sources, notify.Source{
			Name:     name,
			Client:   tr,
			ListPath: "/api/notifications",
			ReadPath: "/api/notifications",
		})
	}
	app.notifier = notify.New(sources, log)

	return app, nil
}

func (a *App) Config() *config.Config       { return a.cfg }
func (a *App) Logger() *slog.Logger         { return a.log }
func (a *App) Notifier() *notify.Aggregator { return a.notifier }

// Transport возвращает транспорт продукта.
func (a *App) Transport(product string) (*transport.Transport, error) {
	tr, ok := a.transports[product]
	if !ok {
		return nil, fmt.Errorf("неизвестный продукт: %s", product)
	}
	return tr, nil
}

// Store возвращает хранилище коллекции продукта, создавая его лениво.
// Снимки пишутся в кэш под ключом продукт.ресурс.
func (a *App) Store(product, resource string) (*collection.Store, error) {
	tr, ok := a.transports[product]
	if !ok {
		return nil, fmt.Errorf("неизвестный продукт: %s", product)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	key := product + "/" + resource
	if st, ok := a.stores[key]; ok {
		return st, nil
	}

	st := collection.New(tr, resource, a.log,
		collection.WithSnapshotter(&scopedCache{cache: a.cache, product: product}),
	)
	a.stores[key] = st
	return st, nil
}

// CachedRecords читает последний снимок коллекции из локального кэша.
func (a *App) CachedRecords(product, resource string) ([]model.Record, time.Time, error) {
	return a.cache.LoadSnapshot(product + "." + resource)
}

// Login входит в продукт и сохраняет токен сессии.
func (a *App) Login(ctx context.Context, product, email, password string) (model.Record, error) {
	tr, err := a.Transport(product)
	if err != nil {
		return model.Record{}, err
	}

	token, profile, err := tr.Login(ctx, email, password)
	if err != nil {
		return model.Record{}, err
	}

	// Login уже проставил токен в транспорт, осталось сохранить
	if err := a.session.Save(product, token); err != nil {
		a.log.Warn("Токен не сохранен, сессия живет до выхода", "error", err)
	}

	return profile, nil
}

// Logout отзывает токен на сервере и чистит локальную сессию.
// Недоступный сервер не мешает локальному выходу.
func (a *App) Logout(ctx context.Context, product string) error {
	tr, err := a.Transport(product)
	if err != nil {
		return err
	}

	if _, err := tr.Request(ctx, http.MethodPost, "/api/auth/logout", nil); err != nil {
		a.log.Warn("Сервер не подтвердил выход", "product", product, "error", err)
	}

	return a.session.Clear(product)
}

// CheckConnection проверяет доступность бэкенда продукта.
func (a *App) CheckConnection(ctx context.Context, product string) error {
	tr, err := a.Transport(product)
	if err != nil {
		return err
	}
	return tr.HealthCheck(ctx)
}

// scopedCache дописывает имя продукта к ключу снимка: одинаковые
// ресурсы разных продуктов не должны затирать друг друга.
type scopedCache struct {
	cache   Cache
	product string
}

func (s *scopedCache) SaveSnapshot(resource string, records []model.Record) error {
	return s.cache.SaveSnapshot(s.product+"."+resource, records)
}
