//Локальная заглушка продуктовых бэкендов для разработки консоли.
//Один процесс отвечает за все продукты: CRUD по ресурсам, логин
//администратора и лента уведомлений.

//POST /api/auth/login            # Вход (публичный)
//POST /api/auth/logout           # Выход (auth)
//GET  /api/health                # Проверка живости (публичный)
//GET  /api/{resource}            # Список записей (auth)
//POST /api/{resource}            # Создать запись (auth)
//GET  /api/{resource}/{id}       # Получить запись (auth)
//PUT  /api/{resource}/{id}       # Обновить запись (auth)
//PATCH /api/{resource}/{id}      # Обновить часть полей (auth)
//DELETE /api/{resource}/{id}     # Удалить запись (auth)
//GET  /api/notifications         # Лента уведомлений (auth)
//PUT /api/notifications/{id}/read # Пометить прочитанным (auth)

package api

import (
	authAPI "adminhub/internal/app/server/api/http/auth"
	healthAPI "adminhub/internal/app/server/api/http/health"
	authMW "adminhub/internal/app/server/api/http/middleware/auth"
	loggerMW "adminhub/internal/app/server/api/http/middleware/logger"
	notificationAPI "adminhub/internal/app/server/api/http/notification"
	resourceAPI "adminhub/internal/app/server/api/http/resource"
	"adminhub/internal/app/server/audit"
	"adminhub/internal/app/server/store"
	"adminhub/internal/handler/middleware"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health       *healthAPI.Handler
	Auth         *authAPI.Handler
	Resource     *resourceAPI.Handler
	Notification *notificationAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(st *store.Memory, auditLog *audit.Log, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("AdminHub Mock API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(st, auditLog, log)
	h.Health.SetupRoutes(API)
	h.Auth.SetupRoutes(API)
	h.Notification.SetupRoutes(API)
	// Generic CRUD регистрируется последним: /api/{resource} не должен
	// перехватить /api/notifications и /api/auth
	h.Resource.SetupRoutes(API)

	return mux
}

func handlers(st *store.Memory, auditLog *audit.Log, log *slog.Logger) *Handlers {
	authM := authMW.New(st, log)
	loggerM := loggerMW.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerM.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	middlewares.Add(loggerM.Middleware())
	public := middlewares.GetAllAndClear()
	middlewares.Add(authM.Middleware())
	middlewares.Add(loggerM.Middleware())
	authHandler := authAPI.NewHandler(st, auditLog, log, public, middlewares.GetAllAndClear())

	middlewares.Add(authM.Middleware())
	middlewares.Add(loggerM.Middleware())
	resourceHandler := resourceAPI.NewHandler(st, auditLog, log, middlewares.GetAllAndClear())

	middlewares.Add(authM.Middleware())
	middlewares.Add(loggerM.Middleware())
	notificationHandler := notificationAPI.NewHandler(st, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:       healthHandler,
		Auth:         authHandler,
		Resource:     resourceHandler,
		Notification: notificationHandler,
	}
}
