package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/exp/slog"

	"github.com/danielgtaylor/huma/v2"
)

// TokenValidator - часть хранилища, нужная мидлвари.
type TokenValidator interface {
	ValidateToken(token string) (int, bool)
}

type Auth struct {
	tokens TokenValidator
	log    *slog.Logger
}

func New(tokens TokenValidator, log *slog.Logger) *Auth {
	return &Auth{
		tokens: tokens,
		log:    log.With("component", "auth_middleware"),
	}
}

type contextKey string

const AdminIDKey contextKey = "adminID"

// Middleware проверяет Bearer-токен и кладет ID администратора в контекст.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token := ctx.Header("Authorization")

		if len(token) < 7 || token[:7] != "Bearer " {
			a.log.Warn("Запрос без Bearer-токена", "path", ctx.URL().Path)
			reject(ctx)
			return
		}

		adminID, ok := a.tokens.ValidateToken(token[7:])
		if !ok {
			a.log.Warn("Невалидный токен", "path", ctx.URL().Path)
			reject(ctx)
			return
		}

		newCtx := context.WithValue(ctx.Context(), AdminIDKey, adminID)
		next(huma.WithContext(ctx, newCtx))
	}
}

func reject(ctx huma.Context) {
	ctx.SetStatus(http.StatusUnauthorized)
	ctx.SetHeader("Content-Type", "application/json")
	_ = json.NewEncoder(ctx.BodyWriter()).Encode(map[string]any{
		"success": false,
		"error":   "Unauthorized",
	})
}

func GetAdminID(ctx context.Context) (int, bool) {
	adminID, ok := ctx.Value(AdminIDKey).(int)
	return adminID, ok
}
