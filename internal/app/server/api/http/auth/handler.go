package auth

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	authMW "adminhub/internal/app/server/api/http/middleware/auth"
	"adminhub/internal/app/server/store"
)

// Auditor пишет события в журнал. Отказ журнала не валит запрос.
type Auditor interface {
	Record(ctx context.Context, adminID int, action, resource, itemID string) error
}

type Handler struct {
	store     *store.Memory
	audit     Auditor
	log       *slog.Logger
	public    huma.Middlewares
	protected huma.Middlewares
}

func NewHandler(st *store.Memory, audit Auditor, log *slog.Logger, public, protected huma.Middlewares) *Handler {
	return &Handler{
		store:     st,
		audit:     audit,
		log:       log,
		public:    public,
		protected: protected,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	admin, token, err := h.store.Authenticate(input.Body.Email, input.Body.Password)
	if err != nil {
		h.log.Warn("Неудачный вход", "email", input.Body.Email)
		return nil, huma.Error401Unauthorized("Неверный email или пароль")
	}

	if err := h.audit.Record(ctx, admin.ID, "login", "session", ""); err != nil {
		h.log.Warn("Журнал недоступен", "error", err)
	}

	return &loginOutput{
		Body: loginResponse{
			Success: true,
			Token:   token,
			Admin: adminProfile{
				ID:    admin.ID,
				Name:  admin.Name,
				Email: admin.Email,
			},
		},
	}, nil
}

func (h *Handler) logout(ctx context.Context, input *logoutInput) (*logoutOutput, error) {
	if _, ok := authMW.GetAdminID(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if len(input.Authorization) > 7 {
		h.store.RevokeToken(input.Authorization[7:])
	}

	return &logoutOutput{
		Body: logoutResponse{Success: true},
	}, nil
}
