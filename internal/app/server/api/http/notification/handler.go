package notification

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	authMW "adminhub/internal/app/server/api/http/middleware/auth"
	"adminhub/internal/app/server/store"
)

type Handler struct {
	store      *store.Memory
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(st *store.Memory, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		store:      st,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.readOp(), h.read)
}

func (h *Handler) list(ctx context.Context, _ *listInput) (*listOutput, error) {
	if _, ok := authMW.GetAdminID(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	items, unread := h.store.Notifications()

	rows := make([]notificationJSON, 0, len(items))
	for _, n := range items {
		rows = append(rows, notificationJSON{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}

	return &listOutput{
		Body: listResponse{
			Success:       true,
			Notifications: rows,
			Unread:        unread,
		},
	}, nil
}

func (h *Handler) read(ctx context.Context, input *readInput) (*readOutput, error) {
	if _, ok := authMW.GetAdminID(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	unread, err := h.store.MarkNotificationRead(input.ID)
	if err != nil {
		return nil, huma.Error404NotFound("Уведомление не найдено")
	}

	return &readOutput{
		Body: readResponse{
			Success: true,
			Unread:  unread,
		},
	}, nil
}
