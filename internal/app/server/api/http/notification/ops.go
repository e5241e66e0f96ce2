package notification

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "notifications-list",
		Method:      http.MethodGet,
		Path:        "/api/notifications",
		Summary:     "Лента уведомлений и счетчик непрочитанных",
		Tags:        []string{"notifications"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) readOp() huma.Operation {
	return huma.Operation{
		OperationID: "notifications-read",
		Method:      http.MethodPut,
		Path:        "/api/notifications/{id}/read",
		Summary:     "Пометить уведомление прочитанным",
		Tags:        []string{"notifications"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
