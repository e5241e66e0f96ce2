package resource

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "resource-list",
		Method:      http.MethodGet,
		Path:        "/api/{resource}",
		Summary:     "Список записей ресурса",
		Tags:        []string{"resources"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "resource-create",
		Method:      http.MethodPost,
		Path:        "/api/{resource}",
		Summary:     "Создать запись",
		Tags:        []string{"resources"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "resource-find",
		Method:      http.MethodGet,
		Path:        "/api/{resource}/{id}",
		Summary:     "Получить запись",
		Tags:        []string{"resources"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "resource-update",
		Method:      http.MethodPut,
		Path:        "/api/{resource}/{id}",
		Summary:     "Обновить запись целиком",
		Tags:        []string{"resources"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) patchOp() huma.Operation {
	return huma.Operation{
		OperationID: "resource-patch",
		Method:      http.MethodPatch,
		Path:        "/api/{resource}/{id}",
		Summary:     "Обновить часть полей записи",
		Tags:        []string{"resources"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "resource-delete",
		Method:      http.MethodDelete,
		Path:        "/api/{resource}/{id}",
		Summary:     "Удалить запись",
		Tags:        []string{"resources"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
